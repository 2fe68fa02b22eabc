package analysis

import (
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"stadium-designer/internal/config"
)

const (
	maxConnectAttempts = 5
	connectRetryDelay  = 5 * time.Second
)

// New создает Executor для транспорта, выбранного в конфигурации.
func New(cfg *config.Config, logger *zap.Logger) (ClosableExecutor, error) {
	switch cfg.Analysis.Transport {
	case config.TransportHTTP:
		exec, err := NewHTTPExecutor(cfg.Analysis.WorkerBaseURL, logger)
		if err != nil {
			return nil, err
		}
		return exec, nil
	case config.TransportRabbitMQ:
		conn, err := connectRabbitMQ(cfg.RabbitMQ.URL, logger)
		if err != nil {
			return nil, err
		}
		exec, err := NewRabbitMQExecutor(conn, cfg.RabbitMQ.TaskQueue, logger)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return &ownedConnExecutor{RabbitMQExecutor: exec, conn: conn}, nil
	default:
		return nil, fmt.Errorf("unknown analysis transport %q", cfg.Analysis.Transport)
	}
}

// ownedConnExecutor закрывает соединение вместе с executor'ом.
type ownedConnExecutor struct {
	*RabbitMQExecutor
	conn *amqp.Connection
}

func (o *ownedConnExecutor) Close() error {
	return errors.Join(o.RabbitMQExecutor.Close(), o.conn.Close())
}

func connectRabbitMQ(uri string, logger *zap.Logger) (*amqp.Connection, error) {
	var err error
	for i := 1; i <= maxConnectAttempts; i++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("RabbitMQ connected successfully")
			go func() {
				notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))
				if closeErr := <-notifyClose; closeErr != nil {
					logger.Error("RabbitMQ connection lost", zap.Error(closeErr))
				}
			}()
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			zap.Error(err),
			zap.Int("attempt", i),
			zap.Duration("delay", connectRetryDelay),
		)
		if i < maxConnectAttempts {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxConnectAttempts, err)
}
