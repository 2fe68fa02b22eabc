package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const transportRabbitMQ = "rabbitmq"

var errExecutorClosed = errors.New("rabbitmq executor is closed")

// RabbitMQExecutor выполняет задачу как RPC через RabbitMQ: задача публикуется в очередь
// задач с CorrelationId и ReplyTo, ответ приходит в эксклюзивную очередь ответов.
type RabbitMQExecutor struct {
	ch         *amqp.Channel
	taskQueue  string
	replyQueue string
	logger     *zap.Logger

	publishMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan amqp.Delivery
	closed  bool
	done    chan struct{}
}

// NewRabbitMQExecutor открывает канал на conn, объявляет очередь задач и очередь ответов
// и запускает чтение ответов. Соединением владеет вызывающий.
func NewRabbitMQExecutor(conn *amqp.Connection, taskQueue string, logger *zap.Logger) (*RabbitMQExecutor, error) {
	if conn == nil {
		return nil, errors.New("rabbitmq connection is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Параметры очереди задач должны совпадать с теми, что объявляет воркер
	if _, err := ch.QueueDeclare(taskQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare task queue %s: %w", taskQueue, err)
	}

	replyQ, err := ch.QueueDeclare(
		"",    // имя генерирует брокер
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare reply queue: %w", err)
	}

	deliveries, err := ch.Consume(replyQ.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to consume reply queue %s: %w", replyQ.Name, err)
	}

	e := &RabbitMQExecutor{
		ch:         ch,
		taskQueue:  taskQueue,
		replyQueue: replyQ.Name,
		logger:     logger.Named("RabbitMQExecutor"),
		pending:    make(map[string]chan amqp.Delivery),
		done:       make(chan struct{}),
	}
	go e.dispatch(deliveries)

	e.logger.Info("RabbitMQ executor initialized",
		zap.String("task_queue", taskQueue),
		zap.String("reply_queue", replyQ.Name),
	)
	return e, nil
}

// dispatch раздает ответы ожидающим вызовам по CorrelationId.
func (e *RabbitMQExecutor) dispatch(deliveries <-chan amqp.Delivery) {
	defer close(e.done)

	for d := range deliveries {
		e.mu.Lock()
		replyCh, ok := e.pending[d.CorrelationId]
		delete(e.pending, d.CorrelationId)
		e.mu.Unlock()

		if !ok {
			// Ответ на задачу, которую уже перестали ждать (таймаут)
			e.logger.Warn("Dropping reply without waiting caller", zap.String("correlation_id", d.CorrelationId))
			continue
		}
		replyCh <- d
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	for id, replyCh := range e.pending {
		close(replyCh)
		delete(e.pending, id)
	}
	e.logger.Info("Reply consumer stopped")
}

// Execute реализует Executor.
func (e *RabbitMQExecutor) Execute(ctx context.Context, job Job) (res *Result, err error) {
	start := time.Now()
	defer func() { observe(transportRabbitMQ, start, err) }()

	correlationID := job.ID
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	log := e.logger.With(zap.String("job_id", job.ID), zap.String("correlation_id", correlationID))

	body, err := json.Marshal(newJobMessage(job))
	if err != nil {
		return nil, classifyError(ctx, fmt.Errorf("marshal job: %w", err))
	}

	replyCh := make(chan amqp.Delivery, 1)
	if err := e.register(correlationID, replyCh); err != nil {
		return nil, classifyError(ctx, err)
	}
	defer e.unregister(correlationID)

	publishing := amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		ReplyTo:       e.replyQueue,
		MessageId:     correlationID,
		Timestamp:     time.Now(),
		Body:          body,
	}
	// Задача, которую никто не ждет, не должна висеть в очереди
	if deadline, ok := ctx.Deadline(); ok {
		if ttl := time.Until(deadline).Milliseconds(); ttl > 0 {
			publishing.Expiration = strconv.FormatInt(ttl, 10)
		}
	}

	e.publishMu.Lock()
	err = e.ch.PublishWithContext(ctx, "", e.taskQueue, false, false, publishing)
	e.publishMu.Unlock()
	if err != nil {
		log.Error("Failed to publish analysis job", zap.Error(err))
		return nil, classifyError(ctx, fmt.Errorf("publish job: %w", err))
	}
	log.Debug("Analysis job published", zap.String("queue", e.taskQueue), zap.Int("bytes", len(body)))

	select {
	case d, ok := <-replyCh:
		if !ok {
			return nil, classifyError(ctx, errors.New("reply consumer stopped before worker answered"))
		}
		var msg ResultMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Error("Failed to decode worker reply", zap.Error(err))
			return nil, classifyError(ctx, fmt.Errorf("decode reply: %w", err))
		}
		res, err = msg.toResult(job.OutputFilenames)
		if err != nil {
			log.Warn("Worker reported failure", zap.Error(err))
			return nil, err
		}
		log.Info("Analysis job completed", zap.Duration("duration", time.Since(start)))
		return res, nil
	case <-ctx.Done():
		log.Warn("Stopped waiting for worker reply", zap.Error(ctx.Err()))
		return nil, classifyError(ctx, ctx.Err())
	}
}

func (e *RabbitMQExecutor) register(id string, replyCh chan amqp.Delivery) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errExecutorClosed
	}
	if _, exists := e.pending[id]; exists {
		return fmt.Errorf("job %s is already in flight", id)
	}
	e.pending[id] = replyCh
	return nil
}

func (e *RabbitMQExecutor) unregister(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, id)
}

// Close закрывает канал и дожидается остановки чтения ответов.
func (e *RabbitMQExecutor) Close() error {
	err := e.ch.Close()
	<-e.done
	return err
}
