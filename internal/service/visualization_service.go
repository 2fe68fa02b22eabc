package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stadium-designer/internal/analysis"
	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
	"stadium-designer/internal/scene"
)

// OutputFilename - файл, который воркер должен вернуть.
const OutputFilename = "output.txt"

// BundleBuilder собирает файлы для отправки воркеру.
type BundleBuilder interface {
	Build(p models.DesignParameters) (request.Bundle, error)
}

// VisualizationService определяет интерфейс построения 3D сцены по параметрам стадиона.
type VisualizationService interface {
	// Visualize собирает input.txt, запускает анализ, разбирает output.txt и строит сцену.
	// Любая ошибка терминальна: частичного результата нет.
	Visualize(ctx context.Context, params models.DesignParameters) (*scene.Result, error)
}

// Options - настройки вызова воркера.
type Options struct {
	ExecutableKey string
	Timeout       time.Duration
}

type visualizationServiceImpl struct {
	builder  BundleBuilder
	executor analysis.Executor
	opts     Options
	logger   *zap.Logger
}

// NewVisualizationService создает новый экземпляр VisualizationService.
func NewVisualizationService(builder BundleBuilder, executor analysis.Executor, opts Options, logger *zap.Logger) VisualizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &visualizationServiceImpl{
		builder:  builder,
		executor: executor,
		opts:     opts,
		logger:   logger.Named("VisualizationService"),
	}
}

func (s *visualizationServiceImpl) Visualize(ctx context.Context, params models.DesignParameters) (*scene.Result, error) {
	jobID := uuid.NewString()
	log := s.logger.With(zap.String("job_id", jobID))

	// 1. Файлы для воркера
	bundle, err := s.builder.Build(params)
	if err != nil {
		log.Error("Failed to build submission bundle", zap.Error(err))
		return nil, err
	}

	// 2. Вызов воркера с фиксированным таймаутом
	runCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	log.Info("Submitting analysis job",
		zap.String("executable_key", s.opts.ExecutableKey),
		zap.Strings("files", bundle.Names()),
		zap.Duration("timeout", s.opts.Timeout),
	)
	res, err := s.executor.Execute(runCtx, analysis.Job{
		ID:              jobID,
		ExecutableKey:   s.opts.ExecutableKey,
		Files:           bundle,
		OutputFilenames: []string{OutputFilename},
	})
	if err != nil {
		log.Error("Analysis job failed", zap.Error(err))
		return nil, err
	}

	output, err := res.OutputFile(OutputFilename)
	if err != nil {
		log.Error("Worker did not return output file", zap.Error(err))
		return nil, err
	}
	// 3. Разбор результата и построение сцены
	lines, err := scene.DecodeOutput(output)
	if err != nil {
		log.Error("Worker output is not valid UTF-8", zap.Int("bytes", len(output)))
		return nil, fmt.Errorf("%s: %w", OutputFilename, err)
	}
	result, err := scene.Interpret(lines)
	if err != nil {
		log.Error("Failed to interpret worker output", zap.Error(err))
		return nil, err
	}

	log.Info("Scene built",
		zap.Int("shapes", len(result.Geometry.Shapes)),
		zap.Float64("field_width", result.FieldWidth),
		zap.Float64("field_length", result.FieldLength),
	)
	return result, nil
}
