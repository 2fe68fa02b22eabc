// Package analysis - граница с внешним воркером, который запускает Grasshopper-модель.
// Вызов блокирующий: Execute возвращает либо результат, либо ошибку, время ожидания
// ограничивается контекстом вызывающего. Повторных попыток нет.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
)

// Job - одна задача для воркера.
type Job struct {
	ID              string
	ExecutableKey   string
	Files           request.Bundle
	OutputFilenames []string
}

// Result - файлы, которые вернул воркер.
type Result struct {
	files map[string][]byte
}

// NewResult создает Result из набора файлов.
func NewResult(files map[string][]byte) *Result {
	return &Result{files: files}
}

// OutputFile возвращает содержимое файла по имени.
func (r *Result) OutputFile(name string) ([]byte, error) {
	data, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: output file %q not returned by worker", models.ErrAnalysisFailed, name)
	}
	return data, nil
}

// Executor выполняет задачу на внешнем воркере.
type Executor interface {
	Execute(ctx context.Context, job Job) (*Result, error)
}

// ClosableExecutor - Executor, владеющий ресурсами (соединения, каналы).
type ClosableExecutor interface {
	Executor
	io.Closer
}

// classifyError приводит ошибку транспорта к ErrAnalysisTimeout или ErrAnalysisFailed.
func classifyError(ctx context.Context, err error) error {
	if errors.Is(err, models.ErrAnalysisTimeout) || errors.Is(err, models.ErrAnalysisFailed) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrAnalysisTimeout, err)
	}
	return fmt.Errorf("%w: %v", models.ErrAnalysisFailed, err)
}
