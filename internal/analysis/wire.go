package analysis

import (
	"fmt"

	"stadium-designer/internal/models"
)

// ResultStatus - статус выполнения задачи воркером.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// FileMessage - файл в JSON-сообщении. Content кодируется в base64.
type FileMessage struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

// JobMessage - задача в том виде, в котором она уходит в очередь.
type JobMessage struct {
	JobID           string        `json:"jobId"`
	ExecutableKey   string        `json:"executableKey"`
	Files           []FileMessage `json:"files"`
	OutputFilenames []string      `json:"outputFilenames"`
}

// ResultMessage - ответ воркера (общий для HTTP и RabbitMQ).
type ResultMessage struct {
	JobID       string            `json:"jobId,omitempty"`
	Status      ResultStatus      `json:"status"`
	Error       string            `json:"error,omitempty"`
	OutputFiles map[string][]byte `json:"outputFiles,omitempty"`
}

func newJobMessage(job Job) JobMessage {
	files := make([]FileMessage, len(job.Files))
	for i, f := range job.Files {
		files[i] = FileMessage{Name: f.Name, Content: f.Content}
	}
	return JobMessage{
		JobID:           job.ID,
		ExecutableKey:   job.ExecutableKey,
		Files:           files,
		OutputFilenames: job.OutputFilenames,
	}
}

// toResult проверяет ответ воркера: статус success и наличие всех запрошенных файлов.
func (m ResultMessage) toResult(requested []string) (*Result, error) {
	if m.Status != StatusSuccess {
		msg := m.Error
		if msg == "" {
			msg = fmt.Sprintf("worker reported status %q", m.Status)
		}
		return nil, fmt.Errorf("%w: %s", models.ErrAnalysisFailed, msg)
	}
	for _, name := range requested {
		if _, ok := m.OutputFiles[name]; !ok {
			return nil, fmt.Errorf("%w: output file %q not returned by worker", models.ErrAnalysisFailed, name)
		}
	}
	return NewResult(m.OutputFiles), nil
}
