package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const transportHTTP = "http"

// maxResultBytes ограничивает размер ответа воркера.
const maxResultBytes = 64 << 20

// HTTPExecutor отправляет задачу воркеру одним multipart POST запросом на <baseURL>/analyses
// и ждет JSON ответ (ResultMessage).
type HTTPExecutor struct {
	endpointURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewHTTPExecutor создает HTTP клиент воркера.
func NewHTTPExecutor(baseURL string, logger *zap.Logger) (*HTTPExecutor, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for analysis worker: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPExecutor{
		endpointURL: strings.TrimSuffix(baseURL, "/") + "/analyses",
		// Таймаут задается контекстом вызова, а не клиентом
		httpClient: &http.Client{},
		logger:     logger.Named("HTTPExecutor"),
	}, nil
}

// Execute реализует Executor.
func (e *HTTPExecutor) Execute(ctx context.Context, job Job) (res *Result, err error) {
	start := time.Now()
	defer func() { observe(transportHTTP, start, err) }()

	log := e.logger.With(zap.String("job_id", job.ID), zap.String("url", e.endpointURL))

	body, contentType, err := encodeMultipart(job)
	if err != nil {
		log.Error("Failed to encode analysis job", zap.Error(err))
		return nil, classifyError(ctx, fmt.Errorf("encode job: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpointURL, body)
	if err != nil {
		log.Error("Failed to create analysis request", zap.Error(err))
		return nil, classifyError(ctx, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	log.Debug("Sending analysis job to worker", zap.Int("files", len(job.Files)))
	resp, err := e.httpClient.Do(req)
	if err != nil {
		log.Error("Analysis request failed", zap.Error(err))
		return nil, classifyError(ctx, fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBytes))
	if err != nil {
		log.Error("Failed to read worker response", zap.Error(err))
		return nil, classifyError(ctx, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Worker returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", respBody),
		)
		return nil, classifyError(ctx, fmt.Errorf("worker returned status %d: %s", resp.StatusCode, string(respBody)))
	}

	var msg ResultMessage
	if err := json.Unmarshal(respBody, &msg); err != nil {
		log.Error("Failed to decode worker response", zap.Error(err))
		return nil, classifyError(ctx, fmt.Errorf("decode response: %w", err))
	}

	res, err = msg.toResult(job.OutputFilenames)
	if err != nil {
		log.Warn("Worker reported failure", zap.Error(err))
		return nil, err
	}
	log.Info("Analysis job completed", zap.Duration("duration", time.Since(start)))
	return res, nil
}

// Close закрывает простаивающие соединения.
func (e *HTTPExecutor) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}

// encodeMultipart упаковывает задачу: поля job_id, executable_key, output_filenames
// и по одной части "files" на каждый файл.
func encodeMultipart(job Job) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("job_id", job.ID); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("executable_key", job.ExecutableKey); err != nil {
		return nil, "", err
	}
	for _, name := range job.OutputFilenames {
		if err := w.WriteField("output_filenames", name); err != nil {
			return nil, "", err
		}
	}
	for _, f := range job.Files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
