package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stadium-designer/internal/config"
	"stadium-designer/internal/models"
)

func TestNew_HTTPTransport(t *testing.T) {
	cfg := &config.Config{Analysis: config.AnalysisConfig{
		Transport:     config.TransportHTTP,
		WorkerBaseURL: "http://worker.local:8090",
	}}

	exec, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer exec.Close()

	httpExec, ok := exec.(*HTTPExecutor)
	require.True(t, ok)
	assert.Equal(t, "http://worker.local:8090/analyses", httpExec.endpointURL)
}

func TestNew_UnknownTransport(t *testing.T) {
	cfg := &config.Config{Analysis: config.AnalysisConfig{Transport: "smtp"}}

	exec, err := New(cfg, zap.NewNop())
	assert.Nil(t, exec)
	assert.ErrorContains(t, err, `unknown analysis transport "smtp"`)
}

func TestClassifyError(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-expired.Done()

	assert.ErrorIs(t, classifyError(context.Background(), errors.New("x")), models.ErrAnalysisFailed)
	assert.ErrorIs(t, classifyError(context.Background(), context.DeadlineExceeded), models.ErrAnalysisTimeout)
	assert.ErrorIs(t, classifyError(expired, errors.New("connection reset")), models.ErrAnalysisTimeout)

	already := classifyError(context.Background(), models.ErrAnalysisFailed)
	assert.Equal(t, models.ErrAnalysisFailed, already)
}
