package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stadium-designer/internal/analysis"
	"stadium-designer/internal/mocks"
	"stadium-designer/internal/models"
	"stadium-designer/internal/request"
	"stadium-designer/internal/scene"
	"stadium-designer/internal/service"
)

// Конвейер синхронный: после каждого теста не должно оставаться горутин.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	testParams = models.DesignParameters{
		PitchWidth: 68, Offset: 2, Shape: "Oval", Depth: 30, AsymmetryLength: 0.1, AsymmetryWidth: 0.2, Height: 12,
	}
	testOpts = service.Options{ExecutableKey: "run_grasshopper", Timeout: 60 * time.Second}
)

const testOutput = "12\n5.0\n10.0\n{0,0,0},{1,0,0},{0,1,0}\n"

func newAssetsDir(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, request.RhinoFilename), []byte("3dm"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, request.GrasshopperFilename), []byte("gh"), 0644))
	return dir
}

func TestVisualize_Success(t *testing.T) {
	executor := mocks.NewMockExecutor(t)
	svc := service.NewVisualizationService(request.NewBuilder(newAssetsDir(t), nil), executor, testOpts, nil)

	executor.On("Execute", mock.Anything, mock.MatchedBy(func(job analysis.Job) bool {
		return job.ID != "" &&
			job.ExecutableKey == "run_grasshopper" &&
			cmp.Equal(job.OutputFilenames, []string{"output.txt"}) &&
			cmp.Equal(job.Files.Names(), []string{"input.txt", "sample_app.3dm", "sample_app_gh.gh"}) &&
			string(job.Files[0].Content) == "68, 2, Oval, 30, 0.1, 0.2, 12"
	})).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		deadline, ok := ctx.Deadline()
		assert.True(t, ok, "executor must be called with a deadline")
		assert.WithinDuration(t, time.Now().Add(60*time.Second), deadline, 5*time.Second)
	}).Return(analysis.NewResult(map[string][]byte{"output.txt": []byte(testOutput)}), nil).Once()

	res, err := svc.Visualize(context.Background(), testParams)
	require.NoError(t, err)

	seats, _ := res.Data.Get(scene.SeatsLabel)
	assert.Equal(t, "12", seats)
	assert.Equal(t, 10.0, res.FieldWidth)
	assert.Equal(t, 20.0, res.FieldLength)
	assert.Len(t, res.Geometry.Shapes, 8)
}

func TestVisualize_AssetFailureStopsBeforeSubmission(t *testing.T) {
	executor := mocks.NewMockExecutor(t)
	builder := mocks.NewMockBundleBuilder(t)
	svc := service.NewVisualizationService(builder, executor, testOpts, nil)

	builder.On("Build", testParams).Return(nil, fmt.Errorf("%w: sample_app.3dm", models.ErrAssetUnavailable)).Once()

	res, err := svc.Visualize(context.Background(), testParams)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, models.ErrAssetUnavailable)
	executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestVisualize_ExecutorErrorsPropagate(t *testing.T) {
	for _, wantErr := range []error{models.ErrAnalysisTimeout, models.ErrAnalysisFailed} {
		t.Run(wantErr.Error(), func(t *testing.T) {
			executor := mocks.NewMockExecutor(t)
			svc := service.NewVisualizationService(request.NewBuilder(newAssetsDir(t), nil), executor, testOpts, nil)

			executor.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: worker", wantErr)).Once()

			res, err := svc.Visualize(context.Background(), testParams)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, wantErr)
		})
	}
}

func TestVisualize_TimeoutIsApplied(t *testing.T) {
	executor := mocks.NewMockExecutor(t)
	opts := service.Options{ExecutableKey: "run_grasshopper", Timeout: 50 * time.Millisecond}
	svc := service.NewVisualizationService(request.NewBuilder(newAssetsDir(t), nil), executor, opts, nil)

	executor.On("Execute", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, _ analysis.Job) *analysis.Result {
			<-ctx.Done()
			return nil
		},
		func(ctx context.Context, _ analysis.Job) error {
			return fmt.Errorf("%w: %v", models.ErrAnalysisTimeout, ctx.Err())
		},
	).Once()

	start := time.Now()
	_, err := svc.Visualize(context.Background(), testParams)
	assert.ErrorIs(t, err, models.ErrAnalysisTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestVisualize_MalformedOutput(t *testing.T) {
	tests := []struct {
		name  string
		files map[string][]byte
		want  error
	}{
		{name: "missing output file", files: map[string][]byte{}, want: models.ErrAnalysisFailed},
		{name: "too few lines", files: map[string][]byte{"output.txt": []byte("12\n5.0\n")}, want: models.ErrMalformedResult},
		{name: "bad triangle", files: map[string][]byte{"output.txt": []byte("12\n5\n10\n{0,0,0},{1,1,1}\n")}, want: models.ErrMalformedResult},
		{name: "not utf-8", files: map[string][]byte{"output.txt": {0xff, 0xfe, 0x00}}, want: models.ErrMalformedResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := mocks.NewMockExecutor(t)
			svc := service.NewVisualizationService(request.NewBuilder(newAssetsDir(t), nil), executor, testOpts, nil)

			executor.On("Execute", mock.Anything, mock.Anything).Return(analysis.NewResult(tt.files), nil).Once()

			res, err := svc.Visualize(context.Background(), testParams)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
