package analysis

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"stadium-designer/internal/models"
)

var (
	analysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of analysis jobs sent to the worker.",
		},
		[]string{"transport", "status"}, // "success", "timeout", "error"
	)
	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analysis_duration_seconds",
		Help:    "Duration of analysis jobs, including waiting for the worker.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s ... 64s
	}, []string{"transport"})
)

func observe(transport string, start time.Time, err error) {
	analysisDuration.WithLabelValues(transport).Observe(time.Since(start).Seconds())

	status := "success"
	switch {
	case errors.Is(err, models.ErrAnalysisTimeout):
		status = "timeout"
	case err != nil:
		status = "error"
	}
	analysisRequests.WithLabelValues(transport, status).Inc()
}
