package core

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sequincore/internal/findrepl"
)

// PrometheusMetricsRecorder exports operation timings and find/replace item
// counts as Prometheus collectors.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
	items     *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder registers the recorder collectors with reg.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	r := &PrometheusMetricsRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sequin",
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sequin",
			Name:      "operation_results_total",
			Help:      "Service operation outcomes by status.",
		}, []string{"operation", "status"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sequin",
			Name:      "session_items_total",
			Help:      "Items found or changed by find and replace sessions.",
		}, []string{"operation", "kind", "outcome"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sequin",
			Name:      "session_failed_fields_total",
			Help:      "Fields a replace session could not rewrite.",
		}, []string{"operation"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{r.durations, r.results, r.items, r.failed} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("register prometheus collector: %w", err)
			}
		}
	}
	return r, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
	r.results.WithLabelValues(operation, status).Inc()
}

// ObserveSession implements SessionRecorder.
func (r *PrometheusMetricsRecorder) ObserveSession(_ context.Context, operation string, summary findrepl.Summary) {
	for _, item := range summary.Items {
		outcome := "found"
		switch {
		case item.Changed:
			outcome = "changed"
		case item.FailedFields > 0:
			continue
		}
		r.items.WithLabelValues(operation, item.Kind.String(), outcome).Inc()
	}
	if summary.FailedFields > 0 {
		r.failed.WithLabelValues(operation).Add(float64(summary.FailedFields))
	}
}
