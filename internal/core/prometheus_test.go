package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"sequincore/internal/findrepl"
)

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()
	rec.Observe(ctx, OpFindReplace, true, 20*time.Millisecond)
	rec.Observe(ctx, OpFindReplace, false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond)
	rec.ObserveSession(ctx, OpFindReplace, findrepl.Summary{
		Items: []findrepl.Item{
			{Kind: findrepl.ItemFeature, Found: true, Changed: true},
			{Kind: findrepl.ItemFeature, Found: true, Changed: true},
			{Kind: findrepl.ItemDescriptor, Found: true},
			{Kind: findrepl.ItemDescriptor, Found: true, FailedFields: 1},
		},
		FailedFields: 1,
	})

	if got := testutil.ToFloat64(rec.results.WithLabelValues(OpFindReplace, "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues(OpFindReplace, "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if got := testutil.ToFloat64(rec.items.WithLabelValues(OpFindReplace, "feature", "changed")); got != 2 {
		t.Fatalf("expected 2 changed features, got %v", got)
	}
	if got := testutil.ToFloat64(rec.items.WithLabelValues(OpFindReplace, "descriptor", "found")); got != 1 {
		t.Fatalf("expected failed descriptor to stay out of the found bucket, got %v", got)
	}
	if got := testutil.ToFloat64(rec.failed.WithLabelValues(OpFindReplace)); got != 1 {
		t.Fatalf("expected 1 failed field, got %v", got)
	}
	if n := testutil.CollectAndCount(rec.durations); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}

	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if _, err := NewPrometheusMetricsRecorder(nil); err != nil {
		t.Fatalf("unregistered recorder: %v", err)
	}
}

func TestPrometheusRecorderThroughService(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	svc := NewInMemoryService(NewDefaultRulesEngine(), WithMetricsRecorder(rec))
	ctx := context.Background()
	created, _, err := svc.ImportRecord(ctx, sampleRecord())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, _, err := svc.FindReplace(ctx, created.ID, "actin", "myosin", findrepl.Options{Replace: true}); err != nil {
		t.Fatalf("find replace: %v", err)
	}
	if got := testutil.ToFloat64(rec.items.WithLabelValues(OpFindReplace, "feature", "changed")); got != 1 {
		t.Fatalf("expected changed feature counted, got %v", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues(OpImportRecord, "success")); got != 1 {
		t.Fatalf("expected import counted, got %v", got)
	}
}
