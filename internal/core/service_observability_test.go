package core

import (
	"bytes"
	"context"
	"expvar"
	"strings"
	"testing"
	"time"

	"sequincore/internal/blob"
	"sequincore/internal/findrepl"
)

const (
	entryStatusSuccess = "success"
	entryStatusError   = "error"
)

func TestServiceObservabilityCompliance(t *testing.T) {
	ctx := context.Background()
	audit := &auditRecorderStub{}
	metrics := &captureMetricsRecorder{}
	tracer := &captureTracer{}
	logger := &captureLogger{}

	svc := NewInMemoryService(NewDefaultRulesEngine(),
		WithAuditRecorder(audit),
		WithMetricsRecorder(metrics),
		WithTracer(tracer),
		WithLogger(logger),
		WithArchive(blob.NewArchive(blob.NewMemory())),
	)

	rec, _, err := svc.ImportRecord(ctx, sampleRecord())
	if err != nil {
		t.Fatalf("import record: %v", err)
	}
	if !audit.has(OpImportRecord, AuditStatusSuccess, func(entry AuditEntry) bool {
		return entry.EntityID == rec.ID && entry.Action == ActionCreate && entry.Entity == EntityRecord
	}) {
		t.Fatalf("expected audit entry for import_record success")
	}

	if _, _, err := svc.FindReplace(ctx, rec.ID, "actin", "", findrepl.Options{}); err != nil {
		t.Fatalf("find: %v", err)
	}
	if audit.has(OpFind, AuditStatusSuccess, nil) {
		t.Fatalf("find-only sessions must not be audited")
	}
	if len(metrics.sessions[OpFind]) != 1 {
		t.Fatalf("expected session metrics for find")
	}

	if _, _, err := svc.FindReplace(ctx, rec.ID, "actin", "myosin", findrepl.Options{Replace: true}); err != nil {
		t.Fatalf("find replace: %v", err)
	}
	if !audit.has(OpFindReplace, AuditStatusSuccess, func(entry AuditEntry) bool { return entry.Action == ActionUpdate }) {
		t.Fatalf("expected audit entry for find_replace")
	}
	if s := metrics.sessions[OpFindReplace]; len(s) != 1 || !s[0].Dirty() {
		t.Fatalf("expected dirty session metrics for find_replace, got %+v", s)
	}

	if _, err := svc.FindMulti(ctx, rec.ID, []string{"myosin"}, findrepl.Options{}); err != nil {
		t.Fatalf("find multi: %v", err)
	}
	if _, err := svc.ExportRecord(ctx, rec.ID); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, _, err := svc.LoadRecord(ctx, rec.ID); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := svc.DeleteRecord(ctx, "missing-record"); err == nil {
		t.Fatalf("expected delete_record error for missing id")
	}
	if !audit.has(OpDeleteRecord, AuditStatusError, func(entry AuditEntry) bool { return strings.Contains(entry.Error, "not found") }) {
		t.Fatalf("expected audit error entry for delete_record")
	}
	if !metrics.has(OpDeleteRecord, false) {
		t.Fatalf("expected metrics entry for failed delete_record")
	}
	if !tracer.has(OpDeleteRecord, false) {
		t.Fatalf("expected trace span for failed delete_record")
	}
	if logger.count("error") == 0 {
		t.Fatalf("expected failed operation to be logged")
	}

	if _, err := svc.DeleteRecord(ctx, rec.ID); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	successOps := []string{OpImportRecord, OpFind, OpFindReplace, OpFindMulti, OpExportRecord, OpLoadRecord, OpDeleteRecord}
	for _, op := range successOps {
		if !metrics.has(op, true) {
			t.Fatalf("expected metrics success entry for %s", op)
		}
		if !tracer.has(op, true) {
			t.Fatalf("expected finished span for %s", op)
		}
	}
	for _, op := range []string{OpImportRecord, OpFindReplace, OpLoadRecord, OpDeleteRecord} {
		if !audit.has(op, AuditStatusSuccess, nil) {
			t.Fatalf("expected audit success entry for %s", op)
		}
	}
	for _, op := range []string{OpFind, OpFindMulti, OpExportRecord} {
		if audit.has(op, AuditStatusSuccess, nil) {
			t.Fatalf("read-only operation %s was audited", op)
		}
	}
	if len(tracer.started) != len(tracer.ended) {
		t.Fatalf("spans started %d, ended %d", len(tracer.started), len(tracer.ended))
	}
}

func TestRecordAuditSuccessUsesMetadata(t *testing.T) {
	fixed := time.Date(2024, 10, 1, 8, 30, 0, 0, time.UTC)
	recorder := &auditRecorderStub{}
	svc := NewInMemoryService(
		NewDefaultRulesEngine(),
		WithAuditRecorder(recorder),
		WithClock(ClockFunc(func() time.Time { return fixed })),
	)

	duration := 42 * time.Millisecond
	svc.recordAuditSuccess(context.Background(), OpDeleteRecord, "record-123", duration)

	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Operation != OpDeleteRecord || entry.Entity != EntityRecord || entry.Action != ActionDelete {
		t.Fatalf("unexpected entry metadata: %+v", entry)
	}
	if entry.EntityID != "record-123" || entry.Status != AuditStatusSuccess || entry.Duration != duration {
		t.Fatalf("unexpected entry values: %+v", entry)
	}
	if !entry.Timestamp.Equal(fixed) {
		t.Fatalf("expected timestamp %v, got %v", fixed, entry.Timestamp)
	}
}

func TestRecordAuditSuccessIgnoresUnknownOperation(t *testing.T) {
	recorder := &auditRecorderStub{}
	svc := NewInMemoryService(NewDefaultRulesEngine(), WithAuditRecorder(recorder))

	svc.recordAuditSuccess(context.Background(), "unknown_operation", "entity", time.Second)

	if len(recorder.entries) != 0 {
		t.Fatalf("expected no audit entries for unknown operation, got %d", len(recorder.entries))
	}
}

func TestNoopLogger(_ *testing.T) {
	logger := noopLogger{}
	logger.Debug("test debug message", "key", "value")
	logger.Info("test info message", "key", "value")
	logger.Warn("test warn message", "key", "value")
	logger.Error("test error message", "key", "value")
}

func TestExpvarMetricsRecorderExports(t *testing.T) {
	recorder := NewExpvarMetricsRecorder("")
	if recorder.Name() == "" {
		t.Fatalf("expected recorder to have export name")
	}
	recorder.Observe(context.Background(), "test_op", true, 10*time.Millisecond)
	recorder.Observe(context.Background(), "test_op", false, 5*time.Millisecond)
	recorder.Observe(context.Background(), "", true, time.Second)
	recorder.ObserveSession(context.Background(), "test_op", findrepl.Summary{
		Items:        []findrepl.Item{{Found: true}, {Found: true, Changed: true}, {Found: true, FailedFields: 2}},
		FailedFields: 2,
	})

	snapshot := recorder.Snapshot()
	if snapshot.DurationsMS["test_op"] <= 0 {
		t.Fatalf("expected positive duration, snapshot=%+v", snapshot)
	}
	if snapshot.Results["test_op"][entryStatusSuccess] != 1 || snapshot.Results["test_op"][entryStatusError] != 1 {
		t.Fatalf("unexpected results snapshot=%+v", snapshot)
	}
	if len(snapshot.Results) != 1 {
		t.Fatalf("empty operation should be ignored, snapshot=%+v", snapshot)
	}
	items := snapshot.Items["test_op"]
	if items["found"] != 1 || items["changed"] != 1 || items["failed_fields"] != 2 {
		t.Fatalf("unexpected item counts: %+v", items)
	}

	if v := expvar.Get(recorder.Name()); v == nil {
		t.Fatalf("expected expvar export to be registered")
	} else if !strings.Contains(v.String(), "test_op") {
		t.Fatalf("expected expvar output to contain operation: %s", v.String())
	}
}

func TestJSONTraceTracerExports(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	_, span := tracer.Start(context.Background(), "trace_op")
	span.End(nil)
	_, failed := tracer.Start(context.Background(), "trace_fail")
	failed.End(ErrNoArchive)

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected two span entries, got %d", len(entries))
	}
	if entries[0].Operation != "trace_op" || entries[0].Status != entryStatusSuccess {
		t.Fatalf("unexpected span entry: %+v", entries[0])
	}
	if entries[1].Status != entryStatusError || entries[1].Error != ErrNoArchive.Error() {
		t.Fatalf("unexpected failed span entry: %+v", entries[1])
	}
	if !strings.Contains(buf.String(), "\"operation\":\"trace_op\"") {
		t.Fatalf("expected JSON output to contain operation: %q", buf.String())
	}
}
