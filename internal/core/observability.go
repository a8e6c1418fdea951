package core

import (
	"context"
	"time"

	"sequincore/internal/findrepl"
)

// Logger is the structured logging surface used by the service. Arguments
// after msg are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MetricsRecorder observes service operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// SessionRecorder is implemented by metrics recorders that also count the
// items touched by find and replace sessions.
type SessionRecorder interface {
	ObserveSession(ctx context.Context, operation string, summary findrepl.Summary)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// Tracer starts spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is ended exactly once with the operation error, if any.
type TraceSpan interface {
	End(err error)
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// AuditStatus is the outcome recorded for an audited operation.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutating operation.
type AuditEntry struct {
	Operation string
	Entity    EntityType
	Action    Action
	EntityID  string
	Status    AuditStatus
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// AuditRecorder receives audit entries for mutating operations.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Operation names reported to metrics, tracing and audit.
const (
	OpImportRecord = "import_record"
	OpImportFASTA  = "import_fasta"
	OpGetRecord    = "get_record"
	OpDeleteRecord = "delete_record"
	OpFind         = "find"
	OpFindReplace  = "find_replace"
	OpFindMulti    = "find_multi"
	OpExportRecord = "export_record"
	OpLoadRecord   = "load_record"
)

type auditOperation struct {
	entity EntityType
	action Action
}

// Only mutating operations are audited.
var auditOperations = map[string]auditOperation{
	OpImportRecord: {entity: EntityRecord, action: ActionCreate},
	OpImportFASTA:  {entity: EntityRecord, action: ActionCreate},
	OpDeleteRecord: {entity: EntityRecord, action: ActionDelete},
	OpFindReplace:  {entity: EntityRecord, action: ActionUpdate},
	OpLoadRecord:   {entity: EntityRecord, action: ActionUpdate},
}

func (s *Service) recordAuditSuccess(ctx context.Context, operation, entityID string, duration time.Duration) {
	s.recordAudit(ctx, operation, entityID, duration, nil)
}

func (s *Service) recordAuditError(ctx context.Context, operation, entityID string, duration time.Duration, err error) {
	s.recordAudit(ctx, operation, entityID, duration, err)
}

func (s *Service) recordAudit(ctx context.Context, operation, entityID string, duration time.Duration, err error) {
	meta, ok := auditOperations[operation]
	if !ok {
		return
	}
	entry := AuditEntry{
		Operation: operation,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
	}
	s.audit.Record(ctx, entry)
}

// begin starts an observed operation. The returned function must be called
// once with the affected record ID and the operation error.
func (s *Service) begin(ctx context.Context, operation string) (context.Context, func(entityID string, err error)) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, operation)
	return ctx, func(entityID string, err error) {
		duration := s.now().Sub(start)
		span.End(err)
		s.metrics.Observe(ctx, operation, err == nil, duration)
		if err != nil {
			s.logger.Error("operation failed", "operation", operation, "record", entityID, "error", err)
			s.recordAuditError(ctx, operation, entityID, duration, err)
			return
		}
		s.logger.Debug("operation complete", "operation", operation, "record", entityID, "duration", duration)
		s.recordAuditSuccess(ctx, operation, entityID, duration)
	}
}

func (s *Service) observeSession(ctx context.Context, operation string, summary findrepl.Summary) {
	if rec, ok := s.metrics.(SessionRecorder); ok {
		rec.ObserveSession(ctx, operation, summary)
	}
}
