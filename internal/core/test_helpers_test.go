package core

import (
	"context"
	"time"

	"sequincore/internal/findrepl"
	"sequincore/internal/infra/persistence/memory"
	"sequincore/pkg/domain"
)

func localID(s string) domain.SeqID {
	return &domain.LocalID{Tag: domain.ObjectID{Str: s}}
}

// sampleRecord holds one DNA sequence with a title, a source and a gene feature.
func sampleRecord() Record {
	return Record{
		Name: "sample",
		Entries: []domain.SeqEntry{&domain.Bioseq{
			IDs: []domain.SeqID{localID("seq1")},
			Descr: []domain.SeqDescr{
				&domain.TitleDescr{Text: "zebrafish actin"},
				&domain.BioSource{Org: &domain.OrgRef{Taxname: "Danio rerio"}},
			},
			Annot: []*domain.SeqAnnot{{Feats: []*domain.SeqFeat{{
				Data:    &domain.GeneRef{Locus: "actb"},
				Comment: "actin gene",
			}}}},
			Inst: domain.SeqInst{Mol: domain.MolDNA, Length: 4, Seq: "ACGT"},
		}},
	}
}

// pairRecord holds two sequences in a population set.
func pairRecord() Record {
	return Record{
		Name: "pair",
		Entries: []domain.SeqEntry{&domain.BioseqSet{
			Class: domain.SetClassPopSet,
			Seqs: []domain.SeqEntry{
				&domain.Bioseq{IDs: []domain.SeqID{localID("seq1")}, Inst: domain.SeqInst{Mol: domain.MolDNA}},
				&domain.Bioseq{IDs: []domain.SeqID{localID("seq2")}, Inst: domain.SeqInst{Mol: domain.MolDNA}},
			},
		}},
	}
}

func titleOf(rec Record) string {
	for _, d := range rec.Descriptors() {
		if t, ok := d.(*domain.TitleDescr); ok {
			return t.Text
		}
	}
	return ""
}

// countingStore counts write transactions against the embedded memory store.
type countingStore struct {
	*memory.Store
	txCalls int
}

func (c *countingStore) RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error) {
	c.txCalls++
	return c.Store.RunInTransaction(ctx, fn)
}

type auditRecorderStub struct {
	entries []AuditEntry
}

func (a *auditRecorderStub) Record(_ context.Context, entry AuditEntry) {
	a.entries = append(a.entries, entry)
}

func (a *auditRecorderStub) has(op string, status AuditStatus, predicate func(AuditEntry) bool) bool {
	for _, entry := range a.entries {
		if entry.Operation == op && entry.Status == status {
			if predicate == nil || predicate(entry) {
				return true
			}
		}
	}
	return false
}

type metricsCall struct {
	op       string
	success  bool
	duration time.Duration
}

type captureMetricsRecorder struct {
	calls    []metricsCall
	sessions map[string][]findrepl.Summary
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, duration time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success, duration: duration})
}

func (c *captureMetricsRecorder) ObserveSession(_ context.Context, op string, summary findrepl.Summary) {
	if c.sessions == nil {
		c.sessions = make(map[string][]findrepl.Summary)
	}
	c.sessions[op] = append(c.sessions[op], summary)
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	started []string
	ended   []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.started = append(c.started, op)
	return ctx, &captureSpan{tracer: c, op: op}
}

func (c *captureTracer) has(op string, success bool) bool {
	for _, record := range c.ended {
		if record.op == op && (record.err == nil) == success {
			return true
		}
	}
	return false
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

type logCall struct {
	level string
	msg   string
	args  []any
}

type captureLogger struct {
	calls []logCall
}

func (l *captureLogger) Debug(msg string, args ...any) { l.log("debug", msg, args) }
func (l *captureLogger) Info(msg string, args ...any)  { l.log("info", msg, args) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args) }
func (l *captureLogger) Error(msg string, args ...any) { l.log("error", msg, args) }

func (l *captureLogger) log(level, msg string, args []any) {
	l.calls = append(l.calls, logCall{level: level, msg: msg, args: args})
}

func (l *captureLogger) count(level string) int {
	n := 0
	for _, c := range l.calls {
		if c.level == level {
			n++
		}
	}
	return n
}
