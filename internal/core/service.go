package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"sequincore/internal/blob"
	"sequincore/internal/fasta"
	"sequincore/internal/findrepl"
	"sequincore/internal/infra/persistence/memory"
	"sequincore/pkg/domain"
)

// ErrNoArchive is returned by archive operations on a service built without one.
var ErrNoArchive = errors.New("core: no blob archive configured")

// errUnchanged aborts a replace transaction that rewrote nothing.
var errUnchanged = errors.New("core: record unchanged")

// ErrNotFound is returned when an operation names a record that does not exist.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type nowSetter interface {
	SetNowFunc(func() time.Time)
}

// Service runs find/replace sessions against stored records inside store
// transactions and reports every operation to the configured observers.
type Service struct {
	store   PersistentStore
	archive *blob.Archive
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
	clock   Clock
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		logger:  noopLogger{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		audit:   noopAuditRecorder{},
		clock:   systemClock{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	if _, ok := svc.clock.(systemClock); !ok {
		if setter, ok := store.(nowSetter); ok {
			setter.SetNowFunc(svc.clock.Now)
		}
	}
	return svc
}

// NewInMemoryService creates a service and in-memory store with the given rules engine.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// Archive returns the configured blob archive, or nil.
func (s *Service) Archive() *blob.Archive {
	return s.archive
}

func (s *Service) now() time.Time {
	return s.clock.Now()
}

// ImportRecord stores a new record. An empty ID is assigned by the store.
func (s *Service) ImportRecord(ctx context.Context, rec Record) (Record, Result, error) {
	ctx, done := s.begin(ctx, OpImportRecord)
	created, res, err := s.create(ctx, rec)
	done(firstNonEmpty(created.ID, rec.ID), err)
	return created, res, err
}

// ImportFASTA parses FASTA text into a new record and stores it.
func (s *Service) ImportFASTA(ctx context.Context, r io.Reader, name string, opts fasta.Options) (Record, Result, error) {
	ctx, done := s.begin(ctx, OpImportFASTA)
	rec, err := fasta.ReadRecord(r, name, opts)
	if err != nil {
		done("", err)
		return Record{}, Result{}, err
	}
	created, res, err := s.create(ctx, rec)
	if err == nil {
		s.logger.Info("imported fasta", "record", created.ID, "bioseqs", len(created.Bioseqs()))
	}
	done(created.ID, err)
	return created, res, err
}

func (s *Service) create(ctx context.Context, rec Record) (Record, Result, error) {
	var created Record
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		created, err = tx.CreateRecord(rec)
		return err
	})
	return created, res, err
}

// GetRecord returns a detached copy of the stored record.
func (s *Service) GetRecord(ctx context.Context, id string) (Record, error) {
	_, done := s.begin(ctx, OpGetRecord)
	rec, ok := s.store.GetRecord(id)
	if !ok {
		err := ErrNotFound{Entity: EntityRecord, ID: id}
		done(id, err)
		return Record{}, err
	}
	done(id, nil)
	return rec, nil
}

// ListRecords returns every stored record ordered by ID.
func (s *Service) ListRecords(_ context.Context) []Record {
	return s.store.ListRecords()
}

// DeleteRecord removes a record.
func (s *Service) DeleteRecord(ctx context.Context, id string) (Result, error) {
	ctx, done := s.begin(ctx, OpDeleteRecord)
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if _, ok := tx.FindRecord(id); !ok {
			return ErrNotFound{Entity: EntityRecord, ID: id}
		}
		return tx.DeleteRecord(id)
	})
	done(id, err)
	return res, err
}

// FindReplace runs a find/replace session over a stored record. Without
// opts.Replace the record is only read. With it, the rewritten record is
// committed when at least one field changed; blocking rule violations roll the
// change back and are returned as RuleViolationError alongside the summary.
func (s *Service) FindReplace(ctx context.Context, id, find, replace string, opts findrepl.Options) (findrepl.Summary, Result, error) {
	if !opts.Replace {
		ctx, done := s.begin(ctx, OpFind)
		var summary findrepl.Summary
		err := s.store.View(ctx, func(view TransactionView) error {
			rec, ok := view.FindRecord(id)
			if !ok {
				return ErrNotFound{Entity: EntityRecord, ID: id}
			}
			var err error
			summary, err = findrepl.FindReplace(&rec, find, replace, opts)
			return err
		})
		if err == nil {
			s.observeSession(ctx, OpFind, summary)
		}
		done(id, err)
		return summary, Result{}, err
	}

	ctx, done := s.begin(ctx, OpFindReplace)
	var summary findrepl.Summary
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if _, ok := tx.FindRecord(id); !ok {
			return ErrNotFound{Entity: EntityRecord, ID: id}
		}
		_, err := tx.UpdateRecord(id, func(rec *Record) error {
			var err error
			summary, err = findrepl.FindReplace(rec, find, replace, opts)
			if err != nil {
				return err
			}
			if !summary.Dirty() {
				return errUnchanged
			}
			return nil
		})
		return err
	})
	if errors.Is(err, errUnchanged) {
		err = nil
	}
	if err == nil {
		s.observeSession(ctx, OpFindReplace, summary)
		if summary.FailedFields > 0 {
			s.logger.Warn("fields left unchanged", "record", id, "failed", summary.FailedFields)
		}
	}
	done(id, err)
	return summary, res, err
}

// FindMulti reports the items of a stored record that contain any of patterns.
func (s *Service) FindMulti(ctx context.Context, id string, patterns []string, opts findrepl.Options) (findrepl.Summary, error) {
	ctx, done := s.begin(ctx, OpFindMulti)
	var summary findrepl.Summary
	err := s.store.View(ctx, func(view TransactionView) error {
		rec, ok := view.FindRecord(id)
		if !ok {
			return ErrNotFound{Entity: EntityRecord, ID: id}
		}
		var err error
		summary, err = findrepl.FindMulti(&rec, patterns, opts)
		return err
	})
	if err == nil {
		s.observeSession(ctx, OpFindMulti, summary)
	}
	done(id, err)
	return summary, err
}

// ExportRecord writes a stored record to the archive, replacing any earlier export.
func (s *Service) ExportRecord(ctx context.Context, id string) (blob.Info, error) {
	ctx, done := s.begin(ctx, OpExportRecord)
	info, err := s.export(ctx, id)
	done(id, err)
	return info, err
}

func (s *Service) export(ctx context.Context, id string) (blob.Info, error) {
	if s.archive == nil {
		return blob.Info{}, ErrNoArchive
	}
	rec, ok := s.store.GetRecord(id)
	if !ok {
		return blob.Info{}, ErrNotFound{Entity: EntityRecord, ID: id}
	}
	return s.archive.Save(ctx, rec)
}

// LoadRecord reads an archived record and stores it under its archived ID,
// replacing the stored copy when one exists.
func (s *Service) LoadRecord(ctx context.Context, key string) (Record, Result, error) {
	ctx, done := s.begin(ctx, OpLoadRecord)
	if s.archive == nil {
		done("", ErrNoArchive)
		return Record{}, Result{}, ErrNoArchive
	}
	loaded, err := s.archive.Load(ctx, key)
	if err != nil {
		done("", err)
		return Record{}, Result{}, err
	}
	var stored Record
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		if _, ok := tx.FindRecord(loaded.ID); !ok {
			stored, err = tx.CreateRecord(loaded)
			return err
		}
		stored, err = tx.UpdateRecord(loaded.ID, func(rec *Record) error {
			rec.Name = loaded.Name
			rec.Submit = loaded.Submit
			rec.Entries = loaded.Entries
			return nil
		})
		return err
	})
	done(loaded.ID, err)
	return stored, res, err
}

// ListArchived returns the archived record objects.
func (s *Service) ListArchived(ctx context.Context) ([]blob.Info, error) {
	if s.archive == nil {
		return nil, ErrNoArchive
	}
	return s.archive.List(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ domain.PersistentStore = (*memory.Store)(nil)
