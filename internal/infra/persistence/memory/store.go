// Package memory provides an in-memory implementation of the record
// persistence store used for tests and ephemeral environments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sequincore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Record aliases domain.Record for in-memory persistence operations.
	Record = domain.Record
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

func mustApply(label string, err error) {
	if err != nil {
		panic(fmt.Errorf("memory store %s: %w", label, err))
	}
}

// memoryState keeps every record in its encoded form. Cloning the state for a
// transaction is a map copy; records are decoded on access so callers never
// share pointers into stored object graphs.
type memoryState struct {
	records map[string][]byte
}

// Snapshot captures a point-in-time copy of the store state.
type Snapshot struct {
	Records map[string]json.RawMessage `json:"records"`
}

func newMemoryState() memoryState {
	return memoryState{records: make(map[string][]byte)}
}

func (s memoryState) clone() memoryState {
	cp := memoryState{records: make(map[string][]byte, len(s.records))}
	for k, v := range s.records {
		cp.records[k] = v
	}
	return cp
}

func (s memoryState) find(id string) (Record, bool) {
	raw, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	var rec Record
	mustApply("decode record "+id, json.Unmarshal(raw, &rec))
	return rec, true
}

func (s memoryState) list() []Record {
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, _ := s.find(id)
		out = append(out, rec)
	}
	return out
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{Records: make(map[string]json.RawMessage, len(state.records))}
	for k, v := range state.records {
		s.Records[k] = append(json.RawMessage(nil), v...)
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Records {
		if k == "" || len(v) == 0 {
			continue
		}
		state.records[k] = append([]byte(nil), v...)
	}
	return state
}

// Store provides an in-memory transactional store for sequence records.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock used to stamp record timestamps.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

// ExportState copies the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

type transaction struct {
	state   memoryState
	changes []Change
	now     time.Time
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

func (v transactionView) ListRecords() []Record { return v.state.list() }

func (v transactionView) FindRecord(id string) (Record, bool) { return v.state.find(id) }

// RunInTransaction executes fn within a transactional copy of the store state.
// Blocking rule violations discard the copy and surface as RuleViolationError.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil && len(tx.changes) > 0 {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	return fn(newTransactionView(&snapshot))
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.find(id)
}

// ListRecords returns every stored record ordered by ID.
func (s *Store) ListRecords() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.list()
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

func (tx *transaction) put(rec Record) (Record, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("encode record %q: %w", rec.ID, err)
	}
	tx.state.records[rec.ID] = raw
	// Hand back a decoded copy so the caller's graph stays detached from state.
	var out Record
	if err := json.Unmarshal(raw, &out); err != nil {
		return Record{}, fmt.Errorf("decode record %q: %w", rec.ID, err)
	}
	return out, nil
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindRecord exposes record lookup within the transaction scope.
func (tx *transaction) FindRecord(id string) (Record, bool) {
	return tx.state.find(id)
}

// CreateRecord stores a new record within the transaction.
func (tx *transaction) CreateRecord(r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, exists := tx.state.records[r.ID]; exists {
		return Record{}, fmt.Errorf("record %q already exists", r.ID)
	}
	r.CreatedAt = tx.now
	r.UpdatedAt = tx.now
	stored, err := tx.put(r)
	if err != nil {
		return Record{}, err
	}
	after, _ := tx.state.find(r.ID)
	tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionCreate, After: &after})
	return stored, nil
}

// UpdateRecord mutates a record using the provided mutator function.
func (tx *transaction) UpdateRecord(id string, mutator func(*Record) error) (Record, error) {
	current, ok := tx.state.find(id)
	if !ok {
		return Record{}, fmt.Errorf("record %q not found", id)
	}
	before, _ := tx.state.find(id)
	if err := mutator(&current); err != nil {
		return Record{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	stored, err := tx.put(current)
	if err != nil {
		return Record{}, err
	}
	after, _ := tx.state.find(id)
	tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionUpdate, Before: &before, After: &after})
	return stored, nil
}

// DeleteRecord removes a record from the transaction state.
func (tx *transaction) DeleteRecord(id string) error {
	current, ok := tx.state.find(id)
	if !ok {
		return fmt.Errorf("record %q not found", id)
	}
	delete(tx.state.records, id)
	tx.recordChange(Change{Entity: domain.EntityRecord, Action: domain.ActionDelete, Before: &current})
	return nil
}
