package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sequincore/pkg/domain"
)

// RecordPrefix namespaces archived records within a bucket or directory.
const RecordPrefix = "records/"

// Metadata keys attached to archived records.
const (
	MetaRecordID = "record-id"
	MetaBioseqs  = "bioseqs"
)

const recordContentType = "application/json"

// RecordKey returns the archive key for a record ID.
func RecordKey(id string) string { return RecordPrefix + id + ".json" }

// Archive stores whole records as JSON documents in a blob.Store.
type Archive struct {
	store Store
}

// NewArchive wraps store.
func NewArchive(store Store) *Archive { return &Archive{store: store} }

// Store exposes the underlying blob store.
func (a *Archive) Store() Store { return a.store }

// Save writes rec under RecordKey(rec.ID), replacing any earlier copy.
func (a *Archive) Save(ctx context.Context, rec domain.Record) (Info, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return Info{}, fmt.Errorf("%w: record has no id", ErrInvalidKey)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Info{}, fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	return a.store.Put(ctx, RecordKey(rec.ID), bytes.NewReader(data), PutOptions{
		ContentType: recordContentType,
		Metadata: map[string]string{
			MetaRecordID: rec.ID,
			MetaBioseqs:  strconv.Itoa(len(rec.Bioseqs())),
		},
		Overwrite: true,
	})
}

// Load decodes the record stored at key. A bare record ID is accepted as well.
func (a *Archive) Load(ctx context.Context, key string) (domain.Record, error) {
	if !strings.HasPrefix(key, RecordPrefix) {
		key = RecordKey(key)
	}
	_, rc, err := a.store.Get(ctx, key)
	if err != nil {
		return domain.Record{}, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.Record{}, fmt.Errorf("read %s: %w", key, err)
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Record{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return rec, nil
}

// List returns every archived record blob ordered by key.
func (a *Archive) List(ctx context.Context) ([]Info, error) {
	return a.store.List(ctx, RecordPrefix)
}
