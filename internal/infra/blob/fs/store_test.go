package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sequincore/internal/blob/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStore_PutGetHeadListDelete(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()
	if s.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	info, err := s.Put(ctx, "records/r1.json", strings.NewReader(`{"id":"r1"}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"record_id": "r1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 11 || len(info.Checksum) != 64 {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := s.Put(ctx, "records/r2.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	if _, err := s.Put(ctx, "other/x", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}

	head, err := s.Head(ctx, "records/r1.json")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.ContentType != "application/json" || head.Metadata["record_id"] != "r1" || head.Checksum != info.Checksum {
		t.Fatalf("unexpected head %+v", head)
	}

	got, rc, err := s.Get(ctx, "records/r1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"id":"r1"}` || got.Key != "records/r1.json" {
		t.Fatalf("unexpected get %q %+v", body, got)
	}

	list, err := s.List(ctx, "records/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "records/r1.json" || list[1].Key != "records/r2.json" {
		t.Fatalf("unexpected list %+v", list)
	}
	all, _ := s.List(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 blobs, got %d", len(all))
	}

	ok, err := s.Delete(ctx, "records/r1.json")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = s.Delete(ctx, "records/r1.json")
	if err != nil || ok {
		t.Fatalf("second delete should report missing: %v %v", ok, err)
	}
	if _, err := s.Head(ctx, "records/r1.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.Get(ctx, "records/r1.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
}

func TestStore_OverwriteKeepsCreatedAt(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()
	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return first }
	if _, err := s.Put(ctx, "a", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "a", strings.NewReader("two"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	second := first.Add(time.Hour)
	s.nowFn = func() time.Time { return second }
	info, err := s.Put(ctx, "a", strings.NewReader("three"), core.PutOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if !info.LastModified.Equal(second) {
		t.Fatalf("expected updated timestamp, got %v", info.LastModified)
	}
	mf, err := readMeta(filepath.Join(s.Root(), "a"+metaSuffix))
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if !mf.CreatedAt.Equal(first) {
		t.Fatalf("expected created_at preserved, got %v", mf.CreatedAt)
	}
	_, rc, _ := s.Get(ctx, "a")
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, rc)
	_ = rc.Close()
	if buf.String() != "three" {
		t.Fatalf("unexpected content %q", buf.String())
	}
}

func TestSanitizeKeyErrors(t *testing.T) {
	for _, key := range []string{"", "  ", "/abs", "../up", "a/../../b", "x.meta"} {
		if _, err := sanitizeKey(key); !errors.Is(err, core.ErrInvalidKey) {
			t.Fatalf("expected invalid key for %q, got %v", key, err)
		}
	}
	if got, err := sanitizeKey("a//b/./c"); err != nil || got != "a/b/c" {
		t.Fatalf("unexpected clean key %q %v", got, err)
	}
	if got, err := sanitizeKey("dots..ok"); err != nil || got != "dots..ok" {
		t.Fatalf("expected dotted name allowed, got %q %v", got, err)
	}
}

func TestStore_PutReaderErrorLeavesNothing(t *testing.T) {
	s := newTempStore(t)
	if _, err := s.Put(context.Background(), "broken", errorReader{}, core.PutOptions{}); err == nil {
		t.Fatalf("expected reader error")
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "broken")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no data file, got %v", err)
	}
	list, _ := s.List(context.Background(), "")
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestListMetaCorrupt(t *testing.T) {
	s := newTempStore(t)
	if err := os.WriteFile(filepath.Join(s.Root(), "bad"+metaSuffix), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.List(context.Background(), ""); err == nil {
		t.Fatalf("expected corrupt meta error")
	}
	if _, err := s.Head(context.Background(), "bad"); err == nil || errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(file); err == nil {
		t.Fatalf("expected error for file root")
	}
}
