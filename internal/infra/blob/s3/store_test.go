package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"sequincore/internal/blob/core"
)

func TestStore_MockedBasicFlow(t *testing.T) {
	store := NewMockForTests()
	ctx := context.Background()
	if store.Driver() != core.DriverS3 || store.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected driver/bucket %s %s", store.Driver(), store.Bucket())
	}
	info, err := store.Put(ctx, "records/r1.json", strings.NewReader(`{"id":"r1"}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"record-id": "r1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 11 || info.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", info)
	}
	if len(info.Checksum) != 64 {
		t.Fatalf("expected sha256 checksum, got %q", info.Checksum)
	}
	if info.Metadata["record-id"] != "r1" {
		t.Fatalf("expected user metadata, got %+v", info.Metadata)
	}
	if _, ok := info.Metadata[checksumKey]; ok {
		t.Fatalf("checksum should not leak into metadata")
	}
	if _, err := store.Put(ctx, "records/r1.json", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := store.Put(ctx, "records/r1.json", strings.NewReader(`{"id":"r1","v":2}`), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err := store.Get(ctx, "records/r1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"id":"r1","v":2}` {
		t.Fatalf("unexpected body %q", body)
	}
	ok, err := store.Delete(ctx, "records/r1.json")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = store.Delete(ctx, "records/r1.json")
	if err != nil || ok {
		t.Fatalf("expected missing delete, got %v %v", ok, err)
	}
	if _, err := store.Head(ctx, "records/r1.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from head, got %v", err)
	}
	if _, _, err := store.Get(ctx, "records/r1.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
}

func TestStore_ListPaginates(t *testing.T) {
	rt := NewMockTransport()
	rt.PageSize = 2
	store := newMockStore(rt, "paged")
	ctx := context.Background()
	for _, key := range []string{"records/c", "records/a", "records/b", "other/z"} {
		if _, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "records/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 3 || infos[0].Key != "records/a" || infos[2].Key != "records/c" {
		t.Fatalf("unexpected list %+v", infos)
	}
	if infos[1].Size != int64(len("records/b")) {
		t.Fatalf("unexpected size %d", infos[1].Size)
	}
	var listCalls int
	for _, r := range rt.Requests {
		if strings.HasPrefix(r, http.MethodGet+" /paged") && !strings.Contains(r, "records/") {
			listCalls++
		}
	}
	if listCalls != 2 {
		t.Fatalf("expected two list pages, got %d (%v)", listCalls, rt.Requests)
	}
}

func TestStore_New(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket required error")
	}
	s, err := New(context.Background(), Config{
		Bucket:          "b",
		Endpoint:        "http://localhost:9000",
		PathStyle:       true,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Bucket() != "b" {
		t.Fatalf("unexpected bucket %q", s.Bucket())
	}
}

func TestStore_EmptyKeyRejected(t *testing.T) {
	if _, err := NewMockForTests().Put(context.Background(), "", strings.NewReader(""), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
		t.Fatalf("expected invalid key, got %v", err)
	}
}

func TestDecodeChunked(t *testing.T) {
	got, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:abc\r\n\r\n"))
	if !ok || string(got) != "hello" {
		t.Fatalf("unexpected decode %q %v", got, ok)
	}
	if _, ok := decodeChunked([]byte("plain body")); ok {
		t.Fatalf("plain body should not decode")
	}
	if _, ok := decodeChunked([]byte("zz\r\nhello\r\n0\r\n")); ok {
		t.Fatalf("invalid size should not decode")
	}
}

func TestMockTransportUnsupported(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPatch, "https://mock.s3.local/b/k", nil)
	resp, err := NewMockTransport().RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}
