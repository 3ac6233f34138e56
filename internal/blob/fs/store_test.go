package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"optithor/internal/blob"
)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	payload := []byte(`{"records":[]}`)
	info, err := store.Put(ctx, "snapshots/compounds.json", bytes.NewReader(payload), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"records": "0"},
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Size != int64(len(payload)) || info.ETag == "" {
		t.Errorf("info = %+v, want size %d and non-empty etag", info, len(payload))
	}

	got, rc, err := store.Get(ctx, "snapshots/compounds.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("content %q, want %q", data, payload)
	}
	if got.ETag != info.ETag || got.Metadata["records"] != "0" {
		t.Errorf("metadata round trip failed: %+v", got)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Put(ctx, "db.json", bytes.NewReader([]byte("v1")), blob.PutOptions{}); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if _, err := store.Put(ctx, "db.json", bytes.NewReader([]byte("v2-longer")), blob.PutOptions{}); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	info, rc, err := store.Get(ctx, "db.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "v2-longer" || info.Size != 9 {
		t.Errorf("got %q (size %d), want replacement content", data, info.Size)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := store.Get(context.Background(), "absent.json"); !errors.Is(err, blob.ErrNotFound) {
		t.Errorf("Get missing = %v, want blob.ErrNotFound", err)
	}
	if _, err := store.Head(context.Background(), "absent.json"); !errors.Is(err, blob.ErrNotFound) {
		t.Errorf("Head missing = %v, want blob.ErrNotFound", err)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Put(ctx, "a.json", bytes.NewReader([]byte("x")), blob.PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ok, err := store.Delete(ctx, "a.json"); err != nil || !ok {
		t.Errorf("Delete existing = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := store.Delete(ctx, "a.json"); err != nil || ok {
		t.Errorf("Delete absent = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"daily/mon.json", "daily/tue.json", "weekly/w01.json"} {
		if _, err := store.Put(ctx, key, bytes.NewReader([]byte(key)), blob.PutOptions{}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "daily/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "daily/mon.json" || infos[1].Key != "daily/tue.json" {
		t.Errorf("List = %+v, want the two daily snapshots sorted by key", infos)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, key := range []string{"", "  ", "../escape", "/abs", "a/../../b"} {
		if _, err := store.Put(context.Background(), key, bytes.NewReader(nil), blob.PutOptions{}); err == nil {
			t.Errorf("Put(%q) accepted an unsafe key", key)
		}
	}
}
