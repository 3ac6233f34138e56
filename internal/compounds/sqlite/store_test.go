package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"optithor/internal/compounds"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "compounds.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rec := compounds.Record{
		CID:                "24639",
		Name:               "copper sulfate pentahydrate",
		Formula:            "CuSO4 . 5 H2O",
		AnhydrousFormula:   "CuSO4",
		MolarMass:          249.68,
		AnhydrousMolarMass: 159.61,
	}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, "24639")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if got != rec {
		t.Errorf("got %+v, want %+v", got, rec)
	}
}

func TestPutUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Put(ctx, compounds.Record{CID: "5234", Name: "old"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, compounds.Record{CID: "5234", Name: "sodium chloride", Formula: "NaCl"}); err != nil {
		t.Fatalf("Put upsert: %v", err)
	}
	got, ok, err := store.Get(ctx, "5234")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if got.Name != "sodium chloride" || got.Formula != "NaCl" {
		t.Errorf("upsert did not replace: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("missing CID reported as present")
	}
}

func TestDeleteAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Put(ctx,
		compounds.Record{CID: "2", Name: "b"},
		compounds.Record{CID: "1", Name: "a"},
	); err != nil {
		t.Fatalf("Put: %v", err)
	}
	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 || recs[0].CID != "1" || recs[1].CID != "2" {
		t.Errorf("List = %+v, want ordered by CID", recs)
	}
	if ok, err := store.Delete(ctx, "1"); err != nil || !ok {
		t.Errorf("Delete existing = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := store.Delete(ctx, "1"); err != nil || ok {
		t.Errorf("Delete absent = (%v, %v), want (false, nil)", ok, err)
	}
}
