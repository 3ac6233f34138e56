package compounds_test

import (
	"context"
	"errors"
	"testing"

	"optithor/internal/blob"
	blobmem "optithor/internal/blob/memory"
	"optithor/internal/compounds"
	"optithor/internal/compounds/memory"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	dst := blobmem.New()
	records := []compounds.Record{
		{CID: "702", Name: "ethanol", Formula: "C2H6O", MolarMass: 46.07},
		{CID: "5234", Name: "sodium chloride", Formula: "NaCl", MolarMass: 58.44},
	}
	info, err := compounds.WriteSnapshot(ctx, dst, "compounds.json", records)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if info.Metadata["records"] != "2" {
		t.Errorf("records metadata = %q, want 2", info.Metadata["records"])
	}

	snap, err := compounds.LoadSnapshot(ctx, dst, "compounds.json")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Records) != 2 || snap.Records[0].CID != "5234" || snap.Records[1].CID != "702" {
		t.Errorf("records = %+v, want sorted by CID", snap.Records)
	}
	if snap.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestSeedStore(t *testing.T) {
	ctx := context.Background()
	src := blobmem.New()
	if _, err := compounds.WriteSnapshot(ctx, src, "compounds.json", []compounds.Record{
		{CID: "5234", Formula: "NaCl", MolarMass: 58.44},
	}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	store := memory.New()
	n, err := compounds.SeedStore(ctx, src, "compounds.json", store)
	if err != nil {
		t.Fatalf("SeedStore: %v", err)
	}
	if n != 1 {
		t.Errorf("seeded %d records, want 1", n)
	}
	if _, ok, _ := store.Get(ctx, "5234"); !ok {
		t.Error("seeded record not retrievable")
	}
}

func TestSeedStoreMissingSnapshot(t *testing.T) {
	_, err := compounds.SeedStore(context.Background(), blobmem.New(), "absent.json", memory.New())
	if !errors.Is(err, blob.ErrNotFound) {
		t.Errorf("err = %v, want blob.ErrNotFound", err)
	}
}
