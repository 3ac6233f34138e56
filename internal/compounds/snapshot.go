package compounds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"optithor/internal/blob"
)

// Snapshot is the published form of the compound database: a single JSON
// object suitable for seeding a fresh store.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Records     []Record  `json:"records"`
}

// WriteSnapshot serializes records and publishes them under key in dst,
// replacing any previous snapshot.
func WriteSnapshot(ctx context.Context, dst blob.Store, key string, records []Record) (blob.Info, error) {
	snap := Snapshot{GeneratedAt: time.Now().UTC(), Records: append([]Record(nil), records...)}
	sort.Slice(snap.Records, func(i, j int) bool { return snap.Records[i].CID < snap.Records[j].CID })
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return dst.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"records": strconv.Itoa(len(snap.Records))},
	})
}

// LoadSnapshot reads and decodes the snapshot stored under key in src.
func LoadSnapshot(ctx context.Context, src blob.Store, key string) (Snapshot, error) {
	_, rc, err := src.Get(ctx, key)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = rc.Close() }()
	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// SeedStore loads the snapshot under key from src and writes its records
// into dst, returning the number of records seeded.
func SeedStore(ctx context.Context, src blob.Store, key string, dst Store) (int, error) {
	snap, err := LoadSnapshot(ctx, src, key)
	if err != nil {
		return 0, err
	}
	if len(snap.Records) == 0 {
		return 0, nil
	}
	if err := dst.Put(ctx, snap.Records...); err != nil {
		return 0, err
	}
	return len(snap.Records), nil
}
