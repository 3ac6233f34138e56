package compounds

import (
	"context"

	"optithor/pkg/medium"
)

// Store persists compound records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the record for cid, reporting whether it exists.
	Get(ctx context.Context, cid string) (Record, bool, error)
	// Put inserts or replaces records by CID.
	Put(ctx context.Context, records ...Record) error
	// Delete removes the record for cid, reporting whether it existed.
	Delete(ctx context.Context, cid string) (bool, error)
	// List returns all records ordered by CID.
	List(ctx context.Context) ([]Record, error)
}

// Lookup resolves cids against store, preserving request order. CIDs with
// no record are collected into missing rather than failing the call.
func Lookup(ctx context.Context, store Store, cids []string) ([]medium.Compound, []string, error) {
	var found []medium.Compound
	var missing []string
	for _, cid := range cids {
		rec, ok, err := store.Get(ctx, cid)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			missing = append(missing, cid)
			continue
		}
		found = append(found, rec.Compound())
	}
	return found, missing, nil
}
