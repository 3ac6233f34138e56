package compounds

import (
	"context"

	"optithor/pkg/medium"
)

// Fetcher retrieves a compound record from an external registry. The
// PubChem client satisfies this.
type Fetcher interface {
	FetchByCID(ctx context.Context, cid string) (Record, error)
}

// Catalog serves compounds to the optimizer from a Store. Lookup never
// touches the network: unknown CIDs must be resolved up front with
// FetchMissing so optimization calls stay local and deterministic.
type Catalog struct {
	store Store
	fetch Fetcher
}

var _ medium.Source = (*Catalog)(nil)

// NewCatalog builds a catalog over store. fetch may be nil, which
// disables FetchMissing.
func NewCatalog(store Store, fetch Fetcher) *Catalog {
	return &Catalog{store: store, fetch: fetch}
}

// Lookup implements medium.Source against the store only.
func (c *Catalog) Lookup(ctx context.Context, cids []string) ([]medium.Compound, []string, error) {
	return Lookup(ctx, c.store, cids)
}

// FetchMissing resolves the CIDs the store does not hold yet against the
// registry and caches the results. It returns the CIDs that still could
// not be resolved. Run this before optimizing, never during.
func (c *Catalog) FetchMissing(ctx context.Context, cids []string) ([]string, error) {
	var unresolved []string
	for _, cid := range cids {
		_, ok, err := c.store.Get(ctx, cid)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		if c.fetch == nil {
			unresolved = append(unresolved, cid)
			continue
		}
		rec, err := c.fetch.FetchByCID(ctx, cid)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			unresolved = append(unresolved, cid)
			continue
		}
		if err := rec.EnsureDerived(); err != nil {
			unresolved = append(unresolved, cid)
			continue
		}
		if err := c.store.Put(ctx, rec); err != nil {
			return nil, err
		}
	}
	return unresolved, nil
}
