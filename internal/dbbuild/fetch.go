package dbbuild

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"optithor/internal/compounds"
	"optithor/internal/pubchem"
)

// NameFetcher resolves a compound name against the registry. The PubChem
// client satisfies this.
type NameFetcher interface {
	FetchByName(ctx context.Context, name string) (compounds.Record, pubchem.Attempt, error)
}

// Outcome pairs a fetch attempt with the record it produced, if any.
type Outcome struct {
	Record  compounds.Record
	Attempt pubchem.Attempt
}

// Progress is invoked after each completed fetch. It may be nil.
type Progress func(done, total int)

// FetchAll resolves names with at most concurrency requests in flight.
// Transport failures for individual names degrade to failed attempts so
// they are cached and not retried on the next run; only context
// cancellation aborts the whole batch. Outcomes keep input order.
func FetchAll(ctx context.Context, fetcher NameFetcher, names []string, concurrency int, progress Progress) ([]Outcome, error) {
	if concurrency < 1 {
		concurrency = 2
	}
	outcomes := make([]Outcome, len(names))
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range names {
		g.Go(func() error {
			rec, attempt, err := fetcher.FetchByName(gctx, name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				attempt = pubchem.Attempt{Query: name, Status: pubchem.StatusNoProperties}
				rec = compounds.Record{}
			}
			outcomes[i] = Outcome{Record: rec, Attempt: attempt}
			if progress != nil {
				progress(int(done.Add(1)), len(names))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
