package dbbuild

import (
	"context"
	"fmt"
	"sort"

	"optithor/internal/blob"
	"optithor/internal/compounds"
	"optithor/internal/pubchem"
)

// Successful filters outcomes down to usable records: status ok, a
// normalizable CID, and a formula the engine can parse. Derived fields
// are filled in the process.
func Successful(outcomes []Outcome) []compounds.Record {
	var out []compounds.Record
	for _, o := range outcomes {
		if o.Attempt.Status != pubchem.StatusOK {
			continue
		}
		rec := o.Record
		cid, ok := compounds.NormalizeCID(rec.CID)
		if !ok {
			continue
		}
		rec.CID = cid
		if err := rec.EnsureDerived(); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// BestPerCID collapses records sharing a CID, keeping the most complete
// one. On equal completeness the later record wins, so fresher fetches
// replace stale ones. Output is ordered by CID.
func BestPerCID(records []compounds.Record) []compounds.Record {
	best := make(map[string]compounds.Record, len(records))
	for _, rec := range records {
		prev, ok := best[rec.CID]
		if !ok || rec.CompletenessScore() >= prev.CompletenessScore() {
			best[rec.CID] = rec
		}
	}
	out := make([]compounds.Record, 0, len(best))
	for _, rec := range best {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CID < out[j].CID })
	return out
}

// Pipeline runs the full build: hydrate expansion, state filtering,
// fetching, storage, and an optional published snapshot.
type Pipeline struct {
	Store        compounds.Store
	Fetcher      NameFetcher
	Concurrency  int
	AttemptsPath string     // attempt cache file; empty disables caching
	Snapshots    blob.Store // optional snapshot destination
	SnapshotKey  string
	Progress     Progress
}

// Summary reports what one pipeline run did.
type Summary struct {
	Seeds    int
	Extended int
	Fetched  int
	Stored   int
}

// Run builds the database from seed names.
func (p *Pipeline) Run(ctx context.Context, seedNames []string) (Summary, error) {
	summary := Summary{Seeds: len(seedNames)}

	extended := ExpandNamesWithHydrates(seedNames)
	summary.Extended = len(extended)

	state, err := StateFromStore(ctx, p.Store)
	if err != nil {
		return summary, fmt.Errorf("load store state: %w", err)
	}
	var cached []pubchem.Attempt
	if p.AttemptsPath != "" {
		cached, err = LoadAttempts(p.AttemptsPath)
		if err != nil {
			return summary, fmt.Errorf("load attempt cache: %w", err)
		}
		state.RecordAttempts(cached)
	}

	toFetch := state.FilterNamesToFetch(extended)
	summary.Fetched = len(toFetch)

	outcomes, err := FetchAll(ctx, p.Fetcher, toFetch, p.Concurrency, p.Progress)
	if err != nil {
		return summary, err
	}

	if p.AttemptsPath != "" {
		attempts := cached
		for _, o := range outcomes {
			attempts = append(attempts, o.Attempt)
		}
		if err := SaveAttempts(p.AttemptsPath, attempts); err != nil {
			return summary, fmt.Errorf("save attempt cache: %w", err)
		}
	}

	records := BestPerCID(Successful(outcomes))
	summary.Stored = len(records)
	if len(records) > 0 {
		if err := p.Store.Put(ctx, records...); err != nil {
			return summary, fmt.Errorf("store records: %w", err)
		}
	}

	if p.Snapshots != nil && p.SnapshotKey != "" {
		all, err := p.Store.List(ctx)
		if err != nil {
			return summary, fmt.Errorf("list store for snapshot: %w", err)
		}
		if _, err := compounds.WriteSnapshot(ctx, p.Snapshots, p.SnapshotKey, all); err != nil {
			return summary, fmt.Errorf("write snapshot: %w", err)
		}
	}
	return summary, nil
}
