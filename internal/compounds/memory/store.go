// Package memory implements an in-memory compound Store for tests and
// one-shot runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"optithor/internal/compounds"
)

// Store implements compounds.Store backed by process memory.
type Store struct {
	mu      sync.RWMutex
	records map[string]compounds.Record
}

// New returns an empty in-memory compound store.
func New() *Store { return &Store{records: make(map[string]compounds.Record)} }

// Get returns the record for cid.
func (s *Store) Get(_ context.Context, cid string) (compounds.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[cid]
	return rec, ok, nil
}

// Put inserts or replaces records by CID.
func (s *Store) Put(_ context.Context, records ...compounds.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.records[rec.CID] = rec
	}
	return nil
}

// Delete removes the record for cid.
func (s *Store) Delete(_ context.Context, cid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[cid]
	if ok {
		delete(s.records, cid)
	}
	return ok, nil
}

// List returns all records ordered by CID.
func (s *Store) List(_ context.Context) ([]compounds.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]compounds.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CID < out[j].CID })
	return out, nil
}
