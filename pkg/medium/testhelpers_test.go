package medium

import (
	"context"
	"errors"
)

func asError(err error, target any) bool { return errors.As(err, target) }

// mapSource is a Source backed by a plain map, recording how often it was
// consulted.
type mapSource struct {
	compounds map[string]Compound
	calls     int
}

func newMapSource(compounds ...Compound) *mapSource {
	m := make(map[string]Compound, len(compounds))
	for _, c := range compounds {
		m[c.CID] = c
	}
	return &mapSource{compounds: m}
}

func (s *mapSource) Lookup(_ context.Context, cids []string) ([]Compound, []string, error) {
	s.calls++
	var found []Compound
	var missing []string
	for _, cid := range cids {
		if c, ok := s.compounds[cid]; ok {
			found = append(found, c)
		} else {
			missing = append(missing, cid)
		}
	}
	return found, missing, nil
}

// failingSource simulates a repository I/O fault.
type failingSource struct{ err error }

func (s failingSource) Lookup(context.Context, []string) ([]Compound, []string, error) {
	return nil, nil, s.err
}
