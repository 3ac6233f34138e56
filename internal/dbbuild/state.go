package dbbuild

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"optithor/internal/compounds"
	"optithor/internal/pubchem"
)

// State tracks what the database already holds and which queries were
// already attempted, so a rerun fetches only new names.
type State struct {
	knownNames map[string]struct{} // lowercased compound names
	knownCIDs  map[string]struct{}
	attempted  map[string]struct{} // lowercased queries, success or failure
}

// NewState returns an empty build state.
func NewState() *State {
	return &State{
		knownNames: make(map[string]struct{}),
		knownCIDs:  make(map[string]struct{}),
		attempted:  make(map[string]struct{}),
	}
}

// StateFromStore seeds the state with the names and CIDs already stored.
func StateFromStore(ctx context.Context, store compounds.Store) (*State, error) {
	s := NewState()
	records, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if name := strings.ToLower(strings.TrimSpace(rec.Name)); name != "" {
			s.knownNames[name] = struct{}{}
		}
		if cid, ok := compounds.NormalizeCID(rec.CID); ok {
			s.knownCIDs[cid] = struct{}{}
		}
	}
	return s, nil
}

// RecordAttempts marks queries as attempted regardless of outcome.
func (s *State) RecordAttempts(attempts []pubchem.Attempt) {
	for _, a := range attempts {
		if q := strings.ToLower(strings.TrimSpace(a.Query)); q != "" {
			s.attempted[q] = struct{}{}
		}
	}
}

// FilterNamesToFetch keeps names that are new: not attempted before, not
// stored under the same name, and, for numeric CID queries, not stored
// under the same CID. Duplicates collapse case-insensitively.
func (s *State) FilterNamesToFetch(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := s.attempted[key]; ok {
			continue
		}
		if isDigits(n) {
			if _, ok := s.knownCIDs[n]; ok {
				continue
			}
		}
		if _, ok := s.knownNames[key]; ok {
			continue
		}
		out = append(out, n)
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// LoadAttempts reads the attempt cache at path. A missing file yields an
// empty cache.
func LoadAttempts(path string) ([]pubchem.Attempt, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var attempts []pubchem.Attempt
	if err := json.Unmarshal(data, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// SaveAttempts writes the attempt cache to path.
func SaveAttempts(path string, attempts []pubchem.Attempt) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(attempts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
