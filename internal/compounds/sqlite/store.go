// Package sqlite provides the on-disk compound cache used by the CLI. It
// lives in the user cache directory so repeated runs skip PubChem entirely.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register the pure-Go sqlite driver

	"optithor/internal/compounds"
)

var _ compounds.Store = (*Store)(nil)

const ddl = `CREATE TABLE IF NOT EXISTS compounds (
	cid TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	formula TEXT NOT NULL DEFAULT '',
	anhydrous_formula TEXT NOT NULL DEFAULT '',
	molar_mass REAL NOT NULL DEFAULT 0,
	anhydrous_molar_mass REAL NOT NULL DEFAULT 0
)`

// Store implements compounds.Store over a local sqlite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user cache location for the compound
// database.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "optithor", "compounds.db"), nil
}

// Open opens (creating if needed) the compound database at path. An empty
// path selects DefaultPath.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure compounds table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the record for cid.
func (s *Store) Get(ctx context.Context, cid string) (compounds.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT cid, name, formula, anhydrous_formula, molar_mass, anhydrous_molar_mass
		 FROM compounds WHERE cid = ?`, cid)
	var rec compounds.Record
	err := row.Scan(&rec.CID, &rec.Name, &rec.Formula, &rec.AnhydrousFormula, &rec.MolarMass, &rec.AnhydrousMolarMass)
	if err == sql.ErrNoRows {
		return compounds.Record{}, false, nil
	}
	if err != nil {
		return compounds.Record{}, false, fmt.Errorf("select compound %s: %w", cid, err)
	}
	return rec, true, nil
}

// Put upserts records in a single transaction.
func (s *Store) Put(ctx context.Context, records ...compounds.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, rec := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO compounds(cid, name, formula, anhydrous_formula, molar_mass, anhydrous_molar_mass)
			 VALUES(?, ?, ?, ?, ?, ?)
			 ON CONFLICT(cid) DO UPDATE SET
			   name = excluded.name,
			   formula = excluded.formula,
			   anhydrous_formula = excluded.anhydrous_formula,
			   molar_mass = excluded.molar_mass,
			   anhydrous_molar_mass = excluded.anhydrous_molar_mass`,
			rec.CID, rec.Name, rec.Formula, rec.AnhydrousFormula, rec.MolarMass, rec.AnhydrousMolarMass)
		if err != nil {
			return fmt.Errorf("upsert compound %s: %w", rec.CID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Delete removes the record for cid.
func (s *Store) Delete(ctx context.Context, cid string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM compounds WHERE cid = ?`, cid)
	if err != nil {
		return false, fmt.Errorf("delete compound %s: %w", cid, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns all records ordered by CID.
func (s *Store) List(ctx context.Context) ([]compounds.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cid, name, formula, anhydrous_formula, molar_mass, anhydrous_molar_mass
		 FROM compounds ORDER BY cid`)
	if err != nil {
		return nil, fmt.Errorf("select compounds: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []compounds.Record
	for rows.Next() {
		var rec compounds.Record
		if err := rows.Scan(&rec.CID, &rec.Name, &rec.Formula, &rec.AnhydrousFormula, &rec.MolarMass, &rec.AnhydrousMolarMass); err != nil {
			return nil, fmt.Errorf("scan compound: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compounds: %w", err)
	}
	return out, nil
}
