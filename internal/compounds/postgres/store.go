// Package postgres provides a Postgres-backed compound store for shared
// deployments where several hosts consume one compound database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"optithor/internal/compounds"
)

var _ compounds.Store = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/optithor?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const ddl = `CREATE TABLE IF NOT EXISTS compounds (
	cid TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	formula TEXT NOT NULL DEFAULT '',
	anhydrous_formula TEXT NOT NULL DEFAULT '',
	molar_mass DOUBLE PRECISION NOT NULL DEFAULT 0,
	anhydrous_molar_mass DOUBLE PRECISION NOT NULL DEFAULT 0
)`

// Store implements compounds.Store over Postgres.
type Store struct {
	db *sql.DB
}

// Open connects using dsn (falls back to defaultDSN), pings the server,
// and ensures the compounds table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("ensure compounds table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Get returns the record for cid.
func (s *Store) Get(ctx context.Context, cid string) (compounds.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT cid, name, formula, anhydrous_formula, molar_mass, anhydrous_molar_mass
		 FROM compounds WHERE cid = $1`, cid)
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
			 VALUES($1, $2, $3, $4, $5, $6)
			 ON CONFLICT(cid) DO UPDATE SET
			   name = EXCLUDED.name,
			   formula = EXCLUDED.formula,
			   anhydrous_formula = EXCLUDED.anhydrous_formula,
			   molar_mass = EXCLUDED.molar_mass,
			   anhydrous_molar_mass = EXCLUDED.anhydrous_molar_mass`,
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM compounds WHERE cid = $1`, cid)
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

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a
// restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
