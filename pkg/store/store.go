// Package store archives completed-simulation records in a SQLite database.
// Only final records are stored; intermediate simulation states are not.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"

	"github.com/ja7ad/crossflow/pkg/crossflow"
)

// ErrNotFound indicates that no run has the requested ID.
var ErrNotFound = errors.New("store: run not found")

// Run is one archived simulation together with the inputs that produced it.
type Run struct {
	ID        string
	CreatedAt time.Time

	Volume       float64
	TMP          float64
	MembraneArea float64
	MWCO         float64
	TargetFactor float64
	Step         time.Duration
	Resistance   string
	Viscosity    string
	Termination  string

	Result crossflow.Result
}

// Store is a SQLite-backed archive. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	created_at       INTEGER NOT NULL,
	volume           REAL NOT NULL,
	tmp              REAL NOT NULL,
	membrane_area    REAL NOT NULL,
	mwco             REAL NOT NULL,
	target_factor    REAL NOT NULL,
	step_ns          INTEGER NOT NULL,
	resistance       TEXT NOT NULL,
	viscosity        TEXT NOT NULL,
	termination      TEXT NOT NULL,
	permeate_volume  REAL NOT NULL,
	retentate_volume REAL NOT NULL,
	conc_factor      REAL NOT NULL,
	elapsed_ns       INTEGER NOT NULL,
	steps            INTEGER NOT NULL,
	reason           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at);
`

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing connection and ensures the schema exists.
func NewWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save archives r, assigning ID and CreatedAt when they are empty, and
// returns the stored run.
func (s *Store) Save(r Run) (Run, error) {
	if r.ID == "" {
		r.ID = xid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`INSERT INTO runs (
		id, created_at, volume, tmp, membrane_area, mwco, target_factor, step_ns,
		resistance, viscosity, termination,
		permeate_volume, retentate_volume, conc_factor, elapsed_ns, steps, reason
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(), r.Volume, r.TMP, r.MembraneArea, r.MWCO, r.TargetFactor,
		int64(r.Step), r.Resistance, r.Viscosity, r.Termination,
		r.Result.PermeateVolume, r.Result.RetentateVolume, r.Result.ConcentrationFactor,
		int64(r.Result.Time), r.Result.Steps, string(r.Result.Reason),
	)
	if err != nil {
		return Run{}, fmt.Errorf("store: insert %s: %w", r.ID, err)
	}
	return r, nil
}

const selectRuns = `SELECT
	id, created_at, volume, tmp, membrane_area, mwco, target_factor, step_ns,
	resistance, viscosity, termination,
	permeate_volume, retentate_volume, conc_factor, elapsed_ns, steps, reason
FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r                  Run
		created, step, dur int64
		reason             string
	)
	err := sc.Scan(
		&r.ID, &created, &r.Volume, &r.TMP, &r.MembraneArea, &r.MWCO, &r.TargetFactor, &step,
		&r.Resistance, &r.Viscosity, &r.Termination,
		&r.Result.PermeateVolume, &r.Result.RetentateVolume, &r.Result.ConcentrationFactor,
		&dur, &r.Result.Steps, &reason,
	)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(0, created)
	r.Step = time.Duration(step)
	r.Result.Time = time.Duration(dur)
	r.Result.Reason = crossflow.Reason(reason)
	return r, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(id string) (Run, error) {
	r, err := scanRun(s.db.QueryRow(selectRuns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("store: get %s: %w", id, err)
	}
	return r, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all.
func (s *Store) List(limit int) ([]Run, error) {
	q := selectRuns + ` ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
