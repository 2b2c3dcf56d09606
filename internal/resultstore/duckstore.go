// Package resultstore persists flattened per-run result rows in DuckDB so
// parsed measurements stay searchable without holding every series in RAM.
package resultstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcboeker/go-duckdb"

	"github.com/lab-visualizer/backend/internal/models"
)

// Store is a DuckDB-backed long-format table of result points: one row
// per (run, field, sample index) with a present value.
type Store struct {
	db       *sql.DB
	dbPath   string
	rows     int
	readOnly bool
	keep     bool
}

// Path returns the backing database file path.
func (s *Store) Path() string { return s.dbPath }

// Persist keeps the backing file on Close, for stores written to a
// persistent cache location instead of session scratch space.
func (s *Store) Persist() { s.keep = true }

// RunSummary is one stored run with its point count.
type RunSummary struct {
	FileID    string `json:"fileId"`
	Family    string `json:"family"`
	RunIndex  int    `json:"runIndex"`
	RunName   string `json:"runName"`
	SweepType string `json:"sweepType"`
	Points    int    `json:"points"`
}

// Point is one stored sample of a result series.
type Point struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// New creates a store file inside dir, named after the session.
func New(dir, sessionID string) (*Store, error) {
	return NewAtPath(filepath.Join(dir, fmt.Sprintf("session_%s.duckdb", sessionID)))
}

// NewAtPath creates a store at a specific path.
func NewAtPath(dbPath string) (*Store, error) {
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='512MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS result_points (
			file_id    VARCHAR NOT NULL,
			family     VARCHAR NOT NULL,
			run_index  INTEGER NOT NULL,
			run_name   VARCHAR NOT NULL,
			sweep_type VARCHAR NOT NULL,
			field      VARCHAR NOT NULL,
			idx        INTEGER NOT NULL,
			value      DOUBLE
		)
	`)
	if err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, fmt.Errorf("creating result_points table: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// AddMeasurement flattens every result record of the measurement into
// rows. Unset fields and missing samples are skipped, matching the
// "not measured for this run" reading of unset result fields.
func (s *Store) AddMeasurement(fileID string, m *models.Measurement) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO result_points
			(file_id, family, run_index, run_name, sweep_type, field, idx, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for runIdx, rec := range m.Results {
		name, sweep := rec.Identity()
		for field, series := range rec.Fields() {
			for i, f := range *series {
				if !f.Valid {
					continue
				}
				if _, err := stmt.Exec(fileID, m.Family, runIdx, name, string(sweep), field, i, f.Value); err != nil {
					tx.Rollback()
					return fmt.Errorf("inserting result point: %w", err)
				}
				s.rows++
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing result points: %w", err)
	}
	return nil
}

// Finalize creates the query indexes. Creating them after the bulk insert
// keeps the insert path fast.
func (s *Store) Finalize() error {
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_points_lookup ON result_points (file_id, run_index, field)`)
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	return nil
}

// Count returns the number of stored points.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM result_points`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Runs lists the stored runs for a file in run order.
func (s *Store) Runs(fileID string) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT file_id, family, run_index, run_name, sweep_type, COUNT(*)
		FROM result_points
		WHERE file_id = ?
		GROUP BY file_id, family, run_index, run_name, sweep_type
		ORDER BY run_index
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.FileID, &r.Family, &r.RunIndex, &r.RunName, &r.SweepType, &r.Points); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SearchRuns finds stored runs by sweep type across all files.
func (s *Store) SearchRuns(sweepType string) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT file_id, family, run_index, run_name, sweep_type, COUNT(*)
		FROM result_points
		WHERE sweep_type = ?
		GROUP BY file_id, family, run_index, run_name, sweep_type
		ORDER BY file_id, run_index
	`, sweepType)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.FileID, &r.Family, &r.RunIndex, &r.RunName, &r.SweepType, &r.Points); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Series returns one field's samples for a run, in acquisition order.
func (s *Store) Series(fileID string, runIndex int, field string, limit int) ([]Point, error) {
	if limit <= 0 {
		limit = 100000
	}
	rows, err := s.db.Query(`
		SELECT idx, value
		FROM result_points
		WHERE file_id = ? AND run_index = ? AND field = ?
		ORDER BY idx
		LIMIT ?
	`, fileID, runIndex, field, limit)
	if err != nil {
		return nil, fmt.Errorf("querying series: %w", err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Index, &p.Value); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OpenReadOnly opens an existing store without taking a write lock, for
// serving previously parsed files.
func OpenReadOnly(dbPath string) (*Store, error) {
	connector, err := duckdb.NewConnector(dbPath+"?access_mode=read_only", nil)
	if err != nil {
		return nil, fmt.Errorf("opening DuckDB read-only: %w", err)
	}
	return &Store{db: sql.OpenDB(connector), dbPath: dbPath, readOnly: true}, nil
}

// Close closes the database. Writable stores are session-scoped scratch
// files, so their backing file is removed too.
func (s *Store) Close() error {
	err := s.db.Close()
	if !s.readOnly && !s.keep && s.dbPath != "" {
		os.Remove(s.dbPath)
	}
	return err
}
