// Package sqlite implements the run archive on a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/ngc/pkg/ngc/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and the schema
// initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	input TEXT,
	query TEXT,
	chars INTEGER NOT NULL DEFAULT 0,
	lines INTEGER NOT NULL DEFAULT 0,
	words INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_rows (
	run_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	size INTEGER NOT NULL,
	text TEXT NOT NULL,
	count INTEGER NOT NULL,
	ppm REAL NOT NULL,
	z REAL NOT NULL,
	PRIMARY KEY(run_id, pos),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun archives one run with its rows in a single transaction.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		r.ID = store.NewRunID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (id, created_at, input, query, chars, lines, words)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.Format(time.RFC3339Nano), r.Input, r.Query, r.Chars, r.Lines, r.Words)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_rows WHERE run_id = ?", r.ID); err != nil {
		return err
	}
	for i, row := range r.Rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_rows (run_id, pos, size, text, count, ppm, z)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, i, row.Size, row.Text, row.Count, row.PPM, row.Z)
		if err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun returns a run and its rows by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var r store.Run
	var created string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, input, query, chars, lines, words
		FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &created, &r.Input, &r.Query, &r.Chars, &r.Lines, &r.Words)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return store.Run{}, false, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT size, text, count, ppm, z
		FROM run_rows WHERE run_id = ? ORDER BY pos`, id)
	if err != nil {
		return store.Run{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var row store.Row
		if err := rows.Scan(&row.Size, &row.Text, &row.Count, &row.PPM, &row.Z); err != nil {
			return store.Run{}, false, err
		}
		r.Rows = append(r.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return store.Run{}, false, err
	}

	return r, true, nil
}

// ListRuns returns run metadata, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, input, query, chars, lines, words
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		var r store.Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Input, &r.Query, &r.Chars, &r.Lines, &r.Words); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
