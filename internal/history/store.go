// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed merges in a small SQLite database so
// past runs can be listed or replayed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxEntries = 100
)

// Store manages the merge history SQLite database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Entry is one recorded merge with its inputs in original order.
type Entry struct {
	ID        int64
	Output    string
	Inputs    []string
	Converted int
	Pages     int
	Duration  time.Duration
	MergedAt  time.Time
}

// NewStore opens or creates the history database at cfg.Dir/history.db. An
// empty cfg.Dir falls back to the pdfmerge subdirectory of the user config
// directory. The schema is created if missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		dir = filepath.Join(base, "pdfmerge")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS merges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			output_path TEXT NOT NULL,
			input_count INTEGER NOT NULL,
			converted INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			merged_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS merge_inputs (
			merge_id INTEGER NOT NULL REFERENCES merges(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			PRIMARY KEY (merge_id, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one completed merge and prunes the table to the configured
// size, oldest entries first.
func (s *Store) Record(ctx context.Context, res types.MergeResult, inputs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.ExecContext(ctx,
		`INSERT INTO merges (output_path, input_count, converted, pages, duration_ms, merged_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.Output, res.Inputs, res.Converted, res.Pages,
		res.Duration.Milliseconds(), res.MergedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting merge: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading merge id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO merge_inputs (merge_id, position, path) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing input insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range inputs {
		if _, err := stmt.ExecContext(ctx, id, i, in); err != nil {
			return fmt.Errorf("inserting input %d: %w", i, err)
		}
	}

	// Keep only the newest maxEntries merges; inputs cascade.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM merges WHERE id NOT IN (
			SELECT id FROM merges ORDER BY id DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to limit merges, newest first, with inputs restored in
// their original order. A limit of zero or less means the configured
// maximum.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, output_path, converted, pages, duration_ms, merged_at
		 FROM merges ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying merges: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durMs int64
		var mergedAt string
		if err := rows.Scan(&e.ID, &e.Output, &e.Converted, &e.Pages, &durMs, &mergedAt); err != nil {
			return nil, fmt.Errorf("scanning merge row: %w", err)
		}
		e.Duration = time.Duration(durMs) * time.Millisecond
		if t, perr := time.Parse(time.RFC3339Nano, mergedAt); perr == nil {
			e.MergedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating merges: %w", err)
	}

	for i := range entries {
		inputs, err := s.inputsFor(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Inputs = inputs
	}
	return entries, nil
}

func (s *Store) inputsFor(ctx context.Context, mergeID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM merge_inputs WHERE merge_id = ? ORDER BY position`, mergeID)
	if err != nil {
		return nil, fmt.Errorf("querying inputs: %w", err)
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning input row: %w", err)
		}
		inputs = append(inputs, p)
	}
	return inputs, rows.Err()
}

// Clear removes every recorded merge.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM merges`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
