// Copyright Iowa State University, 2026. All rights reserved.

// Package history persists a ledger of past predictions in SQLite, so a
// series of single-shot runs leaves an inspectable trail.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded prediction.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	InputHash  string
	Smiles     string
	Prediction string
}

// Store manages the prediction history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at dbPath, creating the
// schema if it does not exist.
func Open(dbPath string, maxResults int) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = 20
	}
	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		input_hash TEXT NOT NULL,
		smiles TEXT NOT NULL,
		prediction TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Append records one prediction.
func (s *Store) Append(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO predictions (ts, input_hash, smiles, prediction) VALUES (?, ?, ?, ?)`,
		e.Timestamp.UTC().Format(time.RFC3339), e.InputHash, e.Smiles, e.Prediction,
	)
	if err != nil {
		return fmt.Errorf("recording prediction: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent entries, newest first. A limit
// of 0 uses the configured default.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.Query(
		`SELECT id, ts, input_hash, smiles, prediction FROM predictions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.InputHash, &e.Smiles, &e.Prediction); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
