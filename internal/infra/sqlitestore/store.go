// Package sqlitestore provides a SQLite-backed implementation of domain.Slot.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runoshun/taskflow/internal/domain"
)

// Store implements domain.Slot with one row of the slots table.
// The row value is the JSON-encoded task list.
type Store struct {
	db  *sql.DB
	now func() time.Time
	key string
}

// Open opens (or creates) the database at path and returns a Store
// for the slot named key.
func Open(path, key string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases alive between calls.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, key: key, now: time.Now}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// migrate creates the slots table.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Load reads the task list. found is false if the row does not exist.
func (s *Store) Load() ([]domain.Task, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE name = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query slot: %w", err)
	}

	tasks, err := domain.UnmarshalTasks([]byte(value))
	if err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

// Save replaces the row with the task list.
func (s *Store) Save(tasks []domain.Task) error {
	value, err := domain.MarshalTasks(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO slots (name, value, updated_at) VALUES (?, ?, ?)`,
		s.key, string(value), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// UpdatedAt returns when the slot was last written.
func (s *Store) UpdatedAt() (time.Time, bool, error) {
	var updated time.Time
	err := s.db.QueryRow(`SELECT updated_at FROM slots WHERE name = ?`, s.key).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query slot: %w", err)
	}
	return updated, true, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements domain.Slot.
var _ domain.Slot = (*Store)(nil)
