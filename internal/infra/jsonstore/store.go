// Package jsonstore provides a JSON file-based implementation of domain.Slot.
package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/taskflow/internal/domain"
)

// Store implements domain.Slot using a single JSON file.
// The file holds the task sequence as a JSON array.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the slot file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the task sequence. found is false if the file does not exist.
func (s *Store) Load() ([]domain.Task, bool, error) {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, false, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot file: %w", err)
	}

	tasks, err := domain.UnmarshalTasks(content)
	if err != nil {
		return nil, false, fmt.Errorf("parse slot file %s: %w", s.path, err)
	}
	return tasks, true, nil
}

// Save overwrites the file with the task sequence.
func (s *Store) Save(tasks []domain.Task) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	content, err := domain.MarshalTasks(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return s.write(content)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// write replaces the file via a temp file and rename.
func (s *Store) write(content []byte) error {
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements domain.Slot.
var _ domain.Slot = (*Store)(nil)
