// Package taskstore owns the canonical task sequence and persists it
// through a domain.Slot after every applied mutation.
package taskstore

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// Log categories.
const (
	categoryStore = "store"
	categoryTask  = "task"
)

// maxIDAttempts bounds retries when the generator returns an ID already in use.
const maxIDAttempts = 3

// Ensure Store implements domain.TaskStore.
var _ domain.TaskStore = (*Store)(nil)

// Store implements domain.TaskStore.
// Fields are ordered to minimize memory padding.
type Store struct {
	slot   domain.Slot
	clock  domain.Clock
	ids    domain.IDGenerator
	logger domain.Logger
	tasks  []domain.Task
	mu     sync.Mutex
}

// New creates a Store and loads the persisted sequence from slot.
// A missing or unreadable slot yields an empty store; the failure is logged.
// clock, ids and logger default to the system clock, UUIDs and a no-op logger.
func New(slot domain.Slot, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *Store {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	if logger == nil {
		logger = nopLogger{}
	}

	s := &Store{
		slot:   slot,
		clock:  clock,
		ids:    ids,
		logger: logger,
	}
	s.load()
	return s
}

func (s *Store) load() {
	tasks, found, err := s.slot.Load()
	if err != nil {
		s.logger.Warn("", categoryStore, fmt.Sprintf("failed to load tasks, starting empty: %v", err))
		s.tasks = []domain.Task{}
		return
	}
	if !found {
		s.logger.Debug("", categoryStore, "no saved tasks, starting empty")
		s.tasks = []domain.Task{}
		return
	}

	s.tasks = make([]domain.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		text, ok := domain.NormalizeText(t.Text)
		if !ok || t.ID == "" {
			s.logger.Warn(t.ID, categoryStore, "dropped saved task without id or text")
			continue
		}
		// The first occurrence of an ID wins.
		if seen[t.ID] {
			s.logger.Warn(t.ID, categoryStore, "dropped saved task with duplicate id")
			continue
		}
		seen[t.ID] = true
		t.Text = text
		domain.NormalizeTask(&t)
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("", categoryStore, fmt.Sprintf("loaded %d tasks", len(s.tasks)))
}

// Tasks returns a copy of the canonical sequence in insertion order.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Create appends a new task and persists the sequence.
// Blank text or an unknown priority rejects the input; an empty priority
// means medium.
func (s *Store) Create(text string, dueDate *time.Time, priority domain.Priority) (domain.Task, bool) {
	text, ok := domain.NormalizeText(text)
	if !ok {
		return domain.Task{}, false
	}
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return domain.Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.freshID()
	if !ok {
		s.logger.Warn("", categoryTask, "could not allocate a unique task id")
		return domain.Task{}, false
	}

	task := domain.Task{
		ID:        id,
		Text:      text,
		CreatedAt: s.clock.Now(),
		DueDate:   domain.CloneTime(dueDate),
		Priority:  priority,
	}
	s.tasks = append(s.tasks, task)
	s.logger.Info(id, categoryTask, fmt.Sprintf("created %q", text))
	s.persist()
	return task.Clone(), true
}

// Toggle flips the completion flag of the task.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Info(id, categoryTask, fmt.Sprintf("completed=%t", s.tasks[i].Completed))
	s.persist()
	return true
}

// Edit replaces the text and due date of the task. A nil dueDate clears the
// deadline; a nil priority keeps the current one.
func (s *Store) Edit(id, text string, dueDate *time.Time, priority *domain.Priority) bool {
	text, ok := domain.NormalizeText(text)
	if !ok {
		return false
	}
	if priority != nil && !priority.IsValid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	t := &s.tasks[i]
	t.Text = text
	t.DueDate = domain.CloneTime(dueDate)
	if priority != nil {
		t.Priority = *priority
	}
	s.logger.Info(id, categoryTask, fmt.Sprintf("edited %q", text))
	s.persist()
	return true
}

// Delete removes the task.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.logger.Info(id, categoryTask, "deleted")
	s.persist()
	return true
}

// persist writes the whole sequence. Failures are logged and the in-memory
// sequence stays authoritative. Caller must hold s.mu.
func (s *Store) persist() {
	if err := s.slot.Save(s.snapshot()); err != nil {
		s.logger.Warn("", categoryStore, fmt.Sprintf("failed to save tasks: %v", err))
	}
}

// snapshot returns a deep copy of the sequence. Caller must hold s.mu.
func (s *Store) snapshot() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}

// indexOf returns the position of the task or -1. Caller must hold s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool {
		return t.ID == id
	})
}

// freshID returns an ID not used by any task. Caller must hold s.mu.
func (s *Store) freshID() (string, bool) {
	for range maxIDAttempts {
		id := s.ids.NewID()
		if id != "" && s.indexOf(id) < 0 {
			return id, true
		}
	}
	return "", false
}

type nopLogger struct{}

func (nopLogger) Info(string, string, string)  {}
func (nopLogger) Debug(string, string, string) {}
func (nopLogger) Warn(string, string, string)  {}
func (nopLogger) Error(string, string, string) {}
