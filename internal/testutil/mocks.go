// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockSlot is a test double for domain.Slot.
// Fields are ordered to minimize memory padding.
type MockSlot struct {
	LoadErr error
	SaveErr error
	Tasks   []domain.Task
	Saved   [][]domain.Task
	Found   bool
}

// NewMockSlot creates an empty slot that has never been written.
func NewMockSlot() *MockSlot {
	return &MockSlot{}
}

// Load returns the stored tasks.
func (m *MockSlot) Load() ([]domain.Task, bool, error) {
	if m.LoadErr != nil {
		return nil, false, m.LoadErr
	}
	if !m.Found {
		return nil, false, nil
	}
	return cloneTasks(m.Tasks), true, nil
}

// Save records the written sequence and replaces the stored tasks.
func (m *MockSlot) Save(tasks []domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = cloneTasks(tasks)
	m.Saved = append(m.Saved, cloneTasks(tasks))
	m.Found = true
	return nil
}

// SaveCount returns how many successful saves happened.
func (m *MockSlot) SaveCount() int {
	return len(m.Saved)
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// SequentialIDs is a test double for domain.IDGenerator.
// It returns "task-1", "task-2", ... unless Fixed is set.
type SequentialIDs struct {
	Fixed []string
	n     int
}

// NewID returns the next ID.
func (s *SequentialIDs) NewID() string {
	s.n++
	if len(s.Fixed) > 0 {
		return s.Fixed[(s.n-1)%len(s.Fixed)]
	}
	return fmt.Sprintf("task-%d", s.n)
}

// LogEntry is one line recorded by MockLogger.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records every entry.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) record(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(taskID, category, msg string) { m.record("INFO", taskID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID, category, msg string) { m.record("DEBUG", taskID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID, category, msg string) { m.record("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID, category, msg string) { m.record("ERROR", taskID, category, msg) }

// Count returns the number of entries at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr  error
	Files    domain.ConfigFiles
	InitPath string
	Forced   bool
}

// GetConfigInfo returns the configured files.
func (m *MockConfigManager) GetConfigInfo() domain.ConfigFiles {
	return m.Files
}

// InitConfig records the call and returns the configured result.
func (m *MockConfigManager) InitConfig(force bool) (string, error) {
	m.Forced = force
	return m.InitPath, m.InitErr
}
