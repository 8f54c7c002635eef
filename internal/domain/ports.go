package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot is the durable storage adapter holding the whole task list
// under one fixed name. Every Save fully overwrites the slot.
type Slot interface {
	// Load returns the persisted sequence.
	// found is false when nothing has been saved yet.
	Load() (tasks []Task, found bool, err error)

	// Save replaces the persisted sequence.
	Save(tasks []Task) error
}

// TaskStore owns the canonical task sequence.
// Mutations never fail: invalid input and unknown IDs are silently ignored.
type TaskStore interface {
	// Tasks returns a copy of the canonical sequence.
	Tasks() []Task

	// Create appends a new task. ok is false if the input was rejected.
	Create(text string, dueDate *time.Time, priority Priority) (task Task, ok bool)

	// Toggle flips the completion flag. Returns false if no task matched.
	Toggle(id string) bool

	// Edit replaces text and due date, and priority when non-nil.
	// Returns false if the input was rejected or no task matched.
	Edit(id, text string, dueDate *time.Time, priority *Priority) bool

	// Delete removes the task. Returns false if no task matched.
	Delete(id string) bool
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + data dir).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetConfigInfo returns the locations and contents of the config files.
	GetConfigInfo() ConfigFiles

	// InitConfig writes the config template to the data dir config path.
	InitConfig(force bool) (path string, err error)
}

// ConfigInfo describes one config file.
type ConfigInfo struct {
	Path    string // Absolute file path
	Content string // Raw file content (empty if missing)
	Exists  bool   // Whether the file exists
}

// ConfigFiles lists the config files in precedence order (lowest first).
type ConfigFiles struct {
	Global ConfigInfo
	Local  ConfigInfo
}

// Exporter renders a task list into a document format.
type Exporter interface {
	// Export renders tasks and stats in the given format (json, csv, yaml or pdf).
	Export(format string, tasks []Task, stats Stats) ([]byte, error)
}

// Logger writes application log entries.
// taskID may be empty for entries not tied to a task.
type Logger interface {
	Info(taskID, category, msg string)
	Debug(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// IDGenerator produces task identifiers.
type IDGenerator interface {
	// NewID returns a fresh identifier.
	NewID() string
}

// UUIDGenerator implements IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
