// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"
)

// Task represents a single entry in the task list.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`                 // Creation time (immutable)
	DueDate   *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"` // Deadline (nil = no deadline)
	ID        string     `json:"id" yaml:"id"`                               // Opaque unique identifier
	Text      string     `json:"text" yaml:"text"`                           // Display text (never empty)
	Priority  Priority   `json:"priority" yaml:"priority"`                   // low, medium or high
	Completed bool       `json:"completed" yaml:"completed"`                 // Completion flag
}

// HasDueDate returns true if the task has a deadline.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsOverdue returns true if the task has a deadline strictly before now
// and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// Clone returns a copy of the task that shares no memory with the original.
func (t Task) Clone() Task {
	t.DueDate = CloneTime(t.DueDate)
	return t
}

// CloneTime returns a copy of the given time pointer.
func CloneTime(tm *time.Time) *time.Time {
	if tm == nil {
		return nil
	}
	v := *tm
	return &v
}

// NormalizeText trims surrounding whitespace from task text.
// ok is false when nothing is left.
func NormalizeText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// NormalizeTask repairs values persisted by older versions.
// A missing or unknown priority becomes medium.
func NormalizeTask(t *Task) {
	if !t.Priority.IsValid() {
		t.Priority = PriorityMedium
	}
}

// ShortID returns the first characters of the task ID for display.
func (t *Task) ShortID() string {
	if len(t.ID) <= ShortIDLength {
		return t.ID
	}
	return t.ID[:ShortIDLength]
}

// ShortIDLength is the number of ID characters shown in listings.
const ShortIDLength = 8
