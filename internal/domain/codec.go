package domain

import (
	"encoding/json"
	"fmt"
)

// MarshalTasks encodes a task sequence as a JSON array.
// Timestamps are written as RFC3339 with nanoseconds so they
// round-trip to the same instant.
func MarshalTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}

// UnmarshalTasks decodes a JSON array produced by MarshalTasks.
func UnmarshalTasks(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSlot, err)
	}
	return tasks, nil
}
