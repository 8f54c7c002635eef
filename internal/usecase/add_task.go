// Package usecase contains application use cases.
package usecase

import (
	"context"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// AddTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type AddTaskInput struct {
	DueDate  *time.Time      // Deadline (optional)
	Text     string          // Task text (required, trimmed)
	Priority domain.Priority // Priority (empty = medium)
}

// AddTaskOutput contains the result of creating a task.
type AddTaskOutput struct {
	Task    domain.Task // The created task (zero if not created)
	Created bool        // False when the input was rejected
}

// AddTask is the use case for creating a task.
type AddTask struct {
	store domain.TaskStore
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store domain.TaskStore) *AddTask {
	return &AddTask{store: store}
}

// Execute creates a task. Blank text is not an error; Created reports false.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	task, ok := uc.store.Create(in.Text, in.DueDate, in.Priority)
	return &AddTaskOutput{Task: task, Created: ok}, nil
}
