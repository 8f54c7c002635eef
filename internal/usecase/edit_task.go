package usecase

import (
	"context"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// EditTaskInput contains the parameters for editing a task.
// Fields are ordered to minimize memory padding.
type EditTaskInput struct {
	DueDate  *time.Time       // New deadline (nil clears it)
	Priority *domain.Priority // New priority (nil keeps the current one)
	Ref      string           // Task ID or unique ID prefix
	Text     string           // New text (required, trimmed)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task    domain.Task // The task after the edit
	Applied bool        // False when no task matched or the input was rejected
}

// EditTask is the use case for editing a task.
type EditTask struct {
	store domain.TaskStore
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(store domain.TaskStore) *EditTask {
	return &EditTask{store: store}
}

// Execute replaces the text and deadline of a task, and its priority when given.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	task, found, err := resolveForMutation(uc.store, in.Ref)
	if err != nil || !found {
		return &EditTaskOutput{}, err
	}

	if !uc.store.Edit(task.ID, in.Text, in.DueDate, in.Priority) {
		return &EditTaskOutput{Task: task}, nil
	}

	text, _ := domain.NormalizeText(in.Text)
	task.Text = text
	task.DueDate = domain.CloneTime(in.DueDate)
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	return &EditTaskOutput{Task: task, Applied: true}, nil
}
