package usecase

import (
	"context"

	"github.com/runoshun/taskflow/internal/domain"
)

// ToggleTaskInput contains the parameters for toggling completion.
type ToggleTaskInput struct {
	Ref string // Task ID or unique ID prefix
}

// ToggleTaskOutput contains the result of toggling completion.
type ToggleTaskOutput struct {
	Task    domain.Task // The task after the toggle
	Applied bool        // False when no task matched
}

// ToggleTask is the use case for flipping a task's completion flag.
type ToggleTask struct {
	store domain.TaskStore
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(store domain.TaskStore) *ToggleTask {
	return &ToggleTask{store: store}
}

// Execute flips the completion flag. An unknown reference is not an error.
func (uc *ToggleTask) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	task, found, err := resolveForMutation(uc.store, in.Ref)
	if err != nil || !found {
		return &ToggleTaskOutput{}, err
	}

	if !uc.store.Toggle(task.ID) {
		return &ToggleTaskOutput{}, nil
	}
	task.Completed = !task.Completed
	return &ToggleTaskOutput{Task: task, Applied: true}, nil
}
