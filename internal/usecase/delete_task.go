package usecase

import (
	"context"

	"github.com/runoshun/taskflow/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Ref string // Task ID or unique ID prefix
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task    domain.Task // The removed task
	Applied bool        // False when no task matched
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store domain.TaskStore
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store domain.TaskStore) *DeleteTask {
	return &DeleteTask{store: store}
}

// Execute removes the task. Deleting an unknown task is not an error.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, found, err := resolveForMutation(uc.store, in.Ref)
	if err != nil || !found {
		return &DeleteTaskOutput{}, err
	}

	if !uc.store.Delete(task.ID) {
		return &DeleteTaskOutput{}, nil
	}
	return &DeleteTaskOutput{Task: task, Applied: true}, nil
}
