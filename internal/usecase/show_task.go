package usecase

import (
	"context"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	Ref string // Task ID or unique ID prefix
}

// ShowTaskOutput contains the task details.
type ShowTaskOutput struct {
	Task    domain.Task
	Overdue bool
}

// ShowTask is the use case for showing one task.
type ShowTask struct {
	store domain.TaskStore
	clock domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(store domain.TaskStore, clock domain.Clock) *ShowTask {
	return &ShowTask{store: store, clock: clock}
}

// Execute returns the task. Unlike the mutations, an unknown reference is
// reported as domain.ErrTaskNotFound.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.ResolveTask(uc.store, in.Ref)
	if err != nil {
		return nil, err
	}
	return &ShowTaskOutput{
		Task:    task,
		Overdue: task.IsOverdue(uc.clock.Now()),
	}, nil
}
