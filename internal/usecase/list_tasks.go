package usecase

import (
	"context"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// ListTasksInput contains the view parameters for listing tasks.
type ListTasksInput struct {
	Params domain.ViewParams
}

// ListTasksOutput contains the derived display sequence.
// Fields are ordered to minimize memory padding.
type ListTasksOutput struct {
	Now   time.Time     // Instant used for overdue flags
	Tasks []domain.Task // Display sequence
	Total int           // Number of tasks before search and filtering
}

// ListTasks is the use case for listing tasks through the view pipeline.
type ListTasks struct {
	store domain.TaskStore
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.TaskStore, clock domain.Clock) *ListTasks {
	return &ListTasks{store: store, clock: clock}
}

// Execute runs search, status filter and sort over the current tasks.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	all := uc.store.Tasks()
	return &ListTasksOutput{
		Tasks: domain.Derive(all, in.Params),
		Total: len(all),
		Now:   uc.clock.Now(),
	}, nil
}
