package usecase

import (
	"context"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// ImportTasksInput contains the document to import.
type ImportTasksInput struct {
	Location *time.Location // Zone for due dates without one (nil = local)
	Content  []byte         // YAML list of task entries
	DryRun   bool           // Validate only, create nothing
}

// ImportTasksOutput contains the result of an import.
type ImportTasksOutput struct {
	Created []domain.Task // Tasks created, in file order
	Skipped []error       // One error per rejected entry
}

// ImportTasks creates tasks from a YAML document.
type ImportTasks struct {
	store domain.TaskStore
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(store domain.TaskStore) *ImportTasks {
	return &ImportTasks{store: store}
}

// Execute parses the document and creates one task per valid entry.
// Invalid entries are skipped and reported; they never abort the import.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	drafts, skipped, err := domain.ParseTaskDrafts(in.Content, in.Location)
	if err != nil {
		return nil, err
	}

	out := &ImportTasksOutput{Skipped: skipped}
	for _, d := range drafts {
		if in.DryRun {
			out.Created = append(out.Created, domain.Task{Text: d.Text, DueDate: d.DueDate, Priority: d.Priority, Completed: d.Completed})
			continue
		}
		task, ok := uc.store.Create(d.Text, d.DueDate, d.Priority)
		if !ok {
			continue
		}
		if d.Completed && uc.store.Toggle(task.ID) {
			task.Completed = true
		}
		out.Created = append(out.Created, task)
	}
	return out, nil
}
