package usecase

import (
	"errors"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase/shared"
)

// resolveForMutation resolves a reference for toggle, edit or delete.
// An unknown reference yields found=false and no error, matching the
// store's silent no-op on unknown IDs. Ambiguous prefixes are errors.
func resolveForMutation(store domain.TaskStore, ref string) (domain.Task, bool, error) {
	task, err := shared.ResolveTask(store, ref)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return domain.Task{}, false, nil
	}
	if err != nil {
		return domain.Task{}, false, err
	}
	return task, true, nil
}
