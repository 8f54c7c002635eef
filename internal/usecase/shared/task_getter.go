// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"
	"strings"

	"github.com/runoshun/taskflow/internal/domain"
)

// ResolveTask finds a task by full ID or unique ID prefix.
// Returns domain.ErrTaskNotFound if nothing matches and
// domain.ErrAmbiguousTaskRef if the prefix matches several tasks.
func ResolveTask(store domain.TaskStore, ref string) (domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	var matches []domain.Task
	for _, t := range store.Tasks() {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, fmt.Errorf("%w: %s matches %d tasks", domain.ErrAmbiguousTaskRef, ref, len(matches))
	}
}
