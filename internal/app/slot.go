package app

import (
	"fmt"

	"github.com/runoshun/taskflow/internal/domain"
)

// unavailableSlot stands in for a backend that could not be opened.
// It loads nothing and rejects every save.
type unavailableSlot struct {
	err error
}

func (unavailableSlot) Load() ([]domain.Task, bool, error) {
	return nil, false, nil
}

func (s unavailableSlot) Save([]domain.Task) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, s.err)
}
