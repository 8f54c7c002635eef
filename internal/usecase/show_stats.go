package usecase

import (
	"context"

	"github.com/runoshun/taskflow/internal/domain"
)

// ShowStatsInput contains the input for the ShowStats use case.
type ShowStatsInput struct{}

// ShowStatsOutput contains the statistics.
type ShowStatsOutput struct {
	Stats domain.Stats
}

// ShowStats computes statistics over all tasks.
type ShowStats struct {
	store domain.TaskStore
	clock domain.Clock
}

// NewShowStats creates a new ShowStats use case.
func NewShowStats(store domain.TaskStore, clock domain.Clock) *ShowStats {
	return &ShowStats{store: store, clock: clock}
}

// Execute computes the statistics at the current instant.
// Search and filter settings never affect the result.
func (uc *ShowStats) Execute(_ context.Context, _ ShowStatsInput) (*ShowStatsOutput, error) {
	return &ShowStatsOutput{
		Stats: domain.ComputeStats(uc.store.Tasks(), uc.clock.Now()),
	}, nil
}
