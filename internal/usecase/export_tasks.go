package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskflow/internal/domain"
)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Format string            // json, csv, yaml or pdf
	Params domain.ViewParams // Selection and order of exported tasks
}

// ExportTasksOutput contains the rendered document.
type ExportTasksOutput struct {
	Data  []byte
	Count int // Number of exported tasks
}

// ExportTasks renders the display sequence into a document.
type ExportTasks struct {
	store    domain.TaskStore
	exporter domain.Exporter
	clock    domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store domain.TaskStore, exporter domain.Exporter, clock domain.Clock) *ExportTasks {
	return &ExportTasks{store: store, exporter: exporter, clock: clock}
}

// Execute exports the tasks selected by the view parameters.
// The statistics always cover every task.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	all := uc.store.Tasks()
	tasks := domain.Derive(all, in.Params)
	stats := domain.ComputeStats(all, uc.clock.Now())

	data, err := uc.exporter.Export(in.Format, tasks, stats)
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	return &ExportTasksOutput{Data: data, Count: len(tasks)}, nil
}
