package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tasks := []Task{
		{ID: "1", Text: "done", Completed: true, DueDate: &past},
		{ID: "2", Text: "late", DueDate: &past},
		{ID: "3", Text: "upcoming", DueDate: &future},
		{ID: "4", Text: "undated"},
	}

	got := ComputeStats(tasks, now)

	assert.Equal(t, Stats{
		Total:                4,
		Completed:            1,
		Active:               3,
		Overdue:              1,
		CompletionPercentage: 25,
	}, got)
}

func TestComputeStats_Empty(t *testing.T) {
	got := ComputeStats(nil, time.Now())
	assert.Equal(t, Stats{}, got)
}

func TestComputeStats_Rounding(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"one third", 1, 3, 33},
		{"two thirds", 2, 3, 67},
		{"half", 1, 2, 50},
		{"all", 3, 3, 100},
		{"none", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]Task, tt.total)
			for i := 0; i < tt.completed; i++ {
				tasks[i].Completed = true
			}
			assert.Equal(t, tt.want, ComputeStats(tasks, time.Now()).CompletionPercentage)
		})
	}
}

func TestComputeStats_DueExactlyNowIsNotOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tasks := []Task{{ID: "1", Text: "x", DueDate: &now}}

	assert.Equal(t, 0, ComputeStats(tasks, now).Overdue)
}

func TestStats_ProgressCells(t *testing.T) {
	assert.Equal(t, 5, Stats{CompletionPercentage: 25}.ProgressCells(20))
	assert.Equal(t, 20, Stats{CompletionPercentage: 100}.ProgressCells(20))
	assert.Equal(t, 0, Stats{CompletionPercentage: 0}.ProgressCells(20))
	assert.Equal(t, 0, Stats{CompletionPercentage: 50}.ProgressCells(0))
}
