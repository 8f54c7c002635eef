package domain

import (
	"math"
	"time"
)

// Stats summarizes the canonical task sequence.
type Stats struct {
	Total                int `json:"total"`
	Completed            int `json:"completed"`
	Active               int `json:"active"`
	Overdue              int `json:"overdue"`
	CompletionPercentage int `json:"completionPercentage"`
}

// ComputeStats counts tasks as of now.
// It must be given the canonical sequence, not a filtered view.
func ComputeStats(tasks []Task, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			s.Completed++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionPercentage = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// ProgressCells returns how many of width cells a progress bar fills.
func (s Stats) ProgressCells(width int) int {
	if width <= 0 {
		return 0
	}
	cells := s.CompletionPercentage * width / 100
	return min(max(cells, 0), width)
}
