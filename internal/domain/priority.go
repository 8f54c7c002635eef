package domain

import (
	"fmt"
	"strings"
)

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns all valid priorities from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority parses a priority name (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q (want low, medium or high)", ErrInvalidPriority, s)
	}
	return p, nil
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the sort weight of the priority.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Next returns the following priority, wrapping from high to low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}
