package domain

import (
	"fmt"
	"slices"
	"strings"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// AllStatusFilters returns all valid status filters.
func AllStatusFilters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterActive, FilterCompleted}
}

// ParseStatusFilter parses a status filter name (case-insensitive).
func ParseStatusFilter(s string) (StatusFilter, error) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrInvalidFilter, s)
	}
}

// Matches returns true if the task passes the filter.
// Unknown filters behave like FilterAll.
func (f StatusFilter) Matches(t *Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the following filter, wrapping around.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Display returns a human-readable representation of the filter.
func (f StatusFilter) Display() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// SortKey selects the ordering of the display sequence.
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
)

// AllSortKeys returns all valid sort keys.
func AllSortKeys() []SortKey {
	return []SortKey{SortCreated, SortDueDate, SortPriority}
}

// ParseSortKey parses a sort key. "due", "due-date" and "duedate" are
// accepted as aliases of dueDate.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "created":
		return SortCreated, nil
	case "duedate", "due", "due-date", "due_date":
		return SortDueDate, nil
	case "priority":
		return SortPriority, nil
	default:
		return "", fmt.Errorf("%w: %q (want created, dueDate or priority)", ErrInvalidSortKey, s)
	}
}

// Next returns the following sort key, wrapping around.
func (k SortKey) Next() SortKey {
	switch k {
	case SortCreated:
		return SortDueDate
	case SortDueDate:
		return SortPriority
	default:
		return SortCreated
	}
}

// Display returns a human-readable representation of the sort key.
func (k SortKey) Display() string {
	switch k {
	case SortDueDate:
		return "Due Date"
	case SortPriority:
		return "Priority"
	default:
		return "Created"
	}
}

// ViewParams controls how the display sequence is derived.
// They are never persisted.
type ViewParams struct {
	Search string       // Case-insensitive substring (empty = no search)
	Filter StatusFilter // Completion filter
	SortBy SortKey      // Ordering
}

// DefaultViewParams returns the parameters used when nothing is specified.
func DefaultViewParams() ViewParams {
	return ViewParams{
		Filter: FilterAll,
		SortBy: SortCreated,
	}
}

// Derive computes the display sequence from the canonical sequence.
// Stages run in a fixed order: search, status filter, sort.
// The input slice is never modified; the result is a fresh slice.
func Derive(tasks []Task, params ViewParams) []Task {
	needle := strings.ToLower(params.Search)

	result := make([]Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
			continue
		}
		if !params.Filter.Matches(t) {
			continue
		}
		result = append(result, t.Clone())
	}

	slices.SortStableFunc(result, Comparator(params.SortBy))
	return result
}

// Comparator returns the ordering function for the sort key.
// Unknown keys fall back to SortCreated.
func Comparator(key SortKey) func(a, b Task) int {
	switch key {
	case SortDueDate:
		return compareDueDate
	case SortPriority:
		return comparePriority
	default:
		return compareCreated
	}
}

// compareCreated orders newest first.
func compareCreated(a, b Task) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

// compareDueDate orders earliest deadline first; undated tasks go last.
func compareDueDate(a, b Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}

// comparePriority orders high before medium before low.
func comparePriority(a, b Task) int {
	return b.Priority.Rank() - a.Priority.Rank()
}

// EmptyViewMessage returns the text shown when the display sequence is empty.
func EmptyViewMessage(params ViewParams) string {
	if params.Search != "" {
		return "No tasks found"
	}
	return "No tasks yet"
}
