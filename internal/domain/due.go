package domain

import (
	"fmt"
	"strings"
	"time"
)

// dueDateLayouts are the accepted input layouts, tried in order.
// Layouts without a zone are interpreted in the caller's location.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDueDate parses a due date entered by the user.
// An empty string means "no deadline" and returns nil.
func ParseDueDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339)", ErrInvalidDueDate, s)
}

// FormatDueDate formats a deadline for list display, e.g. "Mar 1 09:30".
func FormatDueDate(t time.Time) string {
	return t.Format("Jan 2 15:04")
}

// FormatDueDateInput formats a deadline so ParseDueDate accepts it back.
func FormatDueDateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
