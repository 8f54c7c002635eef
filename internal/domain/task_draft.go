package domain

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be created from file input.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	DueDate   *time.Time
	Text      string
	Priority  Priority
	Completed bool
}

// draftRecord is the YAML shape of a draft entry.
type draftRecord struct {
	Text      string `yaml:"text"`
	Due       string `yaml:"due"`
	Priority  string `yaml:"priority"`
	Completed bool   `yaml:"completed"`
}

// ParseTaskDrafts parses a YAML document containing a list of tasks.
//
// Format:
//
//   - text: Buy milk
//     due: 2024-03-01 18:00
//     priority: high
//   - text: Call the plumber
//     completed: true
//
// Due dates without a zone are read in loc. A missing priority means medium.
// Entries that fail validation are returned in errs (1-based index) and
// skipped; the remaining drafts are still returned.
func ParseTaskDrafts(content []byte, loc *time.Location) (drafts []TaskDraft, errs []error, err error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil, ErrEmptyFile
	}

	var records []draftRecord
	if err := yaml.Unmarshal(content, &records); err != nil {
		return nil, nil, fmt.Errorf("parse task file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrNoTasksInFile
	}

	for i, rec := range records {
		draft, draftErr := rec.toDraft(loc)
		if draftErr != nil {
			errs = append(errs, fmt.Errorf("task %d: %w", i+1, draftErr))
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, errs, nil
}

func (r draftRecord) toDraft(loc *time.Location) (TaskDraft, error) {
	text, ok := NormalizeText(r.Text)
	if !ok {
		return TaskDraft{}, ErrEmptyText
	}

	priority := PriorityMedium
	if r.Priority != "" {
		p, err := ParsePriority(r.Priority)
		if err != nil {
			return TaskDraft{}, err
		}
		priority = p
	}

	due, err := ParseDueDate(r.Due, loc)
	if err != nil {
		return TaskDraft{}, err
	}

	return TaskDraft{
		Text:      text,
		DueDate:   due,
		Priority:  priority,
		Completed: r.Completed,
	}, nil
}
