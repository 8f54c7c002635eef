package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskflow/internal/domain"
)

func TestView_LoadingBeforeWindowSize(t *testing.T) {
	f := newFixture(t)
	f.model.width = 0
	assert.Equal(t, "Loading...", f.model.View())
}

func TestView_HeaderAndTasks(t *testing.T) {
	f := newFixture(t)
	past := testNow.Add(-time.Hour)
	f.add(t, "Buy milk", &past, domain.PriorityHigh)
	f.add(t, "Walk dog", nil, domain.PriorityLow)
	f.store.Toggle("task-2")
	f.load(t)

	out := f.model.View()
	assert.Contains(t, out, "Tasks")
	assert.Contains(t, out, "showing 2 of 2")
	assert.Contains(t, out, "sort: Created")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "1 overdue")
}

func TestView_EmptyStates(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	out := f.model.View()
	assert.Contains(t, out, "No tasks yet")
	assert.Contains(t, out, "to create your first task")

	f.add(t, "Buy milk", nil, "")
	f.model.params.Search = "zzz"
	f.load(t)
	out = f.model.View()
	assert.Contains(t, out, "No tasks found")
	assert.Contains(t, out, "Search: zzz")
	assert.NotContains(t, out, "to create your first task")
}

func TestView_FormAndConfirm(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Buy milk", nil, "")
	f.load(t)

	press(f.model, keyRunes("n"))
	out := f.model.View()
	assert.Contains(t, out, "New Task")
	assert.Contains(t, out, "Priority")
	assert.Contains(t, out, "Medium")
	f.model.closeForm()

	press(f.model, keyRunes("e"))
	assert.Contains(t, f.model.View(), "Edit Task")
	f.model.closeForm()

	press(f.model, keyRunes("d"))
	out = f.model.View()
	assert.Contains(t, out, `Delete "Buy milk"?`)
	assert.Contains(t, out, "cannot be undone")
}

func TestView_ErrorShown(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.model.Update(MsgError{Err: domain.ErrTaskNotFound})
	assert.Contains(t, f.model.View(), "Error: "+domain.ErrTaskNotFound.Error())
}

func TestView_Help(t *testing.T) {
	f := newFixture(t)
	press(f.model, keyRunes("?"))
	out := f.model.View()
	assert.Contains(t, out, "KEYBOARD SHORTCUTS")
	assert.Contains(t, out, "NAVIGATION")
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "switch field")
}

// =============================================================================
// Delegate
// =============================================================================

func renderItem(t *testing.T, item taskItem, width int) string {
	t.Helper()
	styles := DefaultStyles()
	d := newTaskDelegate(styles)
	l := list.New([]list.Item{item}, d, width, 10)
	var b strings.Builder
	d.Render(&b, l, 0, item)
	return b.String()
}

func TestDelegate_Render(t *testing.T) {
	due := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	item := taskItem{
		task: domain.Task{
			ID:       "0f8b2c1e-aaaa-bbbb-cccc-000000000000",
			Text:     "Line one\nline two",
			Priority: domain.PriorityHigh,
			DueDate:  &due,
		},
		overdue: true,
	}

	out := renderItem(t, item, 80)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], ">")
	assert.Contains(t, lines[0], "[ ]")
	assert.Contains(t, lines[0], "▲")
	assert.Contains(t, lines[0], "Line one line two")
	assert.Contains(t, lines[1], item.task.ShortID())
	assert.Contains(t, lines[1], "High")
	assert.Contains(t, lines[1], "due Jun 1 09:00 (overdue)")
	assert.Equal(t, 80, lipgloss.Width(lines[0]))
}

func TestDelegate_RenderCompletedAndTruncated(t *testing.T) {
	item := taskItem{task: domain.Task{
		ID:        "task-1",
		Text:      strings.Repeat("長い", 40),
		Priority:  domain.PriorityLow,
		Completed: true,
	}}

	out := renderItem(t, item, 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[x]")
	assert.Contains(t, lines[0], "...")
	assert.LessOrEqual(t, lipgloss.Width(lines[0]), 40)
	assert.NotContains(t, lines[1], "due")
}

func TestEscapeNewlines(t *testing.T) {
	assert.Equal(t, "a b c d", escapeNewlines("a\r\nb\nc\rd"))
}
