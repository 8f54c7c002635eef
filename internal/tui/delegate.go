package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/taskflow/internal/domain"
)

type taskItem struct {
	task    domain.Task
	overdue bool
}

func (t taskItem) FilterValue() string {
	return t.task.Text
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

type taskDelegate struct {
	styles Styles
}

func newTaskDelegate(styles Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// prefixWidth is the display width of "  > [x] ▲ " before the text.
const prefixWidth = 10

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	indicatorChar := " "
	if selected {
		indicatorChar = ">"
	}

	checkbox := d.styles.Checkbox.Render("[ ]")
	if task.Completed {
		checkbox = d.styles.CheckboxDone.Render("[x]")
	}

	listWidth := m.Width()
	maxTextLen := listWidth - prefixWidth - 2
	if maxTextLen < 10 {
		maxTextLen = 10
	}

	text := escapeNewlines(task.Text)
	if runewidth.StringWidth(text) > maxTextLen {
		text = runewidth.Truncate(text, maxTextLen-3, "...")
	}

	textStyle := d.styles.TaskTitle
	switch {
	case task.Completed:
		textStyle = d.styles.TaskTitleDone
	case selected:
		textStyle = d.styles.TaskTitleSelected
	}

	line := "  " + d.styles.SelectionIndicator.Render(indicatorChar) + " " +
		checkbox + " " +
		d.styles.PriorityStyle(task.Priority).Render(PriorityIcon(task.Priority)) + " " +
		textStyle.Render(text)
	_, _ = fmt.Fprintln(w, padRight(line, listWidth))

	// Second line: short id, priority and deadline
	meta := strings.Repeat(" ", prefixWidth) +
		d.styles.TaskID.Render(task.ShortID()) + "  " +
		d.styles.TaskDesc.Render(task.Priority.Display())
	if task.HasDueDate() {
		due := "due " + domain.FormatDueDate(task.DueDate.In(time.Local))
		if ti.overdue {
			meta += "  " + d.styles.TaskOverdue.Render(due+" (overdue)")
		} else {
			meta += "  " + d.styles.TaskDesc.Render(due)
		}
	}
	_, _ = fmt.Fprint(w, padRight(meta, listWidth))
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
