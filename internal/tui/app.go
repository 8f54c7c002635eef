package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// State
	now   time.Time
	tasks []domain.Task // Display sequence
	stats domain.Stats
	total int

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model

	// Input state
	searchInput textinput.Model
	textInput   textinput.Model
	dueInput    textinput.Model

	// View parameters (never persisted)
	params domain.ViewParams

	// Form and dialog state
	formTaskID    string // Empty when adding
	confirmTaskID string
	formPriority  domain.Priority

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	formField     FormField
	width         int
	height        int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.CharLimit = 100

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD [HH:MM] (optional)"
	di.CharLimit = 40

	styles := DefaultStyles()
	taskList := list.New([]list.Item{}, newTaskDelegate(styles), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(true)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	return &Model{
		container:    c,
		mode:         ModeNormal,
		keys:         DefaultKeyMap(),
		styles:       styles,
		help:         help.New(),
		taskList:     taskList,
		searchInput:  si,
		textInput:    ti,
		dueInput:     di,
		params:       c.DefaultViewParams(),
		formPriority: domain.PriorityMedium,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks returns a command that derives the display sequence and statistics.
func (m *Model) loadTasks() tea.Cmd {
	params := m.params
	return func() tea.Msg {
		ctx := context.Background()
		out, err := m.container.ListTasksUseCase().Execute(ctx, usecase.ListTasksInput{Params: params})
		if err != nil {
			return MsgError{Err: err}
		}
		stats, err := m.container.ShowStatsUseCase().Execute(ctx, usecase.ShowStatsInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{
			Tasks:  out.Tasks,
			Total:  out.Total,
			Now:    out.Now,
			Stats:  stats.Stats,
			Params: params,
		}
	}
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		task := ti.task
		return &task
	}
	return nil
}

// Params returns the current view parameters.
func (m *Model) Params() domain.ViewParams {
	return m.params
}

// updateTaskList updates the list items from the display sequence,
// keeping the selection on the same task when it is still visible.
func (m *Model) updateTaskList() {
	var selectedID string
	if task := m.SelectedTask(); task != nil {
		selectedID = task.ID
	}

	items := make([]list.Item, 0, len(m.tasks))
	selected := 0
	for i := range m.tasks {
		task := m.tasks[i]
		if task.ID == selectedID {
			selected = i
		}
		items = append(items, taskItem{task: task, overdue: task.IsOverdue(m.now)})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(selected)
	}
}

// updateLayoutSizes resizes components after a window size change.
func (m *Model) updateLayoutSizes() {
	width := m.width - 4 // App padding
	if width < 20 {
		width = 20
	}
	// Header, search line, footer and padding.
	height := m.height - 10
	if height < 3 {
		height = 3
	}
	m.taskList.SetSize(width, height)
	m.searchInput.Width = width - 10
	m.textInput.Width = width - 10
	m.dueInput.Width = width - 10
}
