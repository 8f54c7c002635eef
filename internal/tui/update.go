package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgTasksLoaded:
		// Results for superseded view parameters are dropped.
		if msg.Params != m.params {
			return m, nil
		}
		m.tasks = msg.Tasks
		m.total = msg.Total
		m.stats = msg.Stats
		m.now = msg.Now
		m.updateTaskList()
		return m, nil

	case MsgTaskCreated:
		m.closeForm()
		return m, m.loadTasks()

	case MsgTaskUpdated:
		m.closeForm()
		return m, m.loadTasks()

	case MsgTaskDeleted:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.confirmTaskID = ""
		return m, m.loadTasks()

	case MsgError:
		m.err = msg.Err
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Any key press clears a shown error outside the form
	if m.mode != ModeForm {
		m.err = nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeForm:
		return m.handleFormMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.params.Search != "" {
			m.searchInput.Reset()
			m.params.Search = ""
			return m, m.loadTasks()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.taskList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.taskList.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.taskList.Paginator.PrevPage()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.taskList.Paginator.NextPage()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.openForm(nil)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.openForm(task)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.toggleTask(task.ID)

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDelete
		m.confirmTaskID = task.ID
		return m, nil

	case key.Matches(msg, m.keys.Priority):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		next := task.Priority.Next()
		return m, m.editTask(task.ID, task.Text, task.DueDate, next)

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.params.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Filter):
		m.params.Filter = m.params.Filter.Next()
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Sort):
		m.params.SortBy = m.params.SortBy.Next()
		return m, m.loadTasks()
	}

	return m, nil
}

// handleSearchMode updates the search term on every keystroke.
func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.params.Search = ""
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Submit):
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == m.params.Search {
		return m, cmd
	}
	m.params.Search = m.searchInput.Value()
	return m, tea.Batch(cmd, m.loadTasks())
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.confirmTaskID = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.confirmAction {
		case ConfirmNone:
			// Nothing to confirm
		case ConfirmDelete:
			return m, m.deleteTask(m.confirmTaskID)
		}
	}

	return m, nil
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "q" {
		return m, tea.Quit
	}
	m.mode = ModeNormal
	return m, nil
}

// openForm enters the add form, or the edit form when task is non-nil.
func (m *Model) openForm(task *domain.Task) {
	m.mode = ModeForm
	m.formField = FieldText
	m.err = nil
	if task == nil {
		m.formTaskID = ""
		m.formPriority = domain.PriorityMedium
		m.textInput.Reset()
		m.dueInput.Reset()
	} else {
		m.formTaskID = task.ID
		m.formPriority = task.Priority
		m.textInput.SetValue(task.Text)
		m.dueInput.SetValue(domain.FormatDueDateInput(task.DueDate))
	}
	m.textInput.CursorEnd()
	m.focusFormField()
}

func (m *Model) closeForm() {
	if m.mode == ModeForm {
		m.mode = ModeNormal
	}
	m.formTaskID = ""
	m.textInput.Reset()
	m.dueInput.Reset()
	m.textInput.Blur()
	m.dueInput.Blur()
}

func (m *Model) focusFormField() {
	if m.formField == FieldText {
		m.textInput.Focus()
		m.dueInput.Blur()
		return
	}
	m.dueInput.Focus()
	m.textInput.Blur()
}

func (m *Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.err = nil
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.FormPriority):
		m.formPriority = m.formPriority.Next()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if m.formField == FieldText {
			m.formField = FieldDue
		} else {
			m.formField = FieldText
		}
		m.focusFormField()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.formField == FieldText {
			m.formField = FieldDue
			m.focusFormField()
			return m, nil
		}
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	if m.formField == FieldText {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

// submitForm validates the form and returns the command applying it.
// Validation errors keep the form open.
func (m *Model) submitForm() tea.Cmd {
	text, ok := domain.NormalizeText(m.textInput.Value())
	if !ok {
		m.err = domain.ErrEmptyText
		m.formField = FieldText
		m.focusFormField()
		return nil
	}

	due, err := domain.ParseDueDate(m.dueInput.Value(), time.Local)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil

	if m.formTaskID == "" {
		return m.createTask(text, due, m.formPriority)
	}
	return m.editTask(m.formTaskID, text, due, m.formPriority)
}

// Commands

func (m *Model) createTask(text string, due *time.Time, priority domain.Priority) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddTaskUseCase().Execute(context.Background(), usecase.AddTaskInput{
			Text:     text,
			DueDate:  due,
			Priority: priority,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		if !out.Created {
			return MsgError{Err: domain.ErrEmptyText}
		}
		return MsgTaskCreated{Task: out.Task}
	}
}

func (m *Model) toggleTask(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ToggleTaskUseCase().Execute(context.Background(), usecase.ToggleTaskInput{Ref: id})
		if err != nil {
			return MsgError{Err: err}
		}
		if !out.Applied {
			return MsgError{Err: domain.ErrTaskNotFound}
		}
		return MsgTaskUpdated{TaskID: id}
	}
}

func (m *Model) editTask(id, text string, due *time.Time, priority domain.Priority) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.EditTaskUseCase().Execute(context.Background(), usecase.EditTaskInput{
			Ref:      id,
			Text:     text,
			DueDate:  due,
			Priority: &priority,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		if !out.Applied {
			return MsgError{Err: domain.ErrTaskNotFound}
		}
		return MsgTaskUpdated{TaskID: id}
	}
}

func (m *Model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{Ref: id})
		if err != nil {
			return MsgError{Err: err}
		}
		if !out.Applied {
			return MsgError{Err: domain.ErrTaskNotFound}
		}
		return MsgTaskDeleted{TaskID: id}
	}
}
