package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskflow/internal/domain"
)

// progressBarWidth is the number of cells in the header progress bar.
const progressBarWidth = 20

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeSearch, ModeConfirm, ModeForm:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the main task list view.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewProgress())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	// Search input, or the active term when not editing it
	if m.mode == ModeSearch {
		b.WriteString(m.styles.InputPromptFocused.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	} else if m.params.Search != "" {
		b.WriteString(m.styles.Footer.Render("Search: "+m.params.Search) + "\n\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(m.viewEmptyState())
	} else {
		b.WriteString(m.taskList.View())
	}

	switch m.mode {
	case ModeNormal, ModeSearch, ModeHelp:
		// No overlay
	case ModeConfirm:
		b.WriteString("\n\n")
		b.WriteString(m.viewConfirmDialog())
	case ModeForm:
		b.WriteString("\n\n")
		b.WriteString(m.viewForm())
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

// viewHeader renders the title, the visible count and the view parameters.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Tasks")

	info := fmt.Sprintf("showing %d of %d · %s · sort: %s",
		len(m.tasks), m.total, m.params.Filter.Display(), m.params.SortBy.Display())
	rightText := m.styles.HeaderInfo.Render(info)

	headerWidth := m.width - 6
	if headerWidth < 40 {
		headerWidth = 40
	}
	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(rightText)
	if spacing < 1 {
		spacing = 1
	}

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + rightText)
}

// viewProgress renders the statistics line with a completion bar.
func (m *Model) viewProgress() string {
	s := m.stats
	counts := fmt.Sprintf("%d done · %d active", s.Completed, s.Active)
	if s.Overdue > 0 {
		counts += " · " + m.styles.TaskOverdue.Render(fmt.Sprintf("%d overdue", s.Overdue))
	}
	bar := m.styles.ProgressBar(s, progressBarWidth)
	return bar + " " + m.styles.HeaderInfo.Render(fmt.Sprintf("%3d%%", s.CompletionPercentage)) +
		"  " + m.styles.TaskDesc.Render(counts)
}

// viewEmptyState renders the empty display sequence message.
func (m *Model) viewEmptyState() string {
	var b strings.Builder
	b.WriteString(m.styles.EmptyState.Render(domain.EmptyViewMessage(m.params)))
	if m.total == 0 {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Footer.Render("  Press "))
		b.WriteString(m.styles.FooterKey.Render("n"))
		b.WriteString(m.styles.Footer.Render(" to create your first task"))
	}
	return b.String()
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	if m.confirmAction != ConfirmDelete {
		return ""
	}

	target := m.confirmTaskID
	for i := range m.tasks {
		if m.tasks[i].ID == m.confirmTaskID {
			target = fmt.Sprintf("%q", escapeNewlines(m.tasks[i].Text))
			break
		}
	}

	title := m.styles.DialogTitle.Foreground(Colors.Error).Render("Delete " + target + "?")
	prompt := m.styles.DialogPrompt.Render("This action cannot be undone.")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.HelpKey.Render("[ y ] Confirm"), "  ", m.styles.Footer.Render("[ n ] Cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", buttons)
	return m.styles.Dialog.BorderForeground(Colors.Error).Render(content)
}

// viewForm renders the add/edit form.
func (m *Model) viewForm() string {
	heading := "◆ New Task"
	if m.formTaskID != "" {
		heading = "◆ Edit Task"
	}
	title := m.styles.DialogTitle.Render(heading)

	label := func(name string, field FormField) string {
		if m.formField == field {
			return m.styles.InputPromptFocused.Render(name)
		}
		return m.styles.InputPrompt.Render(name)
	}

	priority := m.styles.PriorityStyle(m.formPriority).Render(
		PriorityIcon(m.formPriority) + " " + m.formPriority.Display())

	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" next/save  ") +
		m.styles.FooterKey.Render("tab") + m.styles.Footer.Render(" priority  ") +
		m.styles.FooterKey.Render("↑/↓") + m.styles.Footer.Render(" field  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		label("Text", FieldText),
		m.textInput.View(),
		"",
		label("Due", FieldDue),
		m.dueInput.View(),
		"",
		m.styles.InputPrompt.Render("Priority ")+priority,
		"",
		hint,
	)
	return m.styles.Dialog.Render(content)
}

func (m *Model) viewFooter() string {
	switch m.mode {
	case ModeNormal:
		return m.help.ShortHelpView(m.keys.ShortHelp())
	case ModeSearch:
		return m.styles.Footer.Render("type to search · enter keep · esc clear")
	case ModeConfirm, ModeForm, ModeHelp:
		// Hints are shown in the dialogs themselves
		return ""
	}
	return ""
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")

	names := []string{"NAVIGATION", "TASKS", "VIEW", "FORM"}
	groups := m.keys.FullHelp()

	renderSection := func(b *strings.Builder, i int) {
		b.WriteString(m.styles.HelpSection.Render(names[i]))
		b.WriteString("\n")
		for _, bind := range groups[i] {
			h := bind.Help()
			fmt.Fprintf(b, "%s %s\n", m.styles.HelpKey.Width(8).Render(h.Key), m.styles.HelpDesc.Render(h.Desc))
		}
		b.WriteString("\n")
	}

	var col1, col2 strings.Builder
	renderSection(&col1, 0)
	renderSection(&col1, 1)
	renderSection(&col2, 2)
	renderSection(&col2, 3)

	content := lipgloss.JoinHorizontal(lipgloss.Top, col1.String(), "    ", col2.String())
	closeHint := m.styles.Footer.Render("press any key to close")

	return m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content, closeHint))
}
