package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskflow/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color

	// Priority colors
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color

	// Completed tasks
	Done lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray

	High:   lipgloss.Color("#D63031"), // Red
	Medium: lipgloss.Color("#FDCB6E"), // Yellow
	Low:    lipgloss.Color("#74B9FF"), // Light blue

	Done: lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	HeaderInfo lipgloss.Style

	// Progress bar
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style

	// Task list
	TaskID             lipgloss.Style
	TaskTitle          lipgloss.Style
	TaskTitleSelected  lipgloss.Style
	TaskTitleDone      lipgloss.Style
	TaskDesc           lipgloss.Style
	TaskOverdue        lipgloss.Style
	SelectionIndicator lipgloss.Style
	Checkbox           lipgloss.Style
	CheckboxDone       lipgloss.Style
	EmptyState         lipgloss.Style

	// Priority badges
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Help
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpSection lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	InputPrompt        lipgloss.Style
	InputPromptFocused lipgloss.Style

	// Error
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		HeaderInfo: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		ProgressFull: lipgloss.NewStyle().
			Foreground(Colors.Success),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		TaskDesc: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		SelectionIndicator: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected),

		Checkbox: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CheckboxDone: lipgloss.NewStyle().
			Foreground(Colors.Done),

		EmptyState: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true).
			PaddingLeft(2),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(Colors.High),

		PriorityMedium: lipgloss.NewStyle().
			Foreground(Colors.Medium),

		PriorityLow: lipgloss.NewStyle().
			Foreground(Colors.Low),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		HelpSection: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		InputPromptFocused: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}

// PriorityStyle returns the badge style for a priority.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityLow:
		return s.PriorityLow
	default:
		return s.PriorityMedium
	}
}

// PriorityIcon returns the single-cell marker for a priority.
func PriorityIcon(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "▲"
	case domain.PriorityLow:
		return "▽"
	default:
		return "■"
	}
}

// ProgressBar renders the completion percentage as a bar of width cells.
func (s Styles) ProgressBar(stats domain.Stats, width int) string {
	filled := stats.ProgressCells(width)
	return s.ProgressFull.Render(strings.Repeat("█", filled)) +
		s.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
