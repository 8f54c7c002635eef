package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Task management
	New      key.Binding // Create new task
	Edit     key.Binding // Edit selected task
	Toggle   key.Binding // Toggle completion
	Delete   key.Binding // Delete task
	Priority key.Binding // Cycle priority of selected task

	// View
	Search key.Binding // Enter search mode
	Filter key.Binding // Cycle status filter
	Sort   key.Binding // Cycle sort key
	Help   key.Binding // Show help

	// Form
	NextField    key.Binding // Switch between text and due date
	FormPriority key.Binding // Cycle priority in the form
	Submit       key.Binding // Submit form or search

	// General
	Quit    key.Binding // Quit application
	Escape  key.Binding // Cancel/back
	Confirm key.Binding // Confirm action (in confirm mode)
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		New: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s", "o"),
			key.WithHelp("s", "sort"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextField: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "switch field"),
		),
		FormPriority: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "priority"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.New, k.Toggle, k.Search, k.Filter, k.Sort, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},            // Navigation
		{k.New, k.Edit, k.Toggle, k.Delete, k.Priority},   // Task management
		{k.Search, k.Filter, k.Sort, k.Help, k.Quit},      // View & general
		{k.FormPriority, k.NextField, k.Submit, k.Escape}, // Form
	}
}
