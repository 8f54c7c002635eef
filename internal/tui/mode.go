// Package tui provides the terminal user interface for taskflow.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Default navigation mode
	ModeSearch              // Search term input
	ModeConfirm             // Confirmation dialog mode
	ModeForm                // Add/edit task form
	ModeHelp                // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeConfirm:
		return "confirm"
	case ModeForm:
		return "form"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeSearch, ModeForm:
		return true
	case ModeNormal, ModeConfirm, ModeHelp:
		return false
	}
	return false
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone   ConfirmAction = iota
	ConfirmDelete               // Delete task
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		return "delete"
	}
	return ""
}

// FormField identifies the focused field of the task form.
type FormField int

const (
	FieldText FormField = iota // Task text
	FieldDue                   // Due date
)
