package tui

import (
	"time"

	"github.com/runoshun/taskflow/internal/domain"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the display sequence has been derived.
// Params records the view parameters the sequence was derived with.
type MsgTasksLoaded struct {
	Now    time.Time
	Tasks  []domain.Task
	Params domain.ViewParams
	Stats  domain.Stats
	Total  int
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskCreated is sent when a new task is created.
type MsgTaskCreated struct {
	Task domain.Task
}

func (MsgTaskCreated) sealed() {}

// MsgTaskUpdated is sent after a toggle or edit was applied.
type MsgTaskUpdated struct {
	TaskID string
}

func (MsgTaskUpdated) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	TaskID string
}

func (MsgTaskDeleted) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
