package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAmbiguousTaskRef = errors.New("task reference matches more than one task")
	ErrEmptyText        = errors.New("text cannot be empty")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidFilter    = errors.New("invalid status filter")
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrInvalidDueDate   = errors.New("invalid due date")
	ErrUnknownBackend   = errors.New("unknown storage backend")
	ErrUnknownFormat    = errors.New("unknown export format")
	ErrEncryptionKey    = errors.New("encryption enabled but " + EncryptionEnv + " is not set")
	ErrConfigExists     = errors.New("config file already exists")
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoTasksInFile    = errors.New("no tasks found in file")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrCorruptSlot      = errors.New("stored task list is corrupt")
	ErrStoreUnavailable = errors.New("storage backend unavailable")
)
