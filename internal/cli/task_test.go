package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/taskstore"
	"github.com/runoshun/taskflow/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(slot *testutil.MockSlot) (*app.Container, *taskstore.Store) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	clock := &testutil.MockClock{NowTime: testNow}
	store := taskstore.New(slot, clock, &testutil.SequentialIDs{}, nil)
	container := app.NewWithDeps(app.Config{}, store, clock, logger)
	return container, store
}

// runCommand executes cmd with args and returns stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// =============================================================================
// Add Command Tests
// =============================================================================

func TestNewAddCommand_CreateTask(t *testing.T) {
	slot := testutil.NewMockSlot()
	container, store := newTestContainer(slot)

	out, err := runCommand(t, newAddCommand(container), "Buy", "milk")

	assert.NoError(t, err)
	assert.Contains(t, out, "Created task task-1")

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	assert.Nil(t, tasks[0].DueDate)
	assert.Equal(t, 1, slot.SaveCount())
}

func TestNewAddCommand_WithPriorityAndDue(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newAddCommand(container), "Report", "--priority", "HIGH", "--due", "2024-06-03 18:00")

	require.NoError(t, err)
	task := store.Tasks()[0]
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(time.Date(2024, 6, 3, 18, 0, 0, 0, time.Local)))
}

func TestNewAddCommand_InvalidPriority(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newAddCommand(container), "x", "--priority", "urgent")

	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	assert.Empty(t, store.Tasks())
}

func TestNewAddCommand_InvalidDue(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newAddCommand(container), "x", "--due", "next tuesday")

	assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
}

func TestNewAddCommand_BlankText(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newAddCommand(container), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyText)
	assert.Empty(t, store.Tasks())
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestNewListCommand_Empty(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	out, err := runCommand(t, newListCommand(container))

	assert.NoError(t, err)
	assert.Equal(t, "No tasks yet\n", out)
}

func TestNewListCommand_SearchWithoutMatches(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	store.Create("Buy milk", nil, "")

	out, err := runCommand(t, newListCommand(container), "--search", "bread")

	assert.NoError(t, err)
	assert.Equal(t, "No tasks found\n", out)
}

func TestNewListCommand_Table(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	past := testNow.Add(-time.Hour)
	store.Create("Late report", &past, domain.PriorityHigh)
	done, _ := store.Create("Buy milk", nil, domain.PriorityLow)
	store.Toggle(done.ID)

	out, err := runCommand(t, newListCommand(container), "--sort", "priority")

	assert.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "PRIORITY")
	assert.Contains(t, out, "Late report")
	assert.Contains(t, out, "Jun 1 11:00 !")
	assert.Contains(t, out, "[x]")
	assert.Less(t, bytes.Index([]byte(out), []byte("Late report")), bytes.Index([]byte(out), []byte("Buy milk")))
}

func TestNewListCommand_FilterActive(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	store.Create("open", nil, "")
	done, _ := store.Create("closed", nil, "")
	store.Toggle(done.ID)

	out, err := runCommand(t, newListCommand(container), "-f", "active")

	assert.NoError(t, err)
	assert.Contains(t, out, "open")
	assert.NotContains(t, out, "closed")
}

func TestNewListCommand_LongTextTruncated(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	store.Create("first line\nsecond "+strings.Repeat("x", 80), nil, "")

	out, err := runCommand(t, newListCommand(container))

	require.NoError(t, err)
	assert.Contains(t, out, "first line second xxx")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 80))
}

func TestNewListCommand_JSON(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	store.Create("a", nil, "")

	out, err := runCommand(t, newListCommand(container), "--json")

	require.NoError(t, err)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Text)
}

func TestNewListCommand_InvalidFilter(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newListCommand(container), "--filter", "done")

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestNewListCommand_InvalidSort(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newListCommand(container), "--sort", "name")

	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
}

// =============================================================================
// Show Command Tests
// =============================================================================

func TestNewShowCommand(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	past := testNow.Add(-time.Hour)
	store.Create("Late report", &past, domain.PriorityHigh)

	out, err := runCommand(t, newShowCommand(container), "task-1")

	assert.NoError(t, err)
	assert.Contains(t, out, "# Late report")
	assert.Contains(t, out, "ID: task-1")
	assert.Contains(t, out, "Status: active")
	assert.Contains(t, out, "Priority: high")
	assert.Contains(t, out, "(overdue)")
}

func TestNewShowCommand_NotFound(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newShowCommand(container), "nope")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

// =============================================================================
// Done Command Tests
// =============================================================================

func TestNewDoneCommand_Toggles(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	task, _ := store.Create("x", nil, "")

	out, err := runCommand(t, newDoneCommand(container), task.ID)
	assert.NoError(t, err)
	assert.Contains(t, out, "is now completed")

	out, err = runCommand(t, newDoneCommand(container), task.ID)
	assert.NoError(t, err)
	assert.Contains(t, out, "is now active")
	assert.False(t, store.Tasks()[0].Completed)
}

func TestNewDoneCommand_Unknown(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newDoneCommand(container), "missing")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

// =============================================================================
// Edit Command Tests
// =============================================================================

func TestNewEditCommand_TextKeepsDueAndPriority(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	due := testNow.Add(24 * time.Hour)
	task, _ := store.Create("old", &due, domain.PriorityHigh)

	out, err := runCommand(t, newEditCommand(container), task.ID, "--text", "new")

	require.NoError(t, err)
	assert.Contains(t, out, "Updated task task-1")
	got := store.Tasks()[0]
	assert.Equal(t, "new", got.Text)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
}

func TestNewEditCommand_NoDue(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	due := testNow.Add(24 * time.Hour)
	task, _ := store.Create("x", &due, "")

	_, err := runCommand(t, newEditCommand(container), task.ID, "--no-due")

	require.NoError(t, err)
	assert.Nil(t, store.Tasks()[0].DueDate)
}

func TestNewEditCommand_Priority(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	task, _ := store.Create("x", nil, "")

	_, err := runCommand(t, newEditCommand(container), task.ID, "-p", "low")

	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, store.Tasks()[0].Priority)
}

func TestNewEditCommand_NoFlags(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	task, _ := store.Create("x", nil, "")

	_, err := runCommand(t, newEditCommand(container), task.ID)

	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}

func TestNewEditCommand_BlankText(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	task, _ := store.Create("keep", nil, "")

	_, err := runCommand(t, newEditCommand(container), task.ID, "--text", " ")

	assert.ErrorIs(t, err, domain.ErrEmptyText)
	assert.Equal(t, "keep", store.Tasks()[0].Text)
}

func TestNewEditCommand_DueAndNoDue(t *testing.T) {
	container, store := newTestContainer(testutil.NewMockSlot())
	task, _ := store.Create("x", nil, "")

	_, err := runCommand(t, newEditCommand(container), task.ID, "--due", "2024-06-02", "--no-due")

	assert.Error(t, err)
}

// =============================================================================
// Rm Command Tests
// =============================================================================

func TestNewRmCommand(t *testing.T) {
	slot := testutil.NewMockSlot()
	container, store := newTestContainer(slot)
	a, _ := store.Create("a", nil, "")
	store.Create("b", nil, "")

	out, err := runCommand(t, newRmCommand(container), a.ID)

	assert.NoError(t, err)
	assert.Contains(t, out, "Deleted task task-1")
	require.Len(t, store.Tasks(), 1)
	assert.Equal(t, "b", store.Tasks()[0].Text)
	assert.Equal(t, 3, slot.SaveCount())
}

func TestNewRmCommand_Unknown(t *testing.T) {
	container, _ := newTestContainer(testutil.NewMockSlot())

	_, err := runCommand(t, newRmCommand(container), "missing")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
