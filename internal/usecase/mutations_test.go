package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/usecase"
)

func TestAddTask_Execute(t *testing.T) {
	e := newEnv(t)
	due := testNow.Add(24 * time.Hour)

	out, err := usecase.NewAddTask(e.store).Execute(context.Background(), usecase.AddTaskInput{
		Text:     "  Buy milk ",
		DueDate:  &due,
		Priority: domain.PriorityHigh,
	})

	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "Buy milk", out.Task.Text)
	assert.Equal(t, domain.PriorityHigh, out.Task.Priority)
	assert.Equal(t, 1, e.slot.SaveCount())
}

func TestAddTask_Execute_BlankText(t *testing.T) {
	e := newEnv(t)

	out, err := usecase.NewAddTask(e.store).Execute(context.Background(), usecase.AddTaskInput{Text: "   "})

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Empty(t, e.store.Tasks())
}

func TestToggleTask_Execute(t *testing.T) {
	e := newEnv(t)
	task := e.add(t, "x", nil, "")
	uc := usecase.NewToggleTask(e.store)

	out, err := uc.Execute(context.Background(), usecase.ToggleTaskInput{Ref: task.ID})
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.True(t, out.Task.Completed)

	out, err = uc.Execute(context.Background(), usecase.ToggleTaskInput{Ref: task.ID})
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.False(t, out.Task.Completed)
}

func TestToggleTask_Execute_Prefix(t *testing.T) {
	e := newEnv(t)
	e.add(t, "x", nil, "")

	out, err := usecase.NewToggleTask(e.store).Execute(context.Background(), usecase.ToggleTaskInput{Ref: "task-1"})

	require.NoError(t, err)
	assert.True(t, out.Applied)
}

func TestToggleTask_Execute_UnknownIsNoop(t *testing.T) {
	e := newEnv(t)
	e.add(t, "x", nil, "")

	out, err := usecase.NewToggleTask(e.store).Execute(context.Background(), usecase.ToggleTaskInput{Ref: "missing"})

	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, 1, e.slot.SaveCount())
}

func TestToggleTask_Execute_Ambiguous(t *testing.T) {
	e := newEnv(t)
	e.add(t, "x", nil, "")
	e.add(t, "y", nil, "")

	_, err := usecase.NewToggleTask(e.store).Execute(context.Background(), usecase.ToggleTaskInput{Ref: "task-"})

	assert.ErrorIs(t, err, domain.ErrAmbiguousTaskRef)
}

func TestEditTask_Execute(t *testing.T) {
	e := newEnv(t)
	task := e.add(t, "old", timePtr(testNow), domain.PriorityHigh)
	newDue := testNow.Add(48 * time.Hour)

	out, err := usecase.NewEditTask(e.store).Execute(context.Background(), usecase.EditTaskInput{
		Ref:      task.ID,
		Text:     " new ",
		DueDate:  &newDue,
		Priority: priorityPtr(domain.PriorityLow),
	})

	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, "new", out.Task.Text)
	assert.Equal(t, domain.PriorityLow, out.Task.Priority)
	assert.True(t, out.Task.DueDate.Equal(newDue))

	stored := e.store.Tasks()[0]
	assert.Equal(t, out.Task, stored)
}

func TestEditTask_Execute_KeepsPriorityClearsDue(t *testing.T) {
	e := newEnv(t)
	task := e.add(t, "old", timePtr(testNow), domain.PriorityHigh)

	out, err := usecase.NewEditTask(e.store).Execute(context.Background(), usecase.EditTaskInput{
		Ref:  task.ID,
		Text: "new",
	})

	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, domain.PriorityHigh, out.Task.Priority)
	assert.Nil(t, out.Task.DueDate)
}

func TestEditTask_Execute_BlankText(t *testing.T) {
	e := newEnv(t)
	task := e.add(t, "keep", nil, "")

	out, err := usecase.NewEditTask(e.store).Execute(context.Background(), usecase.EditTaskInput{
		Ref:  task.ID,
		Text: " ",
	})

	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, "keep", e.store.Tasks()[0].Text)
}

func TestDeleteTask_Execute(t *testing.T) {
	e := newEnv(t)
	a := e.add(t, "a", nil, "")
	b := e.add(t, "b", nil, "")
	uc := usecase.NewDeleteTask(e.store)

	out, err := uc.Execute(context.Background(), usecase.DeleteTaskInput{Ref: a.ID})
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, "a", out.Task.Text)

	tasks := e.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)

	out, err = uc.Execute(context.Background(), usecase.DeleteTaskInput{Ref: a.ID})
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Len(t, e.store.Tasks(), 1)
}

func TestImportTasks_Execute(t *testing.T) {
	e := newEnv(t)
	content := []byte(`
- text: Buy milk
  due: 2024-06-02
  priority: high
- text: Done already
  completed: true
- text: ""
`)

	out, err := usecase.NewImportTasks(e.store).Execute(context.Background(), usecase.ImportTasksInput{
		Content:  content,
		Location: time.UTC,
	})

	require.NoError(t, err)
	require.Len(t, out.Created, 2)
	require.Len(t, out.Skipped, 1)
	assert.ErrorIs(t, out.Skipped[0], domain.ErrEmptyText)

	tasks := e.store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	assert.True(t, tasks[0].DueDate.Equal(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, tasks[1].Completed)
	assert.True(t, out.Created[1].Completed)
}

func TestImportTasks_Execute_DryRun(t *testing.T) {
	e := newEnv(t)

	out, err := usecase.NewImportTasks(e.store).Execute(context.Background(), usecase.ImportTasksInput{
		Content: []byte("- text: one\n- text: two\n"),
		DryRun:  true,
	})

	require.NoError(t, err)
	assert.Len(t, out.Created, 2)
	assert.Empty(t, e.store.Tasks())
	assert.Equal(t, 0, e.slot.SaveCount())
}

func TestImportTasks_Execute_EmptyFile(t *testing.T) {
	e := newEnv(t)

	_, err := usecase.NewImportTasks(e.store).Execute(context.Background(), usecase.ImportTasksInput{Content: []byte("")})

	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}
