package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/infra/export"
	"github.com/runoshun/taskflow/internal/testutil"
	"github.com/runoshun/taskflow/internal/usecase"
)

func TestListTasks_Execute(t *testing.T) {
	e := newEnv(t)
	e.add(t, "Buy milk", nil, domain.PriorityLow)
	e.add(t, "Buy bread", nil, domain.PriorityHigh)
	e.add(t, "Call mom", nil, domain.PriorityMedium)

	out, err := usecase.NewListTasks(e.store, e.clock).Execute(context.Background(), usecase.ListTasksInput{
		Params: domain.ViewParams{Search: "buy", Filter: domain.FilterAll, SortBy: domain.SortPriority},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "Buy bread", out.Tasks[0].Text)
	assert.Equal(t, "Buy milk", out.Tasks[1].Text)
	assert.Equal(t, e.clock.NowTime, out.Now)
}

func TestListTasks_Execute_DoesNotReorderStore(t *testing.T) {
	e := newEnv(t)
	e.add(t, "first", nil, "")
	e.add(t, "second", nil, "")

	_, err := usecase.NewListTasks(e.store, e.clock).Execute(context.Background(), usecase.ListTasksInput{
		Params: domain.DefaultViewParams(),
	})
	require.NoError(t, err)

	tasks := e.store.Tasks()
	assert.Equal(t, "first", tasks[0].Text)
	assert.Equal(t, "second", tasks[1].Text)
}

func TestShowTask_Execute(t *testing.T) {
	e := newEnv(t)
	task := e.add(t, "late", timePtr(testNow.Add(-time.Hour)), "")

	out, err := usecase.NewShowTask(e.store, e.clock).Execute(context.Background(), usecase.ShowTaskInput{Ref: task.ID})

	require.NoError(t, err)
	assert.Equal(t, task.ID, out.Task.ID)
	assert.True(t, out.Overdue)
}

func TestShowTask_Execute_NotFound(t *testing.T) {
	e := newEnv(t)

	_, err := usecase.NewShowTask(e.store, e.clock).Execute(context.Background(), usecase.ShowTaskInput{Ref: "nope"})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestShowStats_Execute(t *testing.T) {
	e := newEnv(t)
	past := testNow.Add(-24 * time.Hour)
	future := testNow.Add(24 * time.Hour)
	done := e.add(t, "done", &past, "")
	e.add(t, "late", &past, "")
	e.add(t, "upcoming", &future, "")
	e.add(t, "undated", nil, "")
	e.store.Toggle(done.ID)
	e.clock.NowTime = testNow

	out, err := usecase.NewShowStats(e.store, e.clock).Execute(context.Background(), usecase.ShowStatsInput{})

	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 4, Completed: 1, Active: 3, Overdue: 1, CompletionPercentage: 25}, out.Stats)
}

func TestExportTasks_Execute(t *testing.T) {
	e := newEnv(t)
	e.add(t, "active", nil, "")
	done := e.add(t, "done", nil, "")
	e.store.Toggle(done.ID)

	uc := usecase.NewExportTasks(e.store, export.NewExporter(e.clock), e.clock)
	out, err := uc.Execute(context.Background(), usecase.ExportTasksInput{
		Format: "json",
		Params: domain.ViewParams{Filter: domain.FilterCompleted, SortBy: domain.SortCreated},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	var doc struct {
		Stats domain.Stats  `json:"stats"`
		Tasks []domain.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &doc))
	assert.Equal(t, 2, doc.Stats.Total)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "done", doc.Tasks[0].Text)
}

type failingExporter struct{}

func (failingExporter) Export(string, []domain.Task, domain.Stats) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestExportTasks_Execute_Error(t *testing.T) {
	e := newEnv(t)

	_, err := usecase.NewExportTasks(e.store, failingExporter{}, e.clock).Execute(context.Background(), usecase.ExportTasksInput{Format: "json"})

	assert.ErrorContains(t, err, "export tasks: boom")
}

func TestShowConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{
		Files: domain.ConfigFiles{
			Global: domain.ConfigInfo{Path: "/home/u/.config/taskflow/config.toml", Content: "[log]\nlevel = \"debug\"", Exists: true},
			Local:  domain.ConfigInfo{Path: "/data/taskflow/config.toml"},
		},
	}
	cfg := domain.NewDefaultConfig()
	cfg.Log.Level = "debug"
	loader := &testutil.MockConfigLoader{Config: cfg}

	out, err := usecase.NewShowConfig(manager, loader).Execute(context.Background(), usecase.ShowConfigInput{})

	require.NoError(t, err)
	assert.True(t, out.GlobalConfig.Exists)
	assert.False(t, out.LocalConfig.Exists)
	assert.Equal(t, "/data/taskflow/config.toml", out.LocalConfig.Path)
	assert.Equal(t, "debug", out.EffectiveConfig.Log.Level)
}

func TestShowConfig_Execute_LoadError(t *testing.T) {
	loader := &testutil.MockConfigLoader{Err: errors.New("bad toml")}

	_, err := usecase.NewShowConfig(&testutil.MockConfigManager{}, loader).Execute(context.Background(), usecase.ShowConfigInput{})

	assert.Error(t, err)
}

func TestInitConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{InitPath: "/data/taskflow/config.toml"}

	out, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{Force: true})

	require.NoError(t, err)
	assert.Equal(t, "/data/taskflow/config.toml", out.Path)
	assert.True(t, manager.Forced)
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}

	_, err := usecase.NewInitConfig(manager).Execute(context.Background(), usecase.InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
