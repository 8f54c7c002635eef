package usecase_test

import (
	"testing"
	"time"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/taskstore"
	"github.com/runoshun/taskflow/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	slot  *testutil.MockSlot
	clock *testutil.MockClock
	store *taskstore.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		slot:  testutil.NewMockSlot(),
		clock: &testutil.MockClock{NowTime: testNow},
	}
	e.store = taskstore.New(e.slot, e.clock, &testutil.SequentialIDs{}, nil)
	return e
}

// add creates a task and advances the clock so creation times differ.
func (e *env) add(t *testing.T, text string, due *time.Time, p domain.Priority) domain.Task {
	t.Helper()
	task, ok := e.store.Create(text, due, p)
	if !ok {
		t.Fatalf("create %q rejected", text)
	}
	e.clock.Advance(time.Minute)
	return task
}

func timePtr(t time.Time) *time.Time { return &t }

func priorityPtr(p domain.Priority) *domain.Priority { return &p }
