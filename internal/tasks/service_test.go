package tasks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/storage"
	"github.com/sandeepkv93/kario/internal/taskview"
)

type fixture struct {
	svc   *Service
	store *storage.MemoryStore
	now   time.Time
}

func setupService(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: storage.NewMemoryStore(),
		now:   time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC),
	}
	seq := 0
	svc, err := Open(t.Context(), f.store,
		WithClock(func() time.Time { return f.now }),
		WithIDs(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
	)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *fixture) create(t *testing.T, title string) model.Task {
	t.Helper()
	task, err := f.svc.Create(t.Context(), Draft{Title: title, DueDate: "20/06/2024"}, false)
	require.NoError(t, err)
	return task
}

func liveIDs(svc *Service) []string {
	var out []string
	for _, t := range svc.Tasks() {
		out = append(out, t.ID)
	}
	return out
}

func TestCreateDefaultsAndDraftInference(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()

	task, err := f.svc.Create(ctx, Draft{Title: "  Buy milk  "}, false)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "12/06/2024", task.CreationDate)
	assert.Equal(t, model.DefaultPriority, task.Priority)
	assert.True(t, task.IsDraft, "no due date and no description is a draft")

	task, err = f.svc.Create(ctx, Draft{Title: "Report", Description: "quarterly"}, false)
	require.NoError(t, err)
	assert.False(t, task.IsDraft)

	task, err = f.svc.Create(ctx, Draft{Title: "Forced", DueDate: "20/06/2024", Description: "x"}, true)
	require.NoError(t, err)
	assert.True(t, task.IsDraft, "explicit draft save wins over inference")

	_, err = f.svc.Create(ctx, Draft{Title: "   "}, false)
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.Len(t, f.svc.Tasks(), 3)
}

func TestEditKeepsIdentityAndSchedule(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	task, err := f.svc.Create(ctx, Draft{Title: "Call", DueDate: "20/06/2024", Time: "15:00"}, false)
	require.NoError(t, err)

	f.now = f.now.AddDate(0, 0, 3)
	edited, err := f.svc.Edit(ctx, task.ID, Draft{Title: "Call mum"}, false)
	require.NoError(t, err)
	assert.Equal(t, task.ID, edited.ID)
	assert.Equal(t, "12/06/2024", edited.CreationDate)
	assert.Equal(t, "20/06/2024", edited.DueDate)
	assert.Equal(t, "15:00", edited.Time)
	assert.False(t, edited.IsDraft)

	edited, err = f.svc.Edit(ctx, task.ID, Draft{Title: "Call mum"}, true)
	require.NoError(t, err)
	assert.True(t, edited.IsDraft)
}

func TestReminderRequiresDueDateAndTime(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	task, err := f.svc.Create(ctx, Draft{Title: "Dentist", DueDate: "20/06/2024"}, false)
	require.NoError(t, err)

	_, err = f.svc.SetReminder(ctx, task.ID, "10m")
	assert.ErrorIs(t, err, ErrReminderNeedsSchedule)
	got, _ := f.svc.Task(task.ID)
	assert.Empty(t, got.Reminder, "rejected reminder must not be stored")

	at := "09:30"
	_, err = f.svc.Update(ctx, task.ID, Patch{Time: &at})
	require.NoError(t, err)
	got, err = f.svc.SetReminder(ctx, task.ID, "+2d")
	require.NoError(t, err)
	assert.Equal(t, "+2d", got.Reminder)
	assert.Equal(t, "+2d", f.svc.CustomReminders()[0].Value)

	_, err = f.svc.Create(ctx, Draft{Title: "No time", DueDate: "20/06/2024", Reminder: "1h"}, false)
	assert.ErrorIs(t, err, ErrReminderNeedsSchedule)

	cleared := ""
	_, err = f.svc.Update(ctx, task.ID, Patch{DueDate: &cleared})
	require.NoError(t, err)
	got, _ = f.svc.Task(task.ID)
	assert.Empty(t, got.Reminder, "dropping the due date drops the reminder")
}

func TestUpdateReinfersDraft(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	task, err := f.svc.Create(ctx, Draft{Title: "Idea"}, false)
	require.NoError(t, err)
	require.True(t, task.IsDraft)

	prio := "Priority 1"
	task, err = f.svc.Update(ctx, task.ID, Patch{Priority: &prio})
	require.NoError(t, err)
	assert.True(t, task.IsDraft, "unrelated patch keeps the flag")

	due := "21/06/2024"
	task, err = f.svc.Update(ctx, task.ID, Patch{DueDate: &due})
	require.NoError(t, err)
	assert.False(t, task.IsDraft)

	yes := true
	task, err = f.svc.Update(ctx, task.ID, Patch{AsDraft: &yes})
	require.NoError(t, err)
	assert.True(t, task.IsDraft)
}

func TestToggle(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	task := f.create(t, "Run")

	got, err := f.svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	got, err = f.svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	draft, err := f.svc.Create(ctx, Draft{Title: "draft"}, false)
	require.NoError(t, err)
	_, err = f.svc.Toggle(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotCompletable)

	require.NoError(t, f.svc.Delete(ctx, task.ID))
	_, err = f.svc.Toggle(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRestorePurge(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	a := f.create(t, "a")
	b := f.create(t, "b")

	require.NoError(t, f.svc.Delete(ctx, a.ID))
	assert.Equal(t, []string{b.ID}, liveIDs(f.svc))
	deleted := f.svc.Deleted()
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].DeletedAt.Equal(f.now))

	writes := f.store.Writes()
	assert.ErrorIs(t, f.svc.Delete(ctx, a.ID), ErrNotFound)
	assert.Equal(t, writes, f.store.Writes(), "second delete is a no-op")
	assert.Len(t, f.svc.Deleted(), 1)

	restored, err := f.svc.Restore(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.CreationDate, restored.CreationDate)
	assert.Equal(t, []string{b.ID, a.ID}, liveIDs(f.svc), "restored tasks go to the end")
	assert.Empty(t, f.svc.Deleted())

	require.NoError(t, f.svc.Delete(ctx, a.ID))
	f.now = f.now.Add(3 * 24 * time.Hour)
	require.NoError(t, f.svc.Delete(ctx, b.ID))

	f.now = f.now.Add(5 * 24 * time.Hour)
	n, err := f.svc.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	deleted = f.svc.Deleted()
	require.Len(t, deleted, 1)
	assert.Equal(t, b.ID, deleted[0].ID)
}

func TestDeletePersistsBothListsTogether(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	a := f.create(t, "a")
	before := f.store.Writes()
	require.NoError(t, f.svc.Delete(ctx, a.ID))
	assert.Equal(t, before+1, f.store.Writes(), "live and deleted lists go out in one batch")

	live := storage.Load(ctx, f.store, storage.KeyTasks, []model.Task{})
	gone := storage.Load(ctx, f.store, storage.KeyDeletedTasks, []model.DeletedTask{})
	assert.Empty(t, live)
	require.Len(t, gone, 1)
	assert.Equal(t, a.ID, gone[0].ID)
}

func TestMove(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	a, b, c, d := f.create(t, "a"), f.create(t, "b"), f.create(t, "c"), f.create(t, "d")

	moved, err := f.svc.Move(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{b.ID, c.ID, a.ID, d.ID}, liveIDs(f.svc))

	moved, err = f.svc.Move(ctx, d.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{d.ID, b.ID, c.ID, a.ID}, liveIDs(f.svc))

	writes := f.store.Writes()
	moved, err = f.svc.Move(ctx, c.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, moved)
	moved, err = f.svc.Move(ctx, "missing", c.ID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, writes, f.store.Writes(), "no-op moves do not write")
	assert.Equal(t, []string{d.ID, b.ID, c.ID, a.ID}, liveIDs(f.svc))
}

func TestReopenReadsPersistedState(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	a := f.create(t, "a")
	require.NoError(t, f.svc.Delete(ctx, a.ID))
	f.create(t, "b")

	again, err := Open(ctx, f.store)
	require.NoError(t, err)
	assert.Len(t, again.Tasks(), 1)
	assert.Len(t, again.Deleted(), 1)
}

func TestOpenToleratesMalformedValues(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := t.Context()
	require.NoError(t, store.Put(ctx, storage.KeyTasks, "not json"))
	require.NoError(t, store.Put(ctx, storage.KeyLabels, `{"oops":true}`))
	svc, err := Open(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, svc.Tasks())
	assert.Empty(t, svc.Labels())
}

func TestSubscribe(t *testing.T) {
	f := setupService(t)
	var got []Change
	unsubscribe := f.svc.Subscribe(func(c Change) { got = append(got, c) })
	a := f.create(t, "a")
	require.NoError(t, f.svc.Delete(context.Background(), a.ID))
	unsubscribe()
	f.create(t, "b")

	require.Len(t, got, 2)
	assert.Equal(t, Change{Kind: ChangeCreated, TaskID: a.ID}, got[0])
	assert.Equal(t, Change{Kind: ChangeDeleted, TaskID: a.ID}, got[1])
}

func TestResolveShortID(t *testing.T) {
	f := setupService(t)
	f.svc.newID = func() string { return "abc123" }
	f.create(t, "a")
	f.svc.newID = func() string { return "abd456" }
	f.create(t, "b")

	id, err := f.svc.Resolve("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = f.svc.Resolve("d456")
	require.NoError(t, err)
	assert.Equal(t, "abd456", id)

	_, err = f.svc.Resolve("ab")
	assert.Error(t, err)
	_, err = f.svc.Resolve("zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestViewUsesServiceClock(t *testing.T) {
	f := setupService(t)
	f.create(t, "due next week")
	v := f.svc.View(taskview.Query{
		Scope:    taskview.ScopeTotal,
		Settings: taskview.FilterSettings{Date: true},
		Values:   taskview.FilterValues{Date: taskview.DateNext7Days},
	})
	assert.Len(t, v.Rows, 0, "20/06 is eight days after 12/06")

	v = f.svc.View(taskview.Query{
		Scope:    taskview.ScopeTotal,
		Settings: taskview.FilterSettings{Date: true},
		Values:   taskview.FilterValues{Date: taskview.DateThisMonth},
	})
	assert.Len(t, v.Rows, 1)
}
