package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtaskLifecycle(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	parent := f.create(t, "Trip")

	pack, err := f.svc.AddSubtask(ctx, parent.ID, "", "Pack")
	require.NoError(t, err)
	socks, err := f.svc.AddSubtask(ctx, parent.ID, pack.ID, "Socks")
	require.NoError(t, err)
	_, err = f.svc.AddSubtask(ctx, parent.ID, socks.ID, "Wool ones")
	require.NoError(t, err)
	tickets, err := f.svc.AddSubtask(ctx, parent.ID, "", "Tickets")
	require.NoError(t, err)

	_, err = f.svc.AddSubtask(ctx, parent.ID, "nope", "Orphan")
	assert.ErrorIs(t, err, ErrSubtaskNotFound)
	_, err = f.svc.AddSubtask(ctx, parent.ID, "", "  ")
	assert.ErrorIs(t, err, ErrTitleRequired)

	task, err := f.svc.ToggleSubtask(ctx, parent.ID, tickets.ID)
	require.NoError(t, err)
	assert.True(t, task.Subtasks[3].Completed)

	task, err = f.svc.RenameSubtask(ctx, parent.ID, socks.ID, "Warm socks")
	require.NoError(t, err)
	assert.Equal(t, "Warm socks", task.Subtasks[1].Title)

	task, err = f.svc.DeleteSubtask(ctx, parent.ID, pack.ID)
	require.NoError(t, err)
	require.Len(t, task.Subtasks, 1, "deleting a subtask removes its descendants")
	assert.Equal(t, tickets.ID, task.Subtasks[0].ID)

	_, err = f.svc.ToggleSubtask(ctx, parent.ID, pack.ID)
	assert.ErrorIs(t, err, ErrSubtaskNotFound)

	stored, ok := f.svc.Task(parent.ID)
	require.True(t, ok)
	assert.Len(t, stored.Subtasks, 1)
}
