package tasks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/taskview"
)

func TestPriorityRegistryIsMostRecentFirstAndCapped(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	for i := range 12 {
		require.NoError(t, f.svc.AddPriority(ctx, model.CustomPriority{Name: fmt.Sprintf("P%d", i), Color: "teal"}))
	}
	got := f.svc.CustomPriorities()
	require.Len(t, got, model.MaxCustomEntries)
	assert.Equal(t, "P11", got[0].Name)

	require.NoError(t, f.svc.AddPriority(ctx, model.CustomPriority{Name: "P5", Color: "pink"}))
	got = f.svc.CustomPriorities()
	assert.Equal(t, "P5", got[0].Name)
	assert.Len(t, got, model.MaxCustomEntries)

	err := f.svc.AddPriority(ctx, model.CustomPriority{Name: "a name longer than twenty"})
	assert.ErrorIs(t, err, model.ErrNameTooLong)
}

func TestRegistriesRoundTripThroughStore(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	require.NoError(t, f.svc.AddPriority(ctx, model.CustomPriority{Name: "Someday", Color: "teal"}))
	_, created, err := f.svc.AddLabel(ctx, model.CustomLabel{Name: "#Garden", Color: "green"})
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, f.svc.RememberReminder(ctx, "2d"))

	again, err := Open(ctx, f.store)
	require.NoError(t, err)
	assert.Equal(t, f.svc.CustomPriorities(), again.CustomPriorities())
	assert.Equal(t, f.svc.Labels(), again.Labels())
	assert.Equal(t, []model.CustomReminder{{Value: "2d", Label: "2 days before"}}, again.CustomReminders())
}

func TestAddLabelDeduplicatesIgnoringCase(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	_, created, err := f.svc.AddLabel(ctx, model.CustomLabel{Name: "#garden"})
	require.NoError(t, err)
	assert.True(t, created)

	existing, created, err := f.svc.AddLabel(ctx, model.CustomLabel{Name: "#GARDEN", Color: "red"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "#garden", existing.Name)

	_, created, err = f.svc.AddLabel(ctx, model.CustomLabel{Name: "#work"})
	require.NoError(t, err)
	assert.False(t, created, "presets count as existing")
	assert.Len(t, f.svc.Labels(), 1)
}

func TestDeletingRegistryEntriesLeavesTasksAlone(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	require.NoError(t, f.svc.AddPriority(ctx, model.CustomPriority{Name: "Someday", Color: "teal"}))
	_, _, err := f.svc.AddLabel(ctx, model.CustomLabel{Name: "#Garden", Color: "green"})
	require.NoError(t, err)
	task, err := f.svc.Create(ctx, Draft{Title: "Weed", Description: "beds", Priority: "Someday", Labels: []string{"#Garden"}}, false)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePriority(ctx, "Someday"))
	require.NoError(t, f.svc.DeleteLabel(ctx, "#Garden"))

	got, ok := f.svc.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Someday", got.Priority)
	assert.Equal(t, []string{"#Garden"}, got.Labels)
	assert.Equal(t, model.FallbackColor, f.svc.PriorityColor("Someday"))
	assert.Equal(t, model.FallbackColor, f.svc.LabelColor("#Garden"))
}

func TestRememberReminderSkipsPresetsAndCaps(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	require.NoError(t, f.svc.RememberReminder(ctx, "10m"))
	assert.Empty(t, f.svc.CustomReminders())

	for i := 1; i <= 11; i++ {
		require.NoError(t, f.svc.RememberReminder(ctx, fmt.Sprintf("%dd", i)))
	}
	got := f.svc.CustomReminders()
	require.Len(t, got, model.MaxCustomEntries)
	assert.Equal(t, "11d", got[0].Value)

	assert.Error(t, f.svc.RememberReminder(ctx, "bogus"))
}

func TestViewSettingsRoundTrip(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()
	assert.Equal(t, DefaultViewSettings(), f.svc.LoadViewSettings(ctx))

	vs := ViewSettings{
		Filter: taskview.FilterSettings{Date: true, Label: true},
		Values: taskview.FilterValues{Date: taskview.DateThisWeek, Priorities: []string{}, Labels: []string{"#Work"}},
		Sort:   taskview.SortSettings{CompletionStatus: true},
	}
	require.NoError(t, f.svc.SaveViewSettings(ctx, vs))
	assert.Equal(t, vs, f.svc.LoadViewSettings(ctx))

	q := vs.Query(taskview.ScopePending)
	assert.Equal(t, taskview.ScopePending, q.Scope)
	assert.True(t, q.Sort.CompletionStatus)
}

func TestCreateAndEditRecordReminders(t *testing.T) {
	f := setupService(t)
	ctx := t.Context()

	task, err := f.svc.Create(ctx, Draft{Title: "Dentist", DueDate: "20/06/2024", Time: "10:00", Reminder: "45m"}, false)
	require.NoError(t, err)
	got := f.svc.CustomReminders()
	require.Len(t, got, 1)
	assert.Equal(t, model.CustomReminder{Value: "45m", Label: "45 minutes before"}, got[0])

	_, err = f.svc.Edit(ctx, task.ID, Draft{Title: "Dentist", DueDate: "20/06/2024", Time: "10:00", Reminder: "+1d"}, false)
	require.NoError(t, err)
	got = f.svc.CustomReminders()
	require.Len(t, got, 2)
	assert.Equal(t, "+1d", got[0].Value)

	_, err = f.svc.Create(ctx, Draft{Title: "Presets stay out", DueDate: "20/06/2024", Time: "11:00", Reminder: "10m"}, false)
	require.NoError(t, err)
	assert.Len(t, f.svc.CustomReminders(), 2)
}
