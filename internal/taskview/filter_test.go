package taskview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepkv93/kario/internal/model"
)

// Wednesday 12 June 2024.
var wednesday = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func due(id string, offsetDays int) model.Task {
	return model.Task{ID: id, Title: id, DueDate: model.FormatDay(wednesday.AddDate(0, 0, offsetDays))}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterDateWindows(t *testing.T) {
	tasks := []model.Task{
		due("yesterday", -1),
		due("today", 0),
		due("saturday", 3),
		due("sunday", 4),
		due("day7", 7),
		due("day8", 8),
		due("day30", 30),
		due("day31", 31),
		{ID: "undated", Title: "undated"},
		{ID: "garbage", Title: "garbage", DueDate: "soon"},
	}
	on := FilterSettings{Date: true}

	tests := []struct {
		preset DatePreset
		want   []string
	}{
		{DateToday, []string{"today"}},
		{DateThisWeek, []string{"yesterday", "today", "saturday"}},
		{DateNext7Days, []string{"today", "saturday", "sunday", "day7"}},
		{DateThisMonth, []string{"yesterday", "today", "saturday", "sunday", "day7", "day8"}},
		{DateNext30Days, []string{"today", "saturday", "sunday", "day7", "day8", "day30"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			got := Filter(tasks, on, FilterValues{Date: tt.preset}, wednesday)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterDateDisabledOrAll(t *testing.T) {
	tasks := []model.Task{due("a", 40), {ID: "b"}}
	assert.Len(t, Filter(tasks, FilterSettings{Date: false}, FilterValues{Date: DateToday}, wednesday), 2)
	assert.Len(t, Filter(tasks, FilterSettings{Date: true}, FilterValues{Date: DateAll}, wednesday), 2)
	assert.Len(t, Filter(tasks, FilterSettings{Date: true}, FilterValues{Date: ""}, wednesday), 2)
}

func TestFilterPriorityAndLabelsAreAnded(t *testing.T) {
	tasks := []model.Task{
		{ID: "p1-work", Priority: "Priority 1", Labels: []string{"#Work"}},
		{ID: "p1-home", Priority: "Priority 1", Labels: []string{"#Home"}},
		{ID: "p2-work", Priority: "Priority 2", Labels: []string{"#Work", "#Urgent"}},
		{ID: "p1-none", Priority: "Priority 1"},
	}
	s := FilterSettings{Priority: true, Label: true}
	v := FilterValues{Priorities: []string{"Priority 1"}, Labels: []string{"#Work", "#Urgent"}}
	assert.Equal(t, []string{"p1-work"}, ids(Filter(tasks, s, v, wednesday)))

	s.Label = false
	assert.Equal(t, []string{"p1-work", "p1-home", "p1-none"}, ids(Filter(tasks, s, v, wednesday)))

	s = FilterSettings{Priority: true, Label: true}
	assert.Len(t, Filter(tasks, s, FilterValues{}, wednesday), 4, "empty value lists constrain nothing")
}

func TestScopeIncludes(t *testing.T) {
	open := model.Task{ID: "open"}
	done := model.Task{ID: "done", Completed: true}
	draft := model.Task{ID: "draft", IsDraft: true}
	doneDraft := model.Task{ID: "done-draft", IsDraft: true, Completed: true}

	tests := []struct {
		scope Scope
		want  map[string]bool
	}{
		{ScopeTotal, map[string]bool{"open": true, "done": true}},
		{ScopePending, map[string]bool{"open": true}},
		{ScopeCompleted, map[string]bool{"done": true}},
		{ScopeDrafts, map[string]bool{"draft": true, "done-draft": true}},
		{ScopeDeleted, map[string]bool{}},
	}
	for _, tt := range tests {
		for _, task := range []model.Task{open, done, draft, doneDraft} {
			assert.Equal(t, tt.want[task.ID], tt.scope.Includes(task), "%s includes %s", tt.scope, task.ID)
		}
	}
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("Pending")
	assert.NoError(t, err)
	assert.Equal(t, ScopePending, s)

	s, err = ParseScope("")
	assert.NoError(t, err)
	assert.Equal(t, ScopeTotal, s)

	_, err = ParseScope("archived")
	assert.Error(t, err)
}
