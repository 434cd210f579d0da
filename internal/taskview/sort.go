package taskview

import (
	"sort"
	"time"

	"github.com/sandeepkv93/kario/internal/model"
)

type SortSettings struct {
	CompletionStatus bool `json:"completionStatus"`
	CreationDate     bool `json:"creationDate"`
}

func DefaultSortSettings() SortSettings {
	return SortSettings{CreationDate: true}
}

// Sort orders a copy of tasks: open before completed when CompletionStatus
// is on, then newest creation day first when CreationDate is on. Ties keep
// their input order.
func Sort(tasks []model.Task, s SortSettings) []model.Task {
	out := append([]model.Task(nil), tasks...)
	if !s.CompletionStatus && !s.CreationDate {
		return out
	}
	keys := make([]time.Time, len(out))
	for i, t := range out {
		keys[i] = creationKey(t.CreationDate)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := out[idx[a]], out[idx[b]]
		if s.CompletionStatus && ta.Completed != tb.Completed {
			return !ta.Completed
		}
		if s.CreationDate {
			return keys[idx[a]].After(keys[idx[b]])
		}
		return false
	})
	sorted := make([]model.Task, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

// creationKey parses a creation date; unparseable values sort last.
func creationKey(s string) time.Time {
	d, ok := model.ParseDayIn(s, time.UTC)
	if !ok {
		return time.Time{}
	}
	return d
}

// Group is one creation-date bucket.
type Group struct {
	Date  string       `json:"date" yaml:"date"`
	Tasks []model.Task `json:"tasks" yaml:"tasks"`
}

// GroupByCreation buckets tasks by their literal creation date string.
// Buckets are ordered newest first; tasks keep their input order.
func GroupByCreation(tasks []model.Task) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, t := range tasks {
		i, ok := index[t.CreationDate]
		if !ok {
			i = len(groups)
			index[t.CreationDate] = i
			groups = append(groups, Group{Date: t.CreationDate})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return creationKey(groups[a].Date).After(creationKey(groups[b].Date))
	})
	return groups
}
