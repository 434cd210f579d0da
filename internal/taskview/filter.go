package taskview

import (
	"slices"
	"time"

	"github.com/sandeepkv93/kario/internal/model"
)

type DatePreset string

const (
	DateAll        DatePreset = "All"
	DateToday      DatePreset = "Today"
	DateThisWeek   DatePreset = "This week"
	DateNext7Days  DatePreset = "Next 7 days"
	DateThisMonth  DatePreset = "This month"
	DateNext30Days DatePreset = "Next 30 days"
)

var DatePresets = []DatePreset{DateToday, DateThisWeek, DateNext7Days, DateThisMonth, DateNext30Days}

// FilterSettings says which predicates are switched on.
type FilterSettings struct {
	Date     bool `json:"date"`
	Priority bool `json:"priority"`
	Label    bool `json:"label"`
}

// FilterValues holds the predicate arguments.
type FilterValues struct {
	Date       DatePreset `json:"date"`
	Priorities []string   `json:"priorities"`
	Labels     []string   `json:"labels"`
}

func DefaultFilterValues() FilterValues {
	return FilterValues{Date: "", Priorities: []string{}, Labels: []string{}}
}

// Window returns the inclusive first and last day (both at midnight) the
// preset covers relative to today. ok is false for presets that do not
// constrain anything.
func (p DatePreset) Window(today time.Time) (first, last time.Time, ok bool) {
	today = model.StartOfDay(today)
	switch p {
	case DateToday:
		return today, today, true
	case DateThisWeek:
		first = today.AddDate(0, 0, -int(today.Weekday()))
		return first, first.AddDate(0, 0, 6), true
	case DateNext7Days:
		return today, today.AddDate(0, 0, 7), true
	case DateThisMonth:
		first = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, -1), true
	case DateNext30Days:
		return today, today.AddDate(0, 0, 30), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Filter keeps the tasks that pass every enabled predicate. A predicate
// with no values is ignored. Order is preserved.
func Filter(tasks []model.Task, s FilterSettings, v FilterValues, now time.Time) []model.Task {
	first, last, dateOn := v.Date.Window(now)
	dateOn = dateOn && s.Date
	prioOn := s.Priority && len(v.Priorities) > 0
	labelOn := s.Label && len(v.Labels) > 0

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if dateOn && !dueWithin(t, first, last) {
			continue
		}
		if prioOn && !slices.Contains(v.Priorities, t.Priority) {
			continue
		}
		if labelOn && !anyLabel(t.Labels, v.Labels) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func dueWithin(t model.Task, first, last time.Time) bool {
	d, ok := model.ParseDayIn(t.DueDate, first.Location())
	if !ok {
		return false
	}
	return !d.Before(first) && !d.After(last)
}

func anyLabel(have, want []string) bool {
	for _, l := range have {
		if slices.Contains(want, l) {
			return true
		}
	}
	return false
}
