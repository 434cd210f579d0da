package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxLabelsPerTask = 3
	MaxLabelNameLen  = 27
	DefaultPriority  = "Priority 3"
)

var (
	ErrTooManyLabels   = errors.New("model: too many labels")
	ErrLabelTooLong    = errors.New("model: label name too long")
	ErrInvalidReminder = errors.New("model: invalid reminder token")
	ErrInvalidRepeat   = errors.New("model: invalid repeat token")
	ErrInvalidDay      = errors.New("model: invalid day")
	ErrInvalidClock    = errors.New("model: invalid clock")
)

// Task is the persisted record for a single to-do item. Field names and
// JSON tags follow the stored snapshot shape.
type Task struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Completed    bool      `json:"completed" yaml:"completed"`
	CreationDate string    `json:"creationDate" yaml:"creationDate"`
	DueDate      string    `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Time         string    `json:"time,omitempty" yaml:"time,omitempty"`
	Priority     string    `json:"priority" yaml:"priority"`
	Description  string    `json:"description" yaml:"description"`
	Reminder     string    `json:"reminder,omitempty" yaml:"reminder,omitempty"`
	Labels       []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Repeat       string    `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	IsDraft      bool      `json:"isDraft,omitempty" yaml:"isDraft,omitempty"`
	Subtasks     []Subtask `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
}

// DeletedTask is a Task held in the trash list until restored or purged.
type DeletedTask struct {
	Task      `yaml:",inline"`
	DeletedAt time.Time `json:"deletedAt" yaml:"deletedAt"`
}

// InferDraft reports whether a task with the given schedule and description
// counts as a draft when the user did not explicitly save it as one.
func InferDraft(dueDate, description string) bool {
	return strings.TrimSpace(dueDate) == "" && strings.TrimSpace(description) == ""
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if strings.TrimSpace(t.CreationDate) == "" {
		return errors.New("model: task creation date is required")
	}
	if t.DueDate != "" {
		if _, ok := ParseDay(t.DueDate); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidDay, t.DueDate)
		}
	}
	if t.Time != "" {
		if _, err := ParseClock(t.Time); err != nil {
			return err
		}
	}
	if len(t.Labels) > MaxLabelsPerTask {
		return fmt.Errorf("%w: %d", ErrTooManyLabels, len(t.Labels))
	}
	for _, l := range t.Labels {
		if len([]rune(l)) > MaxLabelNameLen {
			return fmt.Errorf("%w: %q", ErrLabelTooLong, l)
		}
	}
	if t.Reminder != "" {
		if _, err := ParseReminderToken(t.Reminder); err != nil {
			return err
		}
	}
	if t.Repeat != "" && !IsRepeatToken(t.Repeat) {
		return fmt.Errorf("%w: %q", ErrInvalidRepeat, t.Repeat)
	}
	return nil
}

// Due combines DueDate and Time into an instant in loc. A task with a due
// date but no time is due at midnight.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	day, ok := ParseDayIn(t.DueDate, loc)
	if !ok {
		return time.Time{}, false
	}
	if t.Time == "" {
		return day, true
	}
	c, err := ParseClock(t.Time)
	if err != nil {
		return day, true
	}
	return c.On(day), true
}

// HasLabel reports whether the task carries name, ignoring case.
func (t Task) HasLabel(name string) bool {
	for _, l := range t.Labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate slices freely.
func (t Task) Clone() Task {
	out := t
	if t.Labels != nil {
		out.Labels = append([]string(nil), t.Labels...)
	}
	if t.Subtasks != nil {
		out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	return out
}
