package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReminderAtTime is the reserved token for "remind me when the task is due".
const ReminderAtTime = "at-time"

// MaxReminderAmount bounds the N of an offset token so trigger times stay
// within time.Duration range.
const MaxReminderAmount = 9999

type ReminderKind int

const (
	ReminderOffsetKind ReminderKind = iota
	ReminderAtTaskKind
	ReminderAtClockKind
)

type ReminderUnit string

const (
	UnitSecond ReminderUnit = "s"
	UnitMinute ReminderUnit = "m"
	UnitHour   ReminderUnit = "h"
	UnitDay    ReminderUnit = "d"
	UnitWeek   ReminderUnit = "w"
	UnitMonth  ReminderUnit = "mo"
)

func (u ReminderUnit) IsValid() bool {
	switch u {
	case UnitSecond, UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth:
		return true
	default:
		return false
	}
}

func (u ReminderUnit) word() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	default:
		return string(u)
	}
}

// Reminder is the decoded form of a reminder token: "at-time", "at:HH:MM",
// "<N><unit>" (before the due instant) or "+<N><unit>" (after it).
type Reminder struct {
	Kind  ReminderKind
	Clock Clock
	N     int
	Unit  ReminderUnit
	After bool
}

func ParseReminderToken(token string) (Reminder, error) {
	if token == ReminderAtTime {
		return Reminder{Kind: ReminderAtTaskKind}, nil
	}
	if rest, ok := strings.CutPrefix(token, "at:"); ok {
		c, err := ParseClock(rest)
		if err != nil {
			return Reminder{}, fmt.Errorf("%w: %q", ErrInvalidReminder, token)
		}
		return Reminder{Kind: ReminderAtClockKind, Clock: c}, nil
	}

	r := Reminder{Kind: ReminderOffsetKind}
	body, after := strings.CutPrefix(token, "+")
	r.After = after
	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++
	}
	if i == 0 {
		return Reminder{}, fmt.Errorf("%w: %q", ErrInvalidReminder, token)
	}
	n, err := strconv.Atoi(body[:i])
	if err != nil || n > MaxReminderAmount {
		return Reminder{}, fmt.Errorf("%w: %q", ErrInvalidReminder, token)
	}
	r.N = n
	r.Unit = ReminderUnit(body[i:])
	if !r.Unit.IsValid() {
		return Reminder{}, fmt.Errorf("%w: %q", ErrInvalidReminder, token)
	}
	return r, nil
}

// Token is the inverse of ParseReminderToken.
func (r Reminder) Token() string {
	switch r.Kind {
	case ReminderAtTaskKind:
		return ReminderAtTime
	case ReminderAtClockKind:
		return "at:" + r.Clock.String()
	}
	prefix := ""
	if r.After {
		prefix = "+"
	}
	return prefix + strconv.Itoa(r.N) + string(r.Unit)
}

func (r Reminder) Label() string {
	switch r.Kind {
	case ReminderAtTaskKind:
		return "At time of task"
	case ReminderAtClockKind:
		return "At " + r.Clock.Short()
	}
	unit := r.Unit.word()
	if r.N != 1 {
		unit += "s"
	}
	dir := "before"
	if r.After {
		dir = "after"
	}
	return fmt.Sprintf("%d %s %s", r.N, unit, dir)
}

// TriggerAt computes when the reminder fires for a task due at due.
func (r Reminder) TriggerAt(due time.Time) time.Time {
	switch r.Kind {
	case ReminderAtTaskKind:
		return due
	case ReminderAtClockKind:
		return r.Clock.On(due)
	}
	n := r.N
	if !r.After {
		n = -n
	}
	switch r.Unit {
	case UnitMonth:
		return due.AddDate(0, n, 0)
	case UnitWeek:
		return due.AddDate(0, 0, 7*n)
	case UnitDay:
		return due.AddDate(0, 0, n)
	case UnitHour:
		return due.Add(time.Duration(n) * time.Hour)
	case UnitMinute:
		return due.Add(time.Duration(n) * time.Minute)
	default:
		return due.Add(time.Duration(n) * time.Second)
	}
}

// ReminderLabel renders a token for display; unknown tokens are echoed.
func ReminderLabel(token string) string {
	r, err := ParseReminderToken(token)
	if err != nil {
		return token
	}
	return r.Label()
}
