package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type RecurrenceType string

const (
	RecurrenceWeekdays    RecurrenceType = "weekdays"
	RecurrenceEveryNDays  RecurrenceType = "every_n_days"
	RecurrenceEveryNWeeks RecurrenceType = "every_n_weeks"
	RecurrenceMonthly     RecurrenceType = "monthly"
)

var (
	ErrInvalidRecurrenceType = errors.New("model: invalid recurrence type")
	ErrInvalidInterval       = errors.New("model: invalid recurrence interval")
)

// Repeat tokens offered as presets, in display order.
var PresetRepeats = []string{
	"daily",
	"weekdays",
	"every-week",
	"every-month",
	"every-monday",
	"every-tuesday",
	"every-wednesday",
	"every-thursday",
	"every-friday",
	"every-saturday",
	"every-sunday",
	"every-other-day",
}

var (
	everyNDaysToken  = regexp.MustCompile(`^every-(\d+)-days$`)
	everyNWeeksToken = regexp.MustCompile(`^every-(\d+)-weeks$`)
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekdayByName resolves a lower-case English weekday name.
func WeekdayByName(name string) (time.Weekday, bool) {
	d, ok := weekdayNames[name]
	return d, ok
}

// RepeatLabel renders a repeat token for display.
func RepeatLabel(token string) string {
	return strings.ReplaceAll(token, "-", " ")
}

func IsRepeatToken(token string) bool {
	_, err := RuleFromRepeat(token, time.Unix(0, 0))
	return err == nil
}

// RecurrenceRule describes when a repeating task comes back. Anchor is the
// first occurrence; its clock is carried to every later occurrence.
type RecurrenceRule struct {
	Type     RecurrenceType
	Interval int
	Anchor   time.Time
	Weekdays []time.Weekday
}

// RuleFromRepeat maps a stored repeat token onto a rule anchored at anchor.
func RuleFromRepeat(token string, anchor time.Time) (RecurrenceRule, error) {
	r := RecurrenceRule{Anchor: anchor, Interval: 1}
	switch token {
	case "daily":
		r.Type = RecurrenceEveryNDays
		return r, nil
	case "every-other-day":
		r.Type = RecurrenceEveryNDays
		r.Interval = 2
		return r, nil
	case "every-week":
		r.Type = RecurrenceEveryNWeeks
		return r, nil
	case "every-month":
		r.Type = RecurrenceMonthly
		return r, nil
	case "weekdays":
		r.Type = RecurrenceWeekdays
		r.Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
		return r, nil
	}
	if day, ok := strings.CutPrefix(token, "every-"); ok {
		if wd, ok := weekdayNames[day]; ok {
			r.Type = RecurrenceWeekdays
			r.Weekdays = []time.Weekday{wd}
			return r, nil
		}
	}
	if m := everyNDaysToken.FindStringSubmatch(token); m != nil {
		r.Type = RecurrenceEveryNDays
		r.Interval, _ = strconv.Atoi(m[1])
		return r, r.Validate()
	}
	if m := everyNWeeksToken.FindStringSubmatch(token); m != nil {
		r.Type = RecurrenceEveryNWeeks
		r.Interval, _ = strconv.Atoi(m[1])
		return r, r.Validate()
	}
	return RecurrenceRule{}, fmt.Errorf("%w: %q", ErrInvalidRepeat, token)
}

func (r RecurrenceRule) Validate() error {
	switch r.Type {
	case RecurrenceWeekdays, RecurrenceEveryNDays, RecurrenceEveryNWeeks, RecurrenceMonthly:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceType, r.Type)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Interval)
	}
	if r.Type == RecurrenceWeekdays && len(r.Weekdays) == 0 {
		return errors.New("model: weekday recurrence needs at least one day")
	}
	return nil
}

// NextAfter returns the first occurrence strictly after from. Occurrences
// never precede the anchor.
func (r RecurrenceRule) NextAfter(from time.Time) (time.Time, error) {
	if err := r.Validate(); err != nil {
		return time.Time{}, err
	}
	from = from.In(r.Anchor.Location())
	if from.Before(r.Anchor) {
		return r.Anchor, nil
	}
	switch r.Type {
	case RecurrenceWeekdays:
		return r.nextWeekday(from), nil
	case RecurrenceEveryNDays:
		return r.nextByDays(from, r.Interval), nil
	case RecurrenceEveryNWeeks:
		return r.nextByDays(from, 7*r.Interval), nil
	default:
		return r.nextMonthly(from), nil
	}
}

// Preview lists the next count occurrences after from.
func (r RecurrenceRule) Preview(from time.Time, count int) ([]time.Time, error) {
	out := make([]time.Time, 0, max(count, 0))
	cursor := from
	for range count {
		next, err := r.NextAfter(cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}

func (r RecurrenceRule) nextWeekday(from time.Time) time.Time {
	allowed := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, w := range r.Weekdays {
		allowed[w] = true
	}
	probe := r.atAnchorClock(from)
	if !probe.After(from) {
		probe = r.atAnchorClock(from.AddDate(0, 0, 1))
	}
	for !allowed[probe.Weekday()] {
		probe = r.atAnchorClock(probe.AddDate(0, 0, 1))
	}
	return probe
}

// nextByDays steps in calendar days so DST shifts keep the anchor clock.
func (r RecurrenceRule) nextByDays(from time.Time, step int) time.Time {
	anchorDay := StartOfDay(r.Anchor)
	elapsed := daysBetween(anchorDay, StartOfDay(from))
	k := elapsed / step
	next := r.atAnchorClock(anchorDay.AddDate(0, 0, k*step))
	for !next.After(from) {
		next = r.atAnchorClock(next.AddDate(0, 0, step))
	}
	return next
}

func (r RecurrenceRule) nextMonthly(from time.Time) time.Time {
	y, m, _ := from.Date()
	candidate := r.monthDay(y, m)
	for !candidate.After(from) {
		m++
		if m > time.December {
			m = time.January
			y++
		}
		candidate = r.monthDay(y, m)
	}
	return candidate
}

// monthDay clamps the anchor's day of month to the length of y-m.
func (r RecurrenceRule) monthDay(y int, m time.Month) time.Time {
	loc := r.Anchor.Location()
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
	d := min(r.Anchor.Day(), last)
	return time.Date(y, m, d, r.Anchor.Hour(), r.Anchor.Minute(), r.Anchor.Second(), 0, loc)
}

func (r RecurrenceRule) atAnchorClock(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, r.Anchor.Hour(), r.Anchor.Minute(), r.Anchor.Second(), 0, r.Anchor.Location())
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
