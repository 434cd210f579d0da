package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dayLayout = "02/01/2006"
	isoLayout = "2006-01-02"
)

// FormatDay renders a calendar day in the stored DD/MM/YYYY form.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDay parses a stored day string in the local time zone.
func ParseDay(s string) (time.Time, bool) {
	return ParseDayIn(s, time.Local)
}

// ParseDayIn accepts D/M/YYYY (slash separated, day first) and falls back to
// ISO YYYY-MM-DD. The result is midnight in loc.
func ParseDayIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if parts := strings.Split(s, "/"); len(parts) == 3 {
		d, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		y, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, false
		}
		return makeDay(y, m, d, loc)
	}
	if t, err := time.ParseInLocation(isoLayout, s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// MakeDay builds midnight of y-m-d in loc, rejecting dates that do not
// exist on the calendar.
func MakeDay(y int, m time.Month, d int, loc *time.Location) (time.Time, bool) {
	return makeDay(y, int(m), d, loc)
}

func makeDay(y, m, d int, loc *time.Location) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// ParseClock parses the stored 24h HH:MM form.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(hour, minute)
}

// String returns the 24h HH:MM form used for storage.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Display returns the zero-padded 12h form, e.g. "03:00 PM".
func (c Clock) Display() string {
	h, suffix := c.twelve()
	return fmt.Sprintf("%02d:%02d %s", h, c.Minute, suffix)
}

// Short returns the 12h form without hour padding, e.g. "3:30 PM".
func (c Clock) Short() string {
	h, suffix := c.twelve()
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, suffix)
}

func (c Clock) twelve() (int, string) {
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return h, suffix
}

// On places the clock on the calendar day of d.
func (c Clock) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, c.Hour, c.Minute, 0, 0, d.Location())
}
