// Package phrase turns short free-text phrases typed by the user into the
// stored date, time, reminder and repeat values. Every parser is pure and
// reports failure with a false second result.
package phrase

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/kario/internal/model"
)

var (
	monthDayPattern = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?$`)
	dayMonthPattern = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+)$`)
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Date parses "<month> <day>" or "<day> <month>" (with an optional ordinal
// suffix) and the quick phrases today, tomorrow, next week, weekend and
// weekday names. Month/day phrases land in now's year, rolling to the next
// year when the resulting midnight is before now.
func Date(input string, now time.Time) (time.Time, bool) {
	s := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if s == "" {
		return time.Time{}, false
	}
	if d, ok := quickDate(s, now); ok {
		return d, true
	}

	var monthWord, dayWord string
	if m := monthDayPattern.FindStringSubmatch(s); m != nil {
		monthWord, dayWord = m[1], m[2]
	} else if m := dayMonthPattern.FindStringSubmatch(s); m != nil {
		dayWord, monthWord = m[1], m[2]
	} else {
		return time.Time{}, false
	}
	month, ok := months[monthWord]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayWord)
	if err != nil {
		return time.Time{}, false
	}

	d, ok := model.MakeDay(now.Year(), month, day, now.Location())
	if !ok {
		return time.Time{}, false
	}
	if d.Before(now) {
		return model.MakeDay(now.Year()+1, month, day, now.Location())
	}
	return d, true
}

func quickDate(s string, now time.Time) (time.Time, bool) {
	today := model.StartOfDay(now)
	switch s {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "next week":
		return today.AddDate(0, 0, 7), true
	case "weekend", "this weekend":
		return nextWeekday(today, time.Saturday), true
	}
	name := strings.TrimPrefix(s, "next ")
	if wd, ok := model.WeekdayByName(name); ok {
		return nextWeekday(today, wd), true
	}
	return time.Time{}, false
}

// nextWeekday returns the first wd strictly after today.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(today.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, delta)
}
