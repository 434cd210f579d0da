package phrase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
)

type unitPattern struct {
	re   *regexp.Regexp
	unit model.ReminderUnit
}

// Checked in order; "min" must come after "minute" and "month" is kept
// apart from minutes.
var reminderUnits = []unitPattern{
	{regexp.MustCompile(`(\d+)\s*minute`), model.UnitMinute},
	{regexp.MustCompile(`(\d+)\s*min`), model.UnitMinute},
	{regexp.MustCompile(`(\d+)\s*hour`), model.UnitHour},
	{regexp.MustCompile(`(\d+)\s*hr`), model.UnitHour},
	{regexp.MustCompile(`(\d+)\s*day`), model.UnitDay},
	{regexp.MustCompile(`(\d+)\s*week`), model.UnitWeek},
	{regexp.MustCompile(`(\d+)\s*month`), model.UnitMonth},
	{regexp.MustCompile(`(\d+)\s*second`), model.UnitSecond},
	{regexp.MustCompile(`(\d+)\s*sec`), model.UnitSecond},
}

// Reminder turns "10 minutes before", "2 days after" or a clock phrase
// such as "9am" into a reminder token. Clock phrases win over offsets; a
// bare number is not a clock here.
func Reminder(input string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", false
	}
	if s == model.ReminderAtTime || s == "at time" || s == "at time of task" {
		return model.ReminderAtTime, true
	}
	if c, ok := parseClock(strings.TrimSpace(strings.TrimPrefix(s, "at ")), false); ok {
		return model.Reminder{Kind: model.ReminderAtClockKind, Clock: c}.Token(), true
	}

	after := strings.Contains(s, "after")
	for _, p := range reminderUnits {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > model.MaxReminderAmount {
			return "", false
		}
		return model.Reminder{N: n, Unit: p.unit, After: after}.Token(), true
	}
	return "", false
}
