package phrase

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	everyNDays  = regexp.MustCompile(`every (\d+) day`)
	everyNWeeks = regexp.MustCompile(`every (\d+) week`)
	// "every weekday" must not read as "every week".
	weeklyPattern = regexp.MustCompile(`\bweekly\b|\bevery week\b`)
)

var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Repeat maps phrases like "every day", "mon-fri" or "every 3 weeks" onto a
// repeat token. Matching is by substring, except that "weekly" and "every
// week" need word boundaries, and the first rule that matches wins, so
// "every 2 days" is every-other-day.
func Repeat(input string) (string, bool) {
	s := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if s == "" {
		return "", false
	}
	switch {
	case strings.Contains(s, "daily") || strings.Contains(s, "every day"):
		return "daily", true
	case weeklyPattern.MatchString(s):
		return "every-week", true
	case strings.Contains(s, "monthly") || strings.Contains(s, "every month"):
		return "every-month", true
	case strings.Contains(s, "every other day") || strings.Contains(s, "every 2 days"):
		return "every-other-day", true
	case strings.Contains(s, "weekday") || strings.Contains(s, "mon-fri"):
		return "weekdays", true
	}
	for _, day := range weekdayOrder {
		if strings.Contains(s, day) {
			return "every-" + day, true
		}
	}
	if n, ok := interval(everyNDays, s); ok {
		return "every-" + n + "-days", true
	}
	if n, ok := interval(everyNWeeks, s); ok {
		return "every-" + n + "-weeks", true
	}
	return "", false
}

func interval(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}
