package phrase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
)

var (
	clockMeridiem     = regexp.MustCompile(`^(\d{1,2})[:\s](\d{1,2})\s*(am|pm)$`)
	clockHourMeridiem = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	clock24           = regexp.MustCompile(`^(\d{1,2})[:\s](\d{1,2})$`)
	clockBareHour     = regexp.MustCompile(`^(\d{1,2})$`)
)

// Clock parses "3pm", "3:30 pm", "15:30", "3 30" or a bare hour. A bare
// hour is read as a 24h hour.
func Clock(input string) (model.Clock, bool) {
	return parseClock(input, true)
}

func parseClock(input string, allowBareHour bool) (model.Clock, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return model.Clock{}, false
	}

	var hourWord, minuteWord, meridiem string
	switch {
	case clockMeridiem.MatchString(s):
		m := clockMeridiem.FindStringSubmatch(s)
		hourWord, minuteWord, meridiem = m[1], m[2], m[3]
	case clockHourMeridiem.MatchString(s):
		m := clockHourMeridiem.FindStringSubmatch(s)
		hourWord, meridiem = m[1], m[2]
	case clock24.MatchString(s):
		m := clock24.FindStringSubmatch(s)
		hourWord, minuteWord = m[1], m[2]
	case allowBareHour && clockBareHour.MatchString(s):
		hourWord = s
	default:
		return model.Clock{}, false
	}

	hour, _ := strconv.Atoi(hourWord)
	minute := 0
	if minuteWord != "" {
		minute, _ = strconv.Atoi(minuteWord)
	}
	switch meridiem {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	c, err := model.NewClock(hour, minute)
	if err != nil {
		return model.Clock{}, false
	}
	return c, true
}
