package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/kario/internal/model"
)

func TestRepeat(t *testing.T) {
	tests := []struct {
		input string
		token string
		ok    bool
	}{
		{"daily", "daily", true},
		{"Every Day", "daily", true},
		{"weekly", "every-week", true},
		{"every week", "every-week", true},
		{"every weekday", "weekdays", true},
		{"mon-fri", "weekdays", true},
		{"monthly", "every-month", true},
		{"every other day", "every-other-day", true},
		{"every 2 days", "every-other-day", true},
		{"every 3 days", "every-3-days", true},
		{"every 2 weeks", "every-2-weeks", true},
		{"every tuesday", "every-tuesday", true},
		{"sunday mornings", "every-sunday", true},
		{"every 0 days", "", false},
		{"sometimes", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Repeat(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.token, got)
				assert.True(t, model.IsRepeatToken(got), "token %q should map onto a rule", got)
			}
		})
	}
}

func TestRepeatLabel(t *testing.T) {
	assert.Equal(t, "every 3 days", model.RepeatLabel("every-3-days"))
}
