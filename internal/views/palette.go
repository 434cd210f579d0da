package views

import "github.com/charmbracelet/lipgloss"

// Named colors used by priorities and labels, mapped to 256-color codes.
var namedColors = map[string]string{
	"red":     "196",
	"orange":  "208",
	"yellow":  "220",
	"green":   "40",
	"blue":    "33",
	"purple":  "129",
	"pink":    "205",
	"cyan":    "51",
	"emerald": "36",
	"amber":   "214",
	"rose":    "204",
	"teal":    "30",
	"gray":    "245",
}

// Color resolves a color name; unknown names are passed to lipgloss as is,
// so hex values and ANSI codes work too.
func Color(name string) lipgloss.Color {
	if code, ok := namedColors[name]; ok {
		return lipgloss.Color(code)
	}
	if name == "" {
		return lipgloss.Color(namedColors["gray"])
	}
	return lipgloss.Color(name)
}

func Badge(text, color string) string {
	return lipgloss.NewStyle().Foreground(Color(color)).Render(text)
}
