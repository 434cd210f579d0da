package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Tabs         string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	// Width is the terminal width; zero keeps the default pane sizes.
	Width int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTab   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
)

const (
	defaultListWidth   = 62
	defaultDetailWidth = 50
	minDetailWidth     = 30
	// border and padding of one panel
	panelChrome = 4
)

// PaneWidths splits a terminal width between the task list and the detail
// pane, list first. Narrow terminals keep the defaults and scroll.
func PaneWidths(total int) (list, detail int) {
	if total < defaultListWidth+minDetailWidth+2*panelChrome {
		return defaultListWidth, defaultDetailWidth
	}
	usable := total - 2*panelChrome
	list = usable * 55 / 100
	return list, usable - list
}

func RenderApp(data AppData) string {
	lw, rw := PaneWidths(data.Width)
	left := panelStyle.Width(lw).Render(data.LeftPane)
	right := panelStyle.Width(rw).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if data.Tabs != "" {
		lines = append(lines, data.Tabs)
	}
	lines = append(lines, row, status)
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a task description; on renderer failure the raw
// text is returned.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
