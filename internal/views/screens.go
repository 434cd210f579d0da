package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TabData struct {
	Label  string
	Count  int
	Active bool
}

func RenderTabs(tabs []TabData) string {
	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		text := fmt.Sprintf("%d %s (%d)", i+1, t.Label, t.Count)
		if t.Active {
			parts = append(parts, activeTab.Render(text))
		} else {
			parts = append(parts, mutedStyle.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

type LabelData struct {
	Name  string
	Color string
}

// RowData is one line of the task list.
type RowData struct {
	ID            string
	Title         string
	Completed     bool
	Draft         bool
	Priority      string
	PriorityColor string
	Due           string
	Labels        []LabelData
	Progress      string
	Deleted       string
}

type GroupData struct {
	Date string
	Rows []RowData
}

type ListPanelData struct {
	Title      string
	Filters    string
	Groups     []GroupData
	SelectedID string
	Empty      string
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	if data.Filters != "" {
		b.WriteString(mutedStyle.Render(data.Filters) + "\n")
	}
	total := 0
	for _, g := range data.Groups {
		total += len(g.Rows)
	}
	if total == 0 {
		b.WriteString("\n" + mutedStyle.Render(data.Empty))
		return b.String()
	}
	for _, g := range data.Groups {
		if g.Date != "" {
			b.WriteString("\n" + headerStyle.Render(g.Date) + "\n")
		}
		for _, r := range g.Rows {
			b.WriteString(renderRow(r, r.ID == data.SelectedID) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRow(r RowData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	box := "[ ]"
	switch {
	case r.Completed:
		box = "[x]"
	case r.Draft:
		box = "[~]"
	}
	title := r.Title
	if r.Completed {
		title = lipgloss.NewStyle().Strikethrough(true).Render(title)
	}
	parts := []string{cursor, box, title, Badge("●", r.PriorityColor)}
	if r.Due != "" {
		parts = append(parts, mutedStyle.Render(r.Due))
	}
	for _, l := range r.Labels {
		parts = append(parts, Badge(l.Name, l.Color))
	}
	if r.Progress != "" {
		parts = append(parts, mutedStyle.Render(r.Progress))
	}
	if r.Deleted != "" {
		parts = append(parts, mutedStyle.Render("deleted "+r.Deleted))
	}
	return strings.Join(parts, " ")
}

type SubtaskData struct {
	Title     string
	Completed bool
	Depth     int
}

type DetailPanelData struct {
	Title         string
	Status        string
	Priority      string
	PriorityColor string
	Created       string
	Due           string
	Reminder      string
	Repeat        string
	RepeatPreview []string
	Labels        []LabelData
	Subtasks      []SubtaskData
	Description   string
}

func RenderDetailPanel(data DetailPanelData) string {
	if data.Title == "" {
		return mutedStyle.Render("no task selected")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Title) + "\n")
	fmt.Fprintf(&b, "status:   %s\n", data.Status)
	fmt.Fprintf(&b, "priority: %s\n", Badge(data.Priority, data.PriorityColor))
	fmt.Fprintf(&b, "created:  %s\n", data.Created)
	if data.Due != "" {
		fmt.Fprintf(&b, "due:      %s\n", data.Due)
	}
	if data.Reminder != "" {
		fmt.Fprintf(&b, "remind:   %s\n", data.Reminder)
	}
	if data.Repeat != "" {
		fmt.Fprintf(&b, "repeat:   %s\n", data.Repeat)
		for _, p := range data.RepeatPreview {
			fmt.Fprintf(&b, "          %s\n", mutedStyle.Render(p))
		}
	}
	if len(data.Labels) > 0 {
		names := make([]string, 0, len(data.Labels))
		for _, l := range data.Labels {
			names = append(names, Badge(l.Name, l.Color))
		}
		fmt.Fprintf(&b, "labels:   %s\n", strings.Join(names, " "))
	}
	if len(data.Subtasks) > 0 {
		b.WriteString("\nsubtasks:\n")
		for _, s := range data.Subtasks {
			box := "[ ]"
			if s.Completed {
				box = "[x]"
			}
			fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat("  ", s.Depth), box, s.Title)
		}
	}
	if data.Description != "" {
		b.WriteString("\n" + data.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Commands []string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	for _, line := range data.Bindings {
		b.WriteString(line + "\n")
	}
	if len(data.Commands) > 0 {
		b.WriteString("\ncommands:\n")
		for _, c := range data.Commands {
			b.WriteString("  /" + c + "\n")
		}
	}
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return input
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(level), body)
}
