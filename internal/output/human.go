package output

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/taskview"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

func (f *HumanFormatter) FormatTask(t model.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s\n", ShortID(t.ID), t.Title)
	fmt.Fprintf(&sb, "  Status:   %s\n", status(t))
	fmt.Fprintf(&sb, "  Priority: %s\n", t.Priority)
	fmt.Fprintf(&sb, "  Created:  %s\n", t.CreationDate)
	if due := dueText(t); due != "" {
		fmt.Fprintf(&sb, "  Due:      %s\n", due)
	}
	if t.Reminder != "" {
		fmt.Fprintf(&sb, "  Remind:   %s\n", model.ReminderLabel(t.Reminder))
	}
	if t.Repeat != "" {
		fmt.Fprintf(&sb, "  Repeat:   %s\n", model.RepeatLabel(t.Repeat))
	}
	if len(t.Labels) > 0 {
		fmt.Fprintf(&sb, "  Labels:   %s\n", strings.Join(t.Labels, ", "))
	}
	for _, n := range model.SubtaskTree(t.Subtasks) {
		fmt.Fprintf(&sb, "  %s%s %s\n", strings.Repeat("  ", n.Depth), checkbox(n.Completed), n.Title)
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *HumanFormatter) FormatView(scope taskview.Scope, v taskview.View) string {
	var sb strings.Builder
	st := v.Stats
	fmt.Fprintf(&sb, "%s: %d  (total %d, pending %d, completed %d, drafts %d, deleted %d)\n",
		scope, st.For(scope), st.Total, st.Pending, st.Completed, st.Drafts, st.Deleted)
	if len(v.Rows) == 0 {
		sb.WriteString("No tasks found.\n")
		return sb.String()
	}
	if len(v.Groups) > 0 {
		for _, g := range v.Groups {
			fmt.Fprintf(&sb, "\n%s\n", g.Date)
			for _, t := range g.Tasks {
				sb.WriteString(taskLine(t))
			}
		}
		return sb.String()
	}
	for _, r := range v.Rows {
		sb.WriteString(taskLine(r.Task))
	}
	return sb.String()
}

func taskLine(t model.Task) string {
	extra := ""
	if due := dueText(t); due != "" {
		extra += " due " + due
	}
	if len(t.Labels) > 0 {
		extra += " " + strings.Join(t.Labels, " ")
	}
	if done, total := model.SubtaskProgress(t.Subtasks); total > 0 {
		extra += fmt.Sprintf(" (%d/%d)", done, total)
	}
	return fmt.Sprintf("%s [%s] %s  %s%s\n", checkbox(t.Completed), ShortID(t.ID), t.Title, t.Priority, extra)
}

func dueText(t model.Task) string {
	if t.DueDate == "" {
		return ""
	}
	if t.Time == "" {
		return t.DueDate
	}
	if c, err := model.ParseClock(t.Time); err == nil {
		return t.DueDate + " " + c.Display()
	}
	return t.DueDate
}

func status(t model.Task) string {
	switch {
	case t.IsDraft:
		return "draft"
	case t.Completed:
		return "completed"
	default:
		return "pending"
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// ShortID keeps the last eight characters; time-ordered ids share their
// leading ones.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
