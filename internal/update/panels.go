package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/output"
	"github.com/sandeepkv93/kario/internal/taskview"
	"github.com/sandeepkv93/kario/internal/views"
)

const repeatPreviewCount = 3

var emptyText = map[taskview.Scope]string{
	taskview.ScopeTotal:     "no tasks yet, press / and type: add <title>",
	taskview.ScopePending:   "nothing pending",
	taskview.ScopeCompleted: "nothing completed yet",
	taskview.ScopeDrafts:    "no drafts",
	taskview.ScopeDeleted:   "trash is empty",
}

func (m Model) renderTabs() string {
	tabs := make([]views.TabData, 0, len(taskview.Scopes))
	for _, s := range taskview.Scopes {
		tabs = append(tabs, views.TabData{Label: string(s), Count: m.view.Stats.For(s), Active: s == m.Scope})
	}
	return views.RenderTabs(tabs)
}

func (m Model) renderList() string {
	var groups []views.GroupData
	if len(m.view.Groups) > 0 {
		byID := make(map[string]taskview.Row, len(m.view.Rows))
		for _, r := range m.view.Rows {
			byID[r.ID] = r
		}
		for _, g := range m.view.Groups {
			gd := views.GroupData{Date: g.Date}
			for _, t := range g.Tasks {
				gd.Rows = append(gd.Rows, m.rowData(byID[t.ID]))
			}
			groups = append(groups, gd)
		}
	} else {
		gd := views.GroupData{}
		for _, r := range m.view.Rows {
			gd.Rows = append(gd.Rows, m.rowData(r))
		}
		groups = append(groups, gd)
	}
	return views.RenderListPanel(views.ListPanelData{
		Title:      string(m.Scope),
		Filters:    m.filterSummary(),
		Groups:     groups,
		SelectedID: m.SelectedTaskID,
		Empty:      emptyText[m.Scope],
	})
}

func (m Model) rowData(r taskview.Row) views.RowData {
	rd := views.RowData{
		ID:            r.ID,
		Title:         r.Title,
		Completed:     r.Completed,
		Draft:         r.IsDraft,
		Priority:      r.Priority,
		PriorityColor: m.svc.PriorityColor(r.Priority),
		Due:           dueText(r.Task),
		Labels:        m.labelData(r.Labels),
	}
	if done, total := model.SubtaskProgress(r.Subtasks); total > 0 {
		rd.Progress = fmt.Sprintf("%d/%d", done, total)
	}
	if !r.DeletedAt.IsZero() {
		rd.Deleted = r.DeletedAt.In(m.svc.Now().Location()).Format("02/01 15:04")
	}
	return rd
}

func (m Model) labelData(names []string) []views.LabelData {
	out := make([]views.LabelData, 0, len(names))
	for _, n := range names {
		out = append(out, views.LabelData{Name: n, Color: m.svc.LabelColor(n)})
	}
	return out
}

func (m Model) filterSummary() string {
	var parts []string
	f, v := m.Settings.Filter, m.Settings.Values
	if f.Date && v.Date != "" {
		parts = append(parts, "date: "+string(v.Date))
	}
	if f.Priority && len(v.Priorities) > 0 {
		parts = append(parts, "priority: "+strings.Join(v.Priorities, ", "))
	}
	if f.Label && len(v.Labels) > 0 {
		parts = append(parts, "label: "+strings.Join(v.Labels, ", "))
	}
	if m.Settings.Sort.CompletionStatus {
		parts = append(parts, "pending first")
	}
	if len(parts) == 0 {
		return ""
	}
	return "filters: " + strings.Join(parts, " | ")
}

func (m *Model) syncDetail() {
	row, ok := m.selected()
	if !ok {
		m.detail.SetContent(views.RenderDetailPanel(views.DetailPanelData{}))
		return
	}
	t := row.Task
	data := views.DetailPanelData{
		Title:         fmt.Sprintf("%s  [%s]", t.Title, output.ShortID(t.ID)),
		Status:        taskStatus(t),
		Priority:      t.Priority,
		PriorityColor: m.svc.PriorityColor(t.Priority),
		Created:       t.CreationDate,
		Due:           dueText(t),
		Labels:        m.labelData(t.Labels),
		Description:   views.RenderMarkdown(t.Description, m.detail.Width-2),
	}
	if t.Reminder != "" {
		data.Reminder = model.ReminderLabel(t.Reminder)
	}
	if t.Repeat != "" {
		data.Repeat = model.RepeatLabel(t.Repeat)
		data.RepeatPreview = m.repeatPreview(t)
	}
	for _, n := range model.SubtaskTree(t.Subtasks) {
		data.Subtasks = append(data.Subtasks, views.SubtaskData{Title: n.Title, Completed: n.Completed, Depth: n.Depth})
	}
	m.detail.SetContent(views.RenderDetailPanel(data))
	m.detail.GotoTop()
}

// repeatPreview lists the next occurrences after now, anchored at the due
// instant (or today when the task has no due date).
func (m Model) repeatPreview(t model.Task) []string {
	now := m.svc.Now()
	anchor, ok := t.Due(now.Location())
	if !ok {
		anchor = model.StartOfDay(now)
	}
	rule, err := model.RuleFromRepeat(t.Repeat, anchor)
	if err != nil {
		return nil
	}
	next, err := rule.Preview(now, repeatPreviewCount)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(next))
	for _, at := range next {
		out = append(out, at.Format("Mon 02 Jan 2006"))
	}
	return out
}

func (m Model) renderDetail() string {
	return m.detail.View()
}

func taskStatus(t model.Task) string {
	switch {
	case t.IsDraft:
		return "draft"
	case t.Completed:
		return "completed"
	default:
		return "pending"
	}
}

func dueText(t model.Task) string {
	if t.DueDate == "" {
		return ""
	}
	if t.Time == "" {
		return t.DueDate
	}
	if c, err := model.ParseClock(t.Time); err == nil {
		return t.DueDate + " " + c.Short()
	}
	return t.DueDate
}
