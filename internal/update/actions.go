package update

import (
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/tasks"
	"github.com/sandeepkv93/kario/internal/taskview"
)

var errNoSelection = errors.New("no task selected")

// refresh re-derives the visible list and keeps the selection on the same
// task when it is still visible.
func (m *Model) refresh() {
	m.view = m.svc.View(m.Settings.Query(m.Scope))
	if i := m.rowIndex(m.SelectedTaskID); i >= 0 {
		m.Cursor = i
	}
	m.Cursor = max(0, min(m.Cursor, len(m.view.Rows)-1))
	m.SelectedTaskID = ""
	if len(m.view.Rows) > 0 {
		m.SelectedTaskID = m.view.Rows[m.Cursor].ID
	}
	m.syncDetail()
}

func (m Model) rowIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.view.Rows, func(r taskview.Row) bool { return r.ID == id })
}

func (m *Model) moveCursor(delta int) {
	if len(m.view.Rows) == 0 {
		return
	}
	m.Cursor = max(0, min(m.Cursor+delta, len(m.view.Rows)-1))
	m.SelectedTaskID = m.view.Rows[m.Cursor].ID
	m.syncDetail()
}

func (m Model) selected() (taskview.Row, bool) {
	i := m.rowIndex(m.SelectedTaskID)
	if i < 0 {
		return taskview.Row{}, false
	}
	return m.view.Rows[i], true
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok || m.Scope == taskview.ScopeDeleted {
		return m, nil
	}
	t, err := m.svc.Toggle(m.ctx, row.ID)
	if err != nil {
		if errors.Is(err, tasks.ErrDraftNotCompletable) {
			m.Status = StatusBar{Text: "drafts need a due date or description before they can be completed", IsError: true}
			return m, nil
		}
		m.fail(err)
		return m, nil
	}
	if t.Completed {
		m.Status = StatusBar{Text: "completed: " + t.Title}
	} else {
		m.Status = StatusBar{Text: "reopened: " + t.Title}
	}
	m.refresh()
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok || m.Scope == taskview.ScopeDeleted {
		return m, nil
	}
	if err := m.svc.Delete(m.ctx, row.ID); err != nil {
		m.fail(err)
		return m, nil
	}
	m.Status = StatusBar{Text: "deleted: " + row.Title + " (press 5 then r to restore)"}
	m.refresh()
	return m, nil
}

func (m Model) restoreSelected() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok || m.Scope != taskview.ScopeDeleted {
		return m, nil
	}
	t, err := m.svc.Restore(m.ctx, row.ID)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.Status = StatusBar{Text: "restored: " + t.Title}
	m.refresh()
	return m, nil
}

// moveSelected drops the selected task onto its visible neighbour.
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	if m.Scope == taskview.ScopeDeleted {
		return m, nil
	}
	i := m.rowIndex(m.SelectedTaskID)
	j := i + delta
	if i < 0 || j < 0 || j >= len(m.view.Rows) {
		return m, nil
	}
	moved, err := m.svc.Move(m.ctx, m.view.Rows[i].ID, m.view.Rows[j].ID)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	if moved {
		m.refresh()
	}
	return m, nil
}

// cycleDateFilter walks off -> each preset -> off.
func (m *Model) cycleDateFilter() {
	presets := taskview.DatePresets
	if !m.Settings.Filter.Date {
		m.Settings.Filter.Date = true
		m.Settings.Values.Date = presets[0]
	} else if i := slices.Index(presets, m.Settings.Values.Date); i >= 0 && i < len(presets)-1 {
		m.Settings.Values.Date = presets[i+1]
	} else {
		m.Settings.Filter.Date = false
		m.Settings.Values.Date = ""
	}
	label := "date filter off"
	if m.Settings.Filter.Date {
		label = "date filter: " + string(m.Settings.Values.Date)
	}
	m.saveSettings(label)
}

func (m *Model) saveSettings(status string) {
	if err := m.svc.SaveViewSettings(m.ctx, m.Settings); err != nil {
		m.fail(fmt.Errorf("save view settings: %w", err))
	} else {
		m.Status = StatusBar{Text: status}
	}
	m.refresh()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// selectedLive returns the selected task for editing commands; deleted
// tasks cannot be edited.
func (m Model) selectedLive() (model.Task, error) {
	row, ok := m.selected()
	if !ok || m.Scope == taskview.ScopeDeleted {
		return model.Task{}, errNoSelection
	}
	return row.Task, nil
}
