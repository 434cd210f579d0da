package update

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/kario/internal/commands"
	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/tasks"
	"github.com/sandeepkv93/kario/internal/taskview"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
		return m, nil
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)

	cmd, err := commands.Parse(raw, m.svc.Now())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}
	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.fail(err)
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.closePalette()
	m.refresh()
	return m
}

// paletteHandlers binds the palette verbs to the service. The handlers
// close over m so view changes land on the returned model.
func (m *Model) paletteHandlers() commands.Handlers {
	edit := func(p tasks.Patch, done string) (commands.Result, error) {
		t, err := m.selectedLive()
		if err != nil {
			return commands.Result{}, err
		}
		updated, err := m.svc.Update(m.ctx, t.ID, p)
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("%s: %s", done, updated.Title)}, nil
	}

	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, err := m.svc.Create(m.ctx, tasks.Draft{Title: a.Title}, a.Draft)
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedTaskID = t.ID
			if t.IsDraft {
				if m.Scope != taskview.ScopeDrafts {
					m.Scope = taskview.ScopeDrafts
				}
				return commands.Result{Message: "saved as draft: " + t.Title}, nil
			}
			return commands.Result{Message: "added: " + t.Title}, nil
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			day := a.Day
			return edit(tasks.Patch{DueDate: &day}, "due "+orCleared(day))
		},
		At: func(a commands.AtArgs) (commands.Result, error) {
			at := ""
			if !a.Clear {
				at = a.Clock.String()
			}
			return edit(tasks.Patch{Time: &at}, "time "+orCleared(at))
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			t, err := m.selectedLive()
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.svc.SetReminder(m.ctx, t.ID, a.Token); err != nil {
				return commands.Result{}, err
			}
			if a.Clear {
				return commands.Result{Message: "reminder cleared"}, nil
			}
			return commands.Result{Message: "reminder: " + model.ReminderLabel(a.Token)}, nil
		},
		Repeat: func(a commands.RepeatArgs) (commands.Result, error) {
			token := a.Token
			return edit(tasks.Patch{Repeat: &token}, "repeat "+orCleared(model.RepeatLabel(token)))
		},
		Priority: func(a commands.PriorityArgs) (commands.Result, error) {
			if !model.IsPresetPriority(a.Name) {
				if err := m.svc.AddPriority(m.ctx, model.CustomPriority{Name: a.Name}); err != nil {
					return commands.Result{}, err
				}
			}
			name := a.Name
			return edit(tasks.Patch{Priority: &name}, "priority "+name)
		},
		Label: func(a commands.LabelArgs) (commands.Result, error) {
			t, err := m.selectedLive()
			if err != nil {
				return commands.Result{}, err
			}
			if t.HasLabel(a.Name) {
				labels := slices.DeleteFunc(slices.Clone(t.Labels), func(l string) bool { return strings.EqualFold(l, a.Name) })
				return edit(tasks.Patch{Labels: &labels}, "removed label "+a.Name)
			}
			l, _, err := m.svc.AddLabel(m.ctx, model.CustomLabel{Name: a.Name})
			if err != nil {
				return commands.Result{}, err
			}
			labels := append(slices.Clone(t.Labels), l.Name)
			return edit(tasks.Patch{Labels: &labels}, "added label "+l.Name)
		},
		Desc: func(a commands.DescArgs) (commands.Result, error) {
			text := a.Text
			return edit(tasks.Patch{Description: &text}, "description updated")
		},
		Sub: func(a commands.SubArgs) (commands.Result, error) {
			t, err := m.selectedLive()
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.svc.AddSubtask(m.ctx, t.ID, "", a.Title); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "subtask added: " + a.Title}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.applyFilter(a)
			if err := m.svc.SaveViewSettings(m.ctx, m.Settings); err != nil {
				return commands.Result{}, err
			}
			if a.Off {
				return commands.Result{Message: fmt.Sprintf("%s filter off", a.Kind)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%s filter on", a.Kind)}, nil
		},
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			switch a.Key {
			case commands.SortStatus:
				m.Settings.Sort.CompletionStatus = a.On
			case commands.SortCreated:
				m.Settings.Sort.CreationDate = a.On
			}
			if err := m.svc.SaveViewSettings(m.ctx, m.Settings); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("sort %s %s", a.Key, onOff(a.On))}, nil
		},
		View: func(a commands.ViewArgs) (commands.Result, error) {
			m.Scope = a.Scope
			m.Cursor = 0
			return commands.Result{Message: "view: " + string(a.Scope)}, nil
		},
		Purge: func() (commands.Result, error) {
			n, err := m.svc.Purge(m.ctx)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("purged %d deleted task(s)", n)}, nil
		},
	}
}

func (m *Model) applyFilter(a commands.FilterArgs) {
	switch a.Kind {
	case commands.FilterDate:
		m.Settings.Filter.Date = !a.Off
		m.Settings.Values.Date = a.Date
	case commands.FilterPriority:
		m.Settings.Filter.Priority = !a.Off
		if !a.Off {
			m.Settings.Values.Priorities = a.Values
		}
	case commands.FilterLabel:
		m.Settings.Filter.Label = !a.Off
		if !a.Off {
			m.Settings.Values.Labels = a.Values
		}
	}
}

func orCleared(v string) string {
	if v == "" {
		return "cleared"
	}
	return v
}
