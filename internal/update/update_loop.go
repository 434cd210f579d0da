package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/kario/internal/scheduler"
	"github.com/sandeepkv93/kario/internal/taskview"
	"github.com/sandeepkv93/kario/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForReminderCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		m.width = typed.Width
		_, detail := views.PaneWidths(typed.Width)
		m.detail.Width = detail
		m.syncDetail()
		return m, nil
	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.busy, cmd = m.busy.Update(typed)
			return m, cmd
		}
		return m, nil
	case SwitchScopeMsg:
		if typed.Scope.IsValid() {
			m.Scope = typed.Scope
			m.Cursor = 0
			m.refresh()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TasksChangedMsg:
		m.refresh()
		return m, nil
	case ReminderDueMsg:
		cmd := m.onReminder(typed.Event)
		if m.Scheduler != nil {
			return m, tea.Batch(cmd, waitForReminderCmd(m.Scheduler.C()))
		}
		return m, cmd
	case desktopSentMsg:
		if m.pending > 0 {
			m.pending--
		}
		if typed.Err != nil {
			m.log.Warn("desktop notification failed", "err", typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if scope, ok := scopeForKey(msg.String()); ok {
		m.Scope = scope
		m.Cursor = 0
		m.refresh()
		return m, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Palette):
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.Keys.Toggle):
		return m.toggleSelected()
	case key.Matches(msg, m.Keys.Delete):
		return m.deleteSelected()
	case key.Matches(msg, m.Keys.Restore):
		return m.restoreSelected()
	case key.Matches(msg, m.Keys.MoveUp):
		return m.moveSelected(-1)
	case key.Matches(msg, m.Keys.MoveDown):
		return m.moveSelected(1)
	case key.Matches(msg, m.Keys.DateFilter):
		m.cycleDateFilter()
		return m, nil
	case key.Matches(msg, m.Keys.SortStatus):
		m.Settings.Sort.CompletionStatus = !m.Settings.Sort.CompletionStatus
		m.saveSettings(fmt.Sprintf("status sort %s", onOff(m.Settings.Sort.CompletionStatus)))
		return m, nil
	case key.Matches(msg, m.Keys.SortCreated):
		m.Settings.Sort.CreationDate = !m.Settings.Sort.CreationDate
		m.saveSettings(fmt.Sprintf("created grouping %s", onOff(m.Settings.Sort.CreationDate)))
		return m, nil
	}
	return m, nil
}

func scopeForKey(k string) (taskview.Scope, bool) {
	switch k {
	case "1", "2", "3", "4", "5":
		return taskview.Scopes[int(k[0]-'1')], true
	default:
		return "", false
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	right := m.renderDetail()
	if m.Palette.Active {
		right = views.RenderCommandPalette(true, m.commandInput.View()) + "\n\n" + right
	}
	if m.HelpVisible {
		right = m.renderHelpView()
	}

	var notes []string
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notes = append(notes, fmt.Sprintf("last reminder: %s (%s) @ %s", last.Title, last.Label, last.TriggerAt.Format("15:04")))
	}
	if n := m.lastNotification(); n != "" {
		notes = append(notes, n)
	}
	if m.pending > 0 {
		notes = append(notes, m.busy.View()+" sending desktop notification")
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("kario | %s | %s", m.Scope, m.svc.Now().Format("Mon 02 Jan 2006")),
		Tabs:         m.renderTabs(),
		LeftPane:     m.renderList(),
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: strings.Join(notes, "\n"),
		Footer:       m.helpModel.View(m.Keys),
		Width:        m.width,
	})
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}
