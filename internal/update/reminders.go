package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/kario/internal/scheduler"
	"github.com/sandeepkv93/kario/internal/views"
)

// onReminder records a fired reminder and raises a notification unless the
// task has been completed or removed since the reminder was planned.
func (m *Model) onReminder(ev scheduler.ReminderEvent) tea.Cmd {
	t, ok := m.svc.Task(ev.TaskID)
	if !ok || t.Completed {
		m.log.Debug("reminder skipped", "task", ev.TaskID, "live", ok)
		return nil
	}
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > maxReminderLog {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-maxReminderLog:]
	}
	body := fmt.Sprintf("%s (%s)", t.Title, ev.Label)
	m.Status = StatusBar{Text: "reminder: " + body}
	return m.notify("Reminder", body, "info")
}

// notify appends to the notification pane and, when enabled, sends the
// desktop notification off the update loop.
func (m *Model) notify(title, body, level string) tea.Cmd {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if !m.DesktopEnabled || m.notifier == nil {
		return nil
	}
	m.pending++
	notifier := m.notifier
	send := func() tea.Msg { return desktopSentMsg{Err: notifier.Send(n)} }
	if m.pending == 1 {
		return tea.Batch(send, m.busy.Tick)
	}
	return send
}

func (m Model) lastNotification() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Title+": "+n.Body)
}
