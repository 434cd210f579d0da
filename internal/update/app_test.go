package update

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/kario/internal/config"
	"github.com/sandeepkv93/kario/internal/scheduler"
	"github.com/sandeepkv93/kario/internal/storage"
	"github.com/sandeepkv93/kario/internal/tasks"
	"github.com/sandeepkv93/kario/internal/taskview"
)

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) (Model, *tasks.Service) {
	t.Helper()
	seq := 0
	svc, err := tasks.Open(t.Context(), storage.NewMemoryStore(),
		tasks.WithClock(func() time.Time { return testNow }),
		tasks.WithIDs(func() string { seq++; return fmt.Sprintf("task-%02d", seq) }),
	)
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	if opts.Config.Keys == (config.Keymap{}) {
		opts.Config = config.Default()
	}
	return NewModel(t.Context(), svc, opts), svc
}

func addTask(t *testing.T, svc *tasks.Service, title, due string) string {
	t.Helper()
	task, err := svc.Create(t.Context(), tasks.Draft{Title: title, DueDate: due}, false)
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return task.ID
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runPalette(t *testing.T, m Model, line string) Model {
	t.Helper()
	return press(t, m, "/", line, "enter")
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	if m.Scope != taskview.ScopeTotal {
		t.Fatalf("expected default scope %q, got %q", taskview.ScopeTotal, m.Scope)
	}
	if !m.Settings.Sort.CreationDate {
		t.Fatal("expected created grouping on by default")
	}
	if m.SelectedTaskID != "" {
		t.Fatalf("expected no selection, got %q", m.SelectedTaskID)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestScopeKeysAndSwitchMsg(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = press(t, m, "4")
	if m.Scope != taskview.ScopeDrafts {
		t.Fatalf("expected drafts scope, got %q", m.Scope)
	}
	updated, _ := m.Update(SwitchScopeMsg{Scope: taskview.ScopeDeleted})
	m = updated.(Model)
	if m.Scope != taskview.ScopeDeleted {
		t.Fatalf("expected deleted scope, got %q", m.Scope)
	}
	updated, _ = m.Update(SwitchScopeMsg{Scope: "archive"})
	m = updated.(Model)
	if m.Scope != taskview.ScopeDeleted {
		t.Fatalf("expected scope unchanged for unknown scope, got %q", m.Scope)
	}
}

func TestCustomKeymap(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Quit = "x"
	m, _ := newTestModel(t, Options{Config: cfg})
	m = press(t, m, "q")
	if m.Quitting {
		t.Fatal("q should not quit with a remapped quit key")
	}
	m = press(t, m, "x")
	if !m.Quitting {
		t.Fatal("expected x to quit")
	}
}

func TestPaletteAddWithoutScheduleLandsInDrafts(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	m = runPalette(t, m, "add pay rent")

	if m.Palette.Active {
		t.Fatal("palette should close after enter")
	}
	all := svc.Tasks()
	if len(all) != 1 || !all[0].IsDraft || all[0].Title != "pay rent" {
		t.Fatalf("unexpected tasks: %+v", all)
	}
	if m.Scope != taskview.ScopeDrafts || m.SelectedTaskID != all[0].ID {
		t.Fatalf("expected drafts scope with new task selected, got %q / %q", m.Scope, m.SelectedTaskID)
	}
	if !strings.Contains(m.Status.Text, "saved as draft") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestPaletteEditsSelectedTask(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	id := addTask(t, svc, "dentist", "20/06/2024")
	m.refresh()

	m = runPalette(t, m, "at 3:30pm")
	m = runPalette(t, m, "remind 1 hour before")
	m = runPalette(t, m, "priority 1")
	m = runPalette(t, m, "label #Health")
	m = runPalette(t, m, "repeat every month")
	m = runPalette(t, m, "sub bring insurance card")

	task, ok := svc.Task(id)
	if !ok {
		t.Fatal("task vanished")
	}
	if task.Time != "15:30" || task.Reminder != "1h" || task.Priority != "Priority 1" {
		t.Fatalf("unexpected schedule fields: %+v", task)
	}
	if len(task.Labels) != 1 || task.Labels[0] != "#Health" || task.Repeat != "every-month" {
		t.Fatalf("unexpected labels/repeat: %+v", task)
	}
	if len(task.Subtasks) != 1 || task.Subtasks[0].Title != "bring insurance card" {
		t.Fatalf("unexpected subtasks: %+v", task.Subtasks)
	}

	m = runPalette(t, m, "label #health")
	task, _ = svc.Task(id)
	if len(task.Labels) != 0 {
		t.Fatalf("label should toggle off, got %v", task.Labels)
	}

	m = runPalette(t, m, "due clear")
	task, _ = svc.Task(id)
	if task.DueDate != "" || task.Reminder != "" || !task.IsDraft {
		t.Fatalf("clearing the due date should drop the reminder and make a draft: %+v", task)
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %q", m.Status.Text)
	}
}

func TestPaletteReminderWithoutTimeFails(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	id := addTask(t, svc, "call bank", "20/06/2024")
	m.refresh()

	m = runPalette(t, m, "remind 10 minutes before")
	if !m.Status.IsError || !errors.Is(m.LastError, tasks.ErrReminderNeedsSchedule) {
		t.Fatalf("expected reminder error, got %q (%v)", m.Status.Text, m.LastError)
	}
	if task, _ := svc.Task(id); task.Reminder != "" {
		t.Fatalf("reminder should not be stored: %+v", task)
	}
}

func TestPaletteParseErrorShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = runPalette(t, m, "snooze overdue")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	m = press(t, m, "/", "add nope", "esc")
	if m.Palette.Active || len(svc.Tasks()) != 0 {
		t.Fatalf("esc should close without running, tasks=%d", len(svc.Tasks()))
	}
}

func TestToggleDeleteRestore(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	id := addTask(t, svc, "water plants", "13/06/2024")
	m.refresh()

	m = press(t, m, " ")
	if task, _ := svc.Task(id); !task.Completed {
		t.Fatal("space should complete the selected task")
	}

	m = press(t, m, "d")
	if len(svc.Tasks()) != 0 || len(svc.Deleted()) != 1 {
		t.Fatalf("expected task in trash, live=%d deleted=%d", len(svc.Tasks()), len(svc.Deleted()))
	}

	m = press(t, m, "5", "r")
	if len(svc.Tasks()) != 1 || len(svc.Deleted()) != 0 {
		t.Fatalf("expected task restored, live=%d deleted=%d", len(svc.Tasks()), len(svc.Deleted()))
	}
	if !strings.Contains(m.Status.Text, "restored") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestToggleDraftIsRejected(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	id := addTask(t, svc, "someday", "")
	m = press(t, m, "4", " ")
	if task, _ := svc.Task(id); task.Completed {
		t.Fatal("drafts must not complete")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestCursorAndMove(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	first := addTask(t, svc, "first", "14/06/2024")
	second := addTask(t, svc, "second", "15/06/2024")
	m.refresh()

	if m.SelectedTaskID != first {
		t.Fatalf("expected first selected, got %q", m.SelectedTaskID)
	}
	m = press(t, m, "j")
	if m.SelectedTaskID != second {
		t.Fatalf("expected second selected, got %q", m.SelectedTaskID)
	}
	m = press(t, m, "K")
	live := svc.Tasks()
	if live[0].ID != second || live[1].ID != first {
		t.Fatalf("expected second moved to top, got %s, %s", live[0].ID, live[1].ID)
	}
	if m.SelectedTaskID != second || m.Cursor != 0 {
		t.Fatalf("selection should follow the moved task, got %q at %d", m.SelectedTaskID, m.Cursor)
	}
}

func TestDateFilterCyclesAndPersists(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	m = press(t, m, "f")
	if !m.Settings.Filter.Date || m.Settings.Values.Date != taskview.DateToday {
		t.Fatalf("unexpected filter: %+v %+v", m.Settings.Filter, m.Settings.Values)
	}
	if got := svc.LoadViewSettings(t.Context()); got.Values.Date != taskview.DateToday {
		t.Fatalf("filter not persisted: %+v", got.Values)
	}
	for range taskview.DatePresets {
		m = press(t, m, "f")
	}
	if m.Settings.Filter.Date {
		t.Fatal("date filter should switch off after the last preset")
	}
}

func TestSortKeysToggle(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = press(t, m, "s", "c")
	if !m.Settings.Sort.CompletionStatus || m.Settings.Sort.CreationDate {
		t.Fatalf("unexpected sort settings: %+v", m.Settings.Sort)
	}
}

func TestInitWithSchedulerReturnsReminderCmd(t *testing.T) {
	engine := scheduler.NewEngine(1)
	m, _ := newTestModel(t, Options{Scheduler: engine})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected reminder wait cmd when scheduler is attached")
	}
}

func TestUpdateReminderDueMsgAppendsLogAndRearms(t *testing.T) {
	engine := scheduler.NewEngine(1)
	m, svc := newTestModel(t, Options{Scheduler: engine})
	id := addTask(t, svc, "standup", "12/06/2024")
	ev := scheduler.ReminderEvent{ID: "rem-1", TaskID: id, Title: "standup", Label: "10 minutes before", TriggerAt: testNow}

	updated, cmd := m.Update(ReminderDueMsg{Event: ev})
	next := updated.(Model)
	if len(next.ReminderLog) != 1 || next.ReminderLog[0].ID != "rem-1" {
		t.Fatalf("unexpected reminder log: %#v", next.ReminderLog)
	}
	if cmd == nil {
		t.Fatal("expected reminder listener rearm cmd")
	}
	if !strings.Contains(next.Status.Text, "standup (10 minutes before)") {
		t.Fatalf("expected reminder status text, got %q", next.Status.Text)
	}
	if len(next.Notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(next.Notifications))
	}
}

func TestReminderForCompletedTaskIsSkipped(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	id := addTask(t, svc, "done already", "12/06/2024")
	if _, err := svc.Toggle(t.Context(), id); err != nil {
		t.Fatal(err)
	}
	updated, _ := m.Update(ReminderDueMsg{Event: scheduler.ReminderEvent{ID: "r", TaskID: id}})
	if next := updated.(Model); len(next.ReminderLog) != 0 {
		t.Fatalf("completed task reminder should be skipped: %#v", next.ReminderLog)
	}
}

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func TestDesktopNotificationRunsAsCommand(t *testing.T) {
	rec := &recordingNotifier{}
	cfg := config.Default()
	cfg.DesktopNotifications = true
	m, _ := newTestModel(t, Options{Notifier: rec, Config: cfg})

	m.pending = 1
	cmd := m.notify("Reminder", "stretch", "info")
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if len(rec.sent) != 0 {
		t.Fatal("notification must not be sent inside Update")
	}
	msg := cmd()
	if _, ok := msg.(desktopSentMsg); !ok || len(rec.sent) != 1 {
		t.Fatalf("unexpected msg %T, sent=%d", msg, len(rec.sent))
	}
	updated, _ := m.Update(msg)
	if updated.(Model).pending != 1 {
		t.Fatalf("pending should drop by one, got %d", updated.(Model).pending)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestTasksChangedMsgRefreshes(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	addTask(t, svc, "from the cli", "20/06/2024")
	updated, _ := m.Update(TasksChangedMsg{})
	next := updated.(Model)
	if next.SelectedTaskID == "" {
		t.Fatal("expected refresh to pick up the new task")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, svc := newTestModel(t, Options{})
	addTask(t, svc, "review budget", "20/06/2024")
	m.refresh()
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"kario | total", "1 total (1)", "review budget", "status: all good"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestHelpViewListsCommands(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = press(t, m, "?")
	out := m.View()
	if !strings.Contains(out, "/remind <phrase>|clear") {
		t.Fatalf("expected command usage in help: %q", out)
	}
}
