package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/kario/internal/config"
	"github.com/sandeepkv93/kario/internal/scheduler"
	"github.com/sandeepkv93/kario/internal/tasks"
	"github.com/sandeepkv93/kario/internal/taskview"
)

const (
	maxReminderLog   = 20
	maxNotifications = 40
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// KeyMap is the resolved set of list-mode bindings.
type KeyMap struct {
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Delete      key.Binding
	Restore     key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	DateFilter  key.Binding
	SortStatus  key.Binding
	SortCreated key.Binding
	Palette     key.Binding
	Help        key.Binding
}

func NewKeyMap(k config.Keymap) KeyMap {
	bind := func(keys []string, desc string) key.Binding {
		label := keys[0]
		if label == " " {
			label = "space"
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
	}
	return KeyMap{
		Quit:        bind([]string{k.Quit, "ctrl+c"}, "quit"),
		Up:          bind([]string{k.Up, "up"}, "cursor up"),
		Down:        bind([]string{k.Down, "down"}, "cursor down"),
		Toggle:      bind([]string{k.Toggle}, "toggle done"),
		Delete:      bind([]string{k.Delete}, "delete"),
		Restore:     bind([]string{k.Restore}, "restore"),
		MoveUp:      bind([]string{k.MoveUp}, "move up"),
		MoveDown:    bind([]string{k.MoveDown}, "move down"),
		DateFilter:  bind([]string{k.DateFilter}, "cycle date filter"),
		SortStatus:  bind([]string{k.SortStatus}, "sort by status"),
		SortCreated: bind([]string{k.SortCreated}, "group by created"),
		Palette:     bind([]string{k.Palette}, "command palette"),
		Help:        bind([]string{k.Help}, "toggle help"),
	}
}

type Model struct {
	Scope          taskview.Scope
	Settings       tasks.ViewSettings
	Cursor         int
	SelectedTaskID string
	Scheduler      *scheduler.Engine
	ReminderLog    []scheduler.ReminderEvent
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           KeyMap
	Quitting       bool
	LastError      error

	ctx      context.Context
	svc      *tasks.Service
	log      *slog.Logger
	notifier DesktopNotifier
	view     taskview.View

	commandInput textinput.Model
	helpModel    help.Model
	detail       viewport.Model
	busy         spinner.Model
	pending      int
	width        int
}

type Options struct {
	Scheduler *scheduler.Engine
	Notifier  DesktopNotifier
	Config    config.Config
	Logger    *slog.Logger
}

func NewModel(ctx context.Context, svc *tasks.Service, opts Options) Model {
	cfg := opts.Config
	if cfg.Keys == (config.Keymap{}) {
		cfg.Keys = config.Default().Keys
	}
	m := Model{
		Scope:          taskview.ScopeTotal,
		Settings:       svc.LoadViewSettings(ctx),
		Scheduler:      opts.Scheduler,
		DesktopEnabled: cfg.DesktopNotifications,
		Keys:           NewKeyMap(cfg.Keys),
		ctx:            ctx,
		svc:            svc,
		log:            opts.Logger,
		notifier:       opts.Notifier,
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 56
	m.commandInput.Placeholder = "add pay rent"

	m.helpModel = help.New()
	m.detail = viewport.New(48, 18)

	m.busy = spinner.New()
	m.busy.Spinner = spinner.Dot
}

type SwitchScopeMsg struct {
	Scope taskview.Scope
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TasksChangedMsg is sent when the task service reports a change made
// outside the model, such as a purge or a scheduler-driven update.
type TasksChangedMsg struct{}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// desktopSentMsg reports the end of an asynchronous desktop notification.
type desktopSentMsg struct {
	Err error
}
