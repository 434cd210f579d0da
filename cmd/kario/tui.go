package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/kario/internal/scheduler"
	"github.com/sandeepkv93/kario/internal/tasks"
	"github.com/sandeepkv93/kario/internal/update"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI (default)",
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()
	syncer := scheduler.NewSyncer(engine, a.svc, a.log)
	syncer.Sync(ctx)

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	model := update.NewModel(ctx, a.svc, update.Options{
		Scheduler: engine,
		Notifier:  notifier,
		Config:    a.cfg,
		Logger:    a.log,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Changes are published from inside Update, so the program is notified
	// from a separate goroutine.
	unsubscribe := a.svc.Subscribe(func(c tasks.Change) {
		if c.Kind != tasks.ChangeSettings {
			syncer.Sync(ctx)
		}
		go program.Send(update.TasksChangedMsg{})
	})
	defer unsubscribe()

	a.log.InfoContext(ctx, "tui started", "db", a.cfg.DBPath, "tasks", len(a.svc.Tasks()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	a.log.InfoContext(ctx, "tui stopped", "reminders_fired", engine.Fired(), "reminders_dropped", engine.Dropped())
	return nil
}
