package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/kario/internal/commands"
	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/tasks"
	"github.com/sandeepkv93/kario/internal/taskview"
)

func addCmd() *cobra.Command {
	var (
		due, at, priority, remind, repeat, description string
		labels                                         []string
		draft                                          bool
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long: `Create a task. --due accepts DD/MM/YYYY or phrases like "tomorrow" or
"next friday"; --at takes HH:MM or "5pm". A task without a due date or
description is stored as a draft.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			d := tasks.Draft{
				Title:       strings.Join(args, " "),
				Description: description,
				Labels:      labels,
			}
			if due != "" {
				parsed, err := commands.ParseDue(due, a.svc.Now())
				if err != nil {
					return err
				}
				d.DueDate = parsed.Day
			}
			if at != "" {
				parsed, err := commands.ParseAt(at)
				if err != nil {
					return err
				}
				if !parsed.Clear {
					d.Time = parsed.Clock.String()
				}
			}
			if remind != "" {
				parsed, err := commands.ParseRemind(remind)
				if err != nil {
					return err
				}
				d.Reminder = parsed.Token
			}
			if repeat != "" {
				parsed, err := commands.ParseRepeat(repeat)
				if err != nil {
					return err
				}
				d.Repeat = parsed.Token
			}
			var newPriority *model.CustomPriority
			if priority != "" {
				d.Priority = commands.PriorityName(priority)
				if !model.IsPresetPriority(d.Priority) {
					p := model.CustomPriority{Name: strings.TrimSpace(d.Priority), Color: model.FallbackColor}
					if err := p.Validate(); err != nil {
						return err
					}
					newPriority = &p
				}
			}
			var newLabels []model.CustomLabel
			known := a.svc.Labels()
			for i, l := range d.Labels {
				l = strings.TrimSpace(l)
				if name, ok := knownLabel(known, l); ok {
					d.Labels[i] = name
					continue
				}
				label := model.CustomLabel{Name: l}
				if err := label.Validate(); err != nil {
					return err
				}
				d.Labels[i] = l
				newLabels = append(newLabels, label)
			}

			// Registries are only touched once the task itself is stored.
			t, err := a.svc.Create(ctx, d, draft)
			if err != nil {
				return err
			}
			if newPriority != nil {
				if err := a.svc.AddPriority(ctx, *newPriority); err != nil {
					return err
				}
			}
			for _, l := range newLabels {
				if _, _, err := a.svc.AddLabel(ctx, l); err != nil {
					return err
				}
			}
			printOutput(formatter.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "Due date (DD/MM/YYYY or a phrase)")
	cmd.Flags().StringVar(&at, "at", "", "Due time (HH:MM or 5pm)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (1-6 or a custom name)")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Label (repeatable)")
	cmd.Flags().StringVar(&remind, "remind", "", "Reminder (at-time, 10m, 1 hour before, +1d)")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Repeat (daily, weekdays, every monday, every 3 days)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Markdown description")
	cmd.Flags().BoolVar(&draft, "draft", false, "Store as a draft")
	return cmd
}

func listCmd() *cobra.Command {
	var (
		view, date           string
		priorities, labels   []string
		byStatus, byCreation bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in a view",
		Long: `List tasks. Views: total, pending, completed, drafts, deleted.
Filters and sort toggles default to the ones saved by the TUI; flags
override them for this run only.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			scope, err := taskview.ParseScope(view)
			if err != nil {
				return err
			}
			settings := a.svc.LoadViewSettings(ctx)
			flags := cmd.Flags()
			if flags.Changed("date") {
				preset, ok := commands.ParseDatePreset(date)
				if !ok {
					return fmt.Errorf("unknown date filter %q", date)
				}
				settings.Filter.Date = preset != taskview.DateAll
				settings.Values.Date = preset
			}
			if flags.Changed("priority") {
				names := make([]string, 0, len(priorities))
				for _, p := range priorities {
					names = append(names, commands.PriorityName(p))
				}
				settings.Filter.Priority = len(names) > 0
				settings.Values.Priorities = names
			}
			if flags.Changed("label") {
				settings.Filter.Label = len(labels) > 0
				settings.Values.Labels = labels
			}
			if flags.Changed("by-status") {
				settings.Sort.CompletionStatus = byStatus
			}
			if flags.Changed("by-created") {
				settings.Sort.CreationDate = byCreation
			}

			printOutput(formatter.FormatView(scope, a.svc.View(settings.Query(scope))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&view, "view", "v", string(taskview.ScopePending), "View: total, pending, completed, drafts, deleted")
	cmd.Flags().StringVar(&date, "date", "", "Date filter: today, week, 7, month, 30, all")
	cmd.Flags().StringSliceVarP(&priorities, "priority", "p", nil, "Only these priorities")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Only tasks with any of these labels")
	cmd.Flags().BoolVar(&byStatus, "by-status", false, "Sort pending before completed")
	cmd.Flags().BoolVar(&byCreation, "by-created", true, "Group by creation date, newest first")
	return cmd
}

// knownLabel finds name among the preset and registered labels, ignoring
// case, and returns the stored spelling.
func knownLabel(registered []model.CustomLabel, name string) (string, bool) {
	for _, set := range [][]model.CustomLabel{model.PresetLabels, registered} {
		for _, l := range set {
			if strings.EqualFold(l.Name, name) {
				return l.Name, true
			}
		}
	}
	return "", false
}

// taskCmd builds a command that acts on one task referenced by id, id
// prefix or short id.
func taskCmd(use, short string, run func(cmd *cobra.Command, a *app, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			id, err := a.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			return run(cmd, a, id)
		},
	}
}

func doneCmd() *cobra.Command {
	return taskCmd("done", "Toggle a task's completion", func(cmd *cobra.Command, a *app, id string) error {
		t, err := a.svc.Toggle(cmd.Context(), id)
		if err != nil {
			return err
		}
		printOutput(formatter.FormatTask(t))
		return nil
	})
}

func rmCmd() *cobra.Command {
	return taskCmd("rm", "Move a task to the deleted list", func(cmd *cobra.Command, a *app, id string) error {
		if err := a.svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		printOutput(formatter.FormatMessage(fmt.Sprintf("deleted %s", id)))
		return nil
	})
}

func restoreCmd() *cobra.Command {
	return taskCmd("restore", "Restore a deleted task", func(cmd *cobra.Command, a *app, id string) error {
		t, err := a.svc.Restore(cmd.Context(), id)
		if err != nil {
			return err
		}
		printOutput(formatter.FormatTask(t))
		return nil
	})
}

func moveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <target-id>",
		Short: "Move a task to another task's position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			src, err := a.svc.Resolve(args[0])
			if err != nil {
				return err
			}
			dst, err := a.svc.Resolve(args[1])
			if err != nil {
				return err
			}
			moved, err := a.svc.Move(ctx, src, dst)
			if err != nil {
				return err
			}
			msg := "nothing to move"
			if moved {
				msg = fmt.Sprintf("moved %s", src)
			}
			printOutput(formatter.FormatMessage(msg))
			return nil
		},
	}
	return cmd
}

func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove deleted tasks past the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			n, err := a.svc.Purge(cmd.Context())
			if err != nil {
				return err
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("purged %d task(s)", n)))
			return nil
		},
	}
}
