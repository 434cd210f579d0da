package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/sandeepkv93/kario/internal/model"
)

// Plan computes the reminder events still ahead of now for tasks. Completed
// tasks, drafts and tasks without a due date or a valid reminder token are
// skipped.
func Plan(tasks []model.Task, now time.Time) []ReminderEvent {
	var out []ReminderEvent
	for _, t := range tasks {
		if t.Completed || t.IsDraft || t.Reminder == "" {
			continue
		}
		due, ok := t.Due(now.Location())
		if !ok {
			continue
		}
		r, err := model.ParseReminderToken(t.Reminder)
		if err != nil {
			continue
		}
		at := r.TriggerAt(due)
		if !at.After(now) {
			continue
		}
		out = append(out, ReminderEvent{
			ID:        t.ID + "@" + t.Reminder,
			TaskID:    t.ID,
			Title:     t.Title,
			Label:     r.Label(),
			TriggerAt: at,
			DueAt:     due,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TriggerAt.Before(out[j].TriggerAt) })
	return out
}

// Source supplies the current task list.
type Source interface {
	Tasks() []model.Task
	Now() time.Time
}

// Syncer keeps an engine's queue in line with a task source.
type Syncer struct {
	engine *Engine
	source Source
	log    *slog.Logger
}

func NewSyncer(engine *Engine, source Source, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{engine: engine, source: source, log: log}
}

// Sync rebuilds the engine queue from the source.
func (s *Syncer) Sync(ctx context.Context) {
	evs := Plan(s.source.Tasks(), s.source.Now())
	if err := s.engine.Replace(evs); err != nil {
		s.log.WarnContext(ctx, "reminder sync failed", "err", err)
		return
	}
	s.log.DebugContext(ctx, "reminders synced", "pending", len(evs))
}
