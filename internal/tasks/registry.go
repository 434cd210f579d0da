package tasks

import (
	"context"
	"slices"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/storage"
)

// CustomPriorities returns the user-defined priorities, most recent first.
func (s *Service) CustomPriorities() []model.CustomPriority {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.priorities)
}

// AddPriority records p at the front of the registry, replacing an entry of
// the same name and keeping at most model.MaxCustomEntries.
func (s *Service) AddPriority(ctx context.Context, p model.CustomPriority) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Color == "" {
		p.Color = model.FallbackColor
	}
	s.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(s.priorities), func(e model.CustomPriority) bool { return e.Name == p.Name })
	next = capped(append([]model.CustomPriority{p}, next...))
	err := storage.Save(ctx, s.store, storage.KeyCustomPriorities, next)
	if err == nil {
		s.priorities = next
	}
	s.mu.Unlock()
	if err == nil {
		s.publish(Change{Kind: ChangeRegistry})
	}
	return err
}

// DeletePriority removes a custom priority. Tasks keep the name.
func (s *Service) DeletePriority(ctx context.Context, name string) error {
	s.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(s.priorities), func(e model.CustomPriority) bool { return e.Name == name })
	err := storage.Save(ctx, s.store, storage.KeyCustomPriorities, next)
	if err == nil {
		s.priorities = next
	}
	s.mu.Unlock()
	if err == nil {
		s.publish(Change{Kind: ChangeRegistry})
	}
	return err
}

// Labels returns the user-defined labels in creation order.
func (s *Service) Labels() []model.CustomLabel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.labels)
}

// AddLabel registers a label unless a preset or custom label with the same
// name (ignoring case) exists. It returns the registered entry and whether
// it was new.
func (s *Service) AddLabel(ctx context.Context, l model.CustomLabel) (model.CustomLabel, bool, error) {
	l.Name = strings.TrimSpace(l.Name)
	if err := l.Validate(); err != nil {
		return model.CustomLabel{}, false, err
	}
	if l.Color == "" {
		l.Color = "blue"
	}
	s.mu.Lock()
	for _, set := range [][]model.CustomLabel{model.PresetLabels, s.labels} {
		for _, e := range set {
			if strings.EqualFold(e.Name, l.Name) {
				s.mu.Unlock()
				return e, false, nil
			}
		}
	}
	next := append(slices.Clone(s.labels), l)
	err := storage.Save(ctx, s.store, storage.KeyLabels, next)
	if err == nil {
		s.labels = next
	}
	s.mu.Unlock()
	if err != nil {
		return model.CustomLabel{}, false, err
	}
	s.publish(Change{Kind: ChangeRegistry})
	return l, true, nil
}

// DeleteLabel removes a custom label from the registry only; tasks that
// carry it keep the name and render it in the fallback color.
func (s *Service) DeleteLabel(ctx context.Context, name string) error {
	s.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(s.labels), func(e model.CustomLabel) bool { return strings.EqualFold(e.Name, name) })
	err := storage.Save(ctx, s.store, storage.KeyLabels, next)
	if err == nil {
		s.labels = next
	}
	s.mu.Unlock()
	if err == nil {
		s.publish(Change{Kind: ChangeRegistry})
	}
	return err
}

// CustomReminders returns recently used reminders, most recent first.
func (s *Service) CustomReminders() []model.CustomReminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reminders)
}

// RememberReminder pushes token to the front of the recent list. Presets
// are not recorded.
func (s *Service) RememberReminder(ctx context.Context, token string) error {
	if _, err := model.ParseReminderToken(token); err != nil {
		return err
	}
	for _, p := range model.PresetReminders {
		if p.Value == token {
			return nil
		}
	}
	entry := model.CustomReminder{Value: token, Label: model.ReminderLabel(token)}
	s.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(s.reminders), func(e model.CustomReminder) bool { return e.Value == token })
	next = capped(append([]model.CustomReminder{entry}, next...))
	err := storage.Save(ctx, s.store, storage.KeyCustomReminders, next)
	if err == nil {
		s.reminders = next
	}
	s.mu.Unlock()
	return err
}

// PriorityColor resolves against the presets and the current registry.
func (s *Service) PriorityColor(name string) string {
	return model.PriorityColor(name, s.CustomPriorities())
}

func (s *Service) LabelColor(name string) string {
	return model.LabelColor(name, s.Labels())
}

func capped[T any](in []T) []T {
	if len(in) > model.MaxCustomEntries {
		return in[:model.MaxCustomEntries]
	}
	return in
}
