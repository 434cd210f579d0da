package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
)

// Draft is the content of the create/edit form. DueDate is DD/MM/YYYY and
// Time is 24h HH:MM; both may be empty.
type Draft struct {
	Title       string
	Description string
	DueDate     string
	Time        string
	Priority    string
	Reminder    string
	Repeat      string
	Labels      []string
}

// Patch changes only the fields that are set.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *string
	Time        *string
	Priority    *string
	Reminder    *string
	Repeat      *string
	Labels      *[]string
	// AsDraft forces the draft flag on; false re-infers it.
	AsDraft *bool
}

// Create adds a task at the end of the live list. asDraft forces the draft
// flag; otherwise a task with neither due date nor description is a draft.
func (s *Service) Create(ctx context.Context, d Draft, asDraft bool) (model.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}
	t := model.Task{
		ID:           s.newID(),
		Title:        title,
		CreationDate: model.FormatDay(s.now()),
		DueDate:      strings.TrimSpace(d.DueDate),
		Time:         strings.TrimSpace(d.Time),
		Priority:     strings.TrimSpace(d.Priority),
		Description:  strings.TrimSpace(d.Description),
		Reminder:     d.Reminder,
		Repeat:       d.Repeat,
		Labels:       slices.Clone(d.Labels),
	}
	if t.Priority == "" {
		t.Priority = model.DefaultPriority
	}
	t.IsDraft = asDraft || model.InferDraft(t.DueDate, t.Description)
	if err := checkReminder(t); err != nil {
		return model.Task{}, err
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	live := append(slices.Clone(s.live), t)
	err := s.commit(ctx, live, s.deleted)
	s.mu.Unlock()
	if err != nil {
		return model.Task{}, err
	}
	s.log.InfoContext(ctx, "task created", "id", t.ID, "draft", t.IsDraft)
	s.publish(Change{Kind: ChangeCreated, TaskID: t.ID})
	s.rememberReminder(ctx, t.Reminder)
	return t.Clone(), nil
}

// Edit replaces the form fields of a live task. An empty due date or time
// keeps the stored one. ID, creation date, completion and subtasks are
// never touched.
func (s *Service) Edit(ctx context.Context, id string, d Draft, asDraft bool) (model.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}
	t, err := s.mutate(ctx, id, ChangeUpdated, func(t *model.Task) error {
		t.Title = title
		t.Description = strings.TrimSpace(d.Description)
		if due := strings.TrimSpace(d.DueDate); due != "" {
			t.DueDate = due
		}
		if at := strings.TrimSpace(d.Time); at != "" {
			t.Time = at
		}
		if p := strings.TrimSpace(d.Priority); p != "" {
			t.Priority = p
		}
		t.Reminder = d.Reminder
		t.Repeat = d.Repeat
		t.Labels = slices.Clone(d.Labels)
		t.IsDraft = asDraft || model.InferDraft(t.DueDate, t.Description)
		return checkReminder(*t)
	})
	if err == nil {
		s.rememberReminder(ctx, t.Reminder)
	}
	return t, err
}

// Update applies p to a live task. The draft flag is recomputed when the
// schedule or description changes or when p.AsDraft is set.
func (s *Service) Update(ctx context.Context, id string, p Patch) (model.Task, error) {
	return s.mutate(ctx, id, ChangeUpdated, func(t *model.Task) error {
		reinfer := p.AsDraft != nil
		if p.Title != nil {
			title := strings.TrimSpace(*p.Title)
			if title == "" {
				return ErrTitleRequired
			}
			t.Title = title
		}
		if p.Description != nil {
			t.Description = strings.TrimSpace(*p.Description)
			reinfer = true
		}
		if p.DueDate != nil {
			t.DueDate = strings.TrimSpace(*p.DueDate)
			reinfer = true
		}
		if p.Time != nil {
			t.Time = strings.TrimSpace(*p.Time)
		}
		if p.Priority != nil {
			t.Priority = strings.TrimSpace(*p.Priority)
			if t.Priority == "" {
				t.Priority = model.DefaultPriority
			}
		}
		if p.Reminder != nil {
			t.Reminder = *p.Reminder
		}
		if p.Repeat != nil {
			t.Repeat = *p.Repeat
		}
		if p.Labels != nil {
			t.Labels = slices.Clone(*p.Labels)
		}
		if reinfer {
			forced := p.AsDraft != nil && *p.AsDraft
			t.IsDraft = forced || model.InferDraft(t.DueDate, t.Description)
		}
		if t.DueDate == "" || t.Time == "" {
			// A reminder cannot outlive the schedule it hangs off.
			if p.Reminder == nil {
				t.Reminder = ""
			}
		}
		return checkReminder(*t)
	})
}

// SetReminder attaches a reminder token. The task must have both a due date
// and a time; otherwise ErrReminderNeedsSchedule is returned and nothing
// changes. An empty token clears the reminder.
func (s *Service) SetReminder(ctx context.Context, id, token string) (model.Task, error) {
	t, err := s.Update(ctx, id, Patch{Reminder: &token})
	if err != nil {
		return model.Task{}, err
	}
	s.rememberReminder(ctx, token)
	return t, nil
}

// rememberReminder records a token that was just attached to a task.
func (s *Service) rememberReminder(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.RememberReminder(ctx, token); err != nil {
		s.log.WarnContext(ctx, "remember reminder failed", "err", err)
	}
}

func checkReminder(t model.Task) error {
	if t.Reminder != "" && (t.DueDate == "" || t.Time == "") {
		return ErrReminderNeedsSchedule
	}
	return nil
}

// Toggle flips completion. Drafts cannot be completed.
func (s *Service) Toggle(ctx context.Context, id string) (model.Task, error) {
	return s.mutate(ctx, id, ChangeToggled, func(t *model.Task) error {
		if t.IsDraft {
			return fmt.Errorf("%w: %q", ErrDraftNotCompletable, t.ID)
		}
		t.Completed = !t.Completed
		return nil
	})
}

// Delete moves a live task to the deleted list. Deleting an id that is not
// live returns ErrNotFound and changes nothing.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	gone := model.DeletedTask{Task: s.live[i].Clone(), DeletedAt: s.now().UTC()}
	live := slices.Delete(slices.Clone(s.live), i, i+1)
	deleted := append(slices.Clone(s.deleted), gone)
	err := s.commit(ctx, live, deleted)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "task deleted", "id", id)
	s.publish(Change{Kind: ChangeDeleted, TaskID: id})
	return nil
}

// Restore moves a deleted task back to the end of the live list.
func (s *Service) Restore(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	i := s.deletedIndexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	t := s.deleted[i].Task.Clone()
	deleted := slices.Delete(slices.Clone(s.deleted), i, i+1)
	live := append(slices.Clone(s.live), t)
	err := s.commit(ctx, live, deleted)
	s.mu.Unlock()
	if err != nil {
		return model.Task{}, err
	}
	s.log.InfoContext(ctx, "task restored", "id", id)
	s.publish(Change{Kind: ChangeRestored, TaskID: id})
	return t, nil
}

// Purge drops deleted tasks older than the retention window and reports
// how many went.
func (s *Service) Purge(ctx context.Context) (int, error) {
	s.mu.Lock()
	cutoff := s.now().Add(-s.retention)
	kept := make([]model.DeletedTask, 0, len(s.deleted))
	for _, d := range s.deleted {
		if d.DeletedAt.After(cutoff) {
			kept = append(kept, d)
		}
	}
	n := len(s.deleted) - len(kept)
	if n == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	err := s.commit(ctx, s.live, kept)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "purged deleted tasks", "count", n)
	s.publish(Change{Kind: ChangePurged})
	return n, nil
}

// Move drops the task srcID onto dstID in the stored live order: the source
// is removed and reinserted at the index the target had before removal.
// Self-drops and unknown ids leave the order alone and report false.
func (s *Service) Move(ctx context.Context, srcID, dstID string) (bool, error) {
	if srcID == dstID {
		return false, nil
	}
	s.mu.Lock()
	from, to := s.indexOf(srcID), s.indexOf(dstID)
	if from < 0 || to < 0 {
		s.mu.Unlock()
		return false, nil
	}
	live := slices.Clone(s.live)
	moved := live[from]
	live = slices.Delete(live, from, from+1)
	live = slices.Insert(live, to, moved)
	err := s.commit(ctx, live, s.deleted)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.publish(Change{Kind: ChangeMoved, TaskID: srcID})
	return true, nil
}
