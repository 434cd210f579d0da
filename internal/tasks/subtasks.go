package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
)

// AddSubtask appends a subtask to task taskID. parentID may name another
// subtask of the same task to nest under it.
func (s *Service) AddSubtask(ctx context.Context, taskID, parentID, title string) (model.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Subtask{}, ErrTitleRequired
	}
	sub := model.Subtask{ID: s.newID(), ParentID: parentID, Title: title}
	_, err := s.mutate(ctx, taskID, ChangeUpdated, func(t *model.Task) error {
		if parentID != "" && subtaskIndex(t.Subtasks, parentID) < 0 {
			return fmt.Errorf("%w: %q", ErrSubtaskNotFound, parentID)
		}
		t.Subtasks = append(t.Subtasks, sub)
		return nil
	})
	if err != nil {
		return model.Subtask{}, err
	}
	return sub, nil
}

func (s *Service) ToggleSubtask(ctx context.Context, taskID, subID string) (model.Task, error) {
	return s.mutate(ctx, taskID, ChangeUpdated, func(t *model.Task) error {
		i := subtaskIndex(t.Subtasks, subID)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrSubtaskNotFound, subID)
		}
		t.Subtasks[i].Completed = !t.Subtasks[i].Completed
		return nil
	})
}

func (s *Service) RenameSubtask(ctx context.Context, taskID, subID, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}
	return s.mutate(ctx, taskID, ChangeUpdated, func(t *model.Task) error {
		i := subtaskIndex(t.Subtasks, subID)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrSubtaskNotFound, subID)
		}
		t.Subtasks[i].Title = title
		return nil
	})
}

// DeleteSubtask removes a subtask together with everything nested below it.
func (s *Service) DeleteSubtask(ctx context.Context, taskID, subID string) (model.Task, error) {
	return s.mutate(ctx, taskID, ChangeUpdated, func(t *model.Task) error {
		if subtaskIndex(t.Subtasks, subID) < 0 {
			return fmt.Errorf("%w: %q", ErrSubtaskNotFound, subID)
		}
		drop := model.Descendants(t.Subtasks, subID)
		t.Subtasks = slices.DeleteFunc(t.Subtasks, func(sub model.Subtask) bool { return drop[sub.ID] })
		return nil
	})
}

func subtaskIndex(subs []model.Subtask, id string) int {
	return slices.IndexFunc(subs, func(sub model.Subtask) bool { return sub.ID == id })
}
