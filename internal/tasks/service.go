// Package tasks owns the live and deleted task lists: creation, editing,
// completion, soft delete, restore, purge, reordering and subtasks, plus
// the priority, label and reminder registries.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/storage"
	"github.com/sandeepkv93/kario/internal/taskview"
)

const DefaultRetention = 7 * 24 * time.Hour

var (
	ErrNotFound              = errors.New("tasks: task not found")
	ErrSubtaskNotFound       = errors.New("tasks: subtask not found")
	ErrTitleRequired         = errors.New("tasks: title is required")
	ErrDraftNotCompletable   = errors.New("tasks: drafts cannot be completed")
	ErrReminderNeedsSchedule = errors.New("tasks: reminder needs a due date and time")
)

type ChangeKind string

const (
	ChangeCreated  ChangeKind = "created"
	ChangeUpdated  ChangeKind = "updated"
	ChangeToggled  ChangeKind = "toggled"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRestored ChangeKind = "restored"
	ChangePurged   ChangeKind = "purged"
	ChangeMoved    ChangeKind = "moved"
	ChangeRegistry ChangeKind = "registry"
	ChangeSettings ChangeKind = "settings"
)

// Change is delivered to subscribers after a mutation has been persisted.
type Change struct {
	Kind   ChangeKind
	TaskID string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(next func() string) Option {
	return func(s *Service) { s.newID = next }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRetention sets how long deleted tasks survive before Purge drops them.
func WithRetention(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.retention = d
		}
	}
}

type Service struct {
	mu        sync.Mutex
	store     storage.Store
	now       func() time.Time
	newID     func() string
	log       *slog.Logger
	retention time.Duration

	live       []model.Task
	deleted    []model.DeletedTask
	priorities []model.CustomPriority
	labels     []model.CustomLabel
	reminders  []model.CustomReminder

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Open loads every list from store. Missing or unreadable values start
// empty.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("tasks: nil store")
	}
	s := &Service{
		store:     store,
		now:       time.Now,
		newID:     newID,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		retention: DefaultRetention,
		subs:      make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload(ctx)
	return s, nil
}

// Reload re-reads the stored lists, discarding the in-memory snapshot.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = storage.Load(ctx, s.store, storage.KeyTasks, []model.Task{})
	s.deleted = storage.Load(ctx, s.store, storage.KeyDeletedTasks, []model.DeletedTask{})
	s.priorities = storage.Load(ctx, s.store, storage.KeyCustomPriorities, []model.CustomPriority{})
	s.labels = storage.Load(ctx, s.store, storage.KeyLabels, []model.CustomLabel{})
	s.reminders = storage.Load(ctx, s.store, storage.KeyCustomReminders, []model.CustomReminder{})
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Subscribe registers fn for change notifications and returns a func that
// removes it. fn runs on the mutating goroutine after the lock is released.
func (s *Service) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Service) publish(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Tasks returns a copy of the live list in stored order.
func (s *Service) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.live))
	for i, t := range s.live {
		out[i] = t.Clone()
	}
	return out
}

// Deleted returns a copy of the deleted list.
func (s *Service) Deleted() []model.DeletedTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DeletedTask, len(s.deleted))
	for i, d := range s.deleted {
		out[i] = model.DeletedTask{Task: d.Task.Clone(), DeletedAt: d.DeletedAt}
	}
	return out
}

// Task looks up a live task by id.
func (s *Service) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.live[i].Clone(), true
}

// View derives the visible list for q from the current snapshot.
func (s *Service) View(q taskview.Query) taskview.View {
	if q.Now.IsZero() {
		q.Now = s.now()
	}
	return taskview.Derive(s.Tasks(), s.Deleted(), q)
}

// Resolve finds a live or deleted task by full id or by an unambiguous id
// prefix or suffix. Ids are time ordered, so the suffix is the part that
// tells recent tasks apart.
func (s *Service) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.live)+len(s.deleted))
	for _, t := range s.live {
		ids = append(ids, t.ID)
	}
	for _, d := range s.deleted {
		ids = append(ids, d.ID)
	}
	if slices.Contains(ids, ref) {
		return ref, nil
	}
	var hits []string
	for _, id := range ids {
		if strings.HasPrefix(id, ref) || strings.HasSuffix(id, ref) {
			hits = append(hits, id)
		}
	}
	switch len(hits) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
	case 1:
		return hits[0], nil
	default:
		return "", fmt.Errorf("tasks: id %q is ambiguous", ref)
	}
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.live, func(t model.Task) bool { return t.ID == id })
}

func (s *Service) deletedIndexOf(id string) int {
	return slices.IndexFunc(s.deleted, func(d model.DeletedTask) bool { return d.ID == id })
}

// commit persists both task lists in one batch and then swaps them in.
// Callers hold s.mu.
func (s *Service) commit(ctx context.Context, live []model.Task, deleted []model.DeletedTask) error {
	liveRaw, err := storage.Encode(live)
	if err != nil {
		return err
	}
	deletedRaw, err := storage.Encode(deleted)
	if err != nil {
		return err
	}
	if err := s.store.PutMany(ctx, map[string]string{
		storage.KeyTasks:        liveRaw,
		storage.KeyDeletedTasks: deletedRaw,
	}); err != nil {
		return fmt.Errorf("tasks: persist: %w", err)
	}
	s.live = live
	s.deleted = deleted
	return nil
}

// mutate applies fn to a copy of the live task id and commits the result.
func (s *Service) mutate(ctx context.Context, id string, kind ChangeKind, fn func(*model.Task) error) (model.Task, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	t := s.live[i].Clone()
	if err := fn(&t); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	if err := t.Validate(); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	live := slices.Clone(s.live)
	live[i] = t
	err := s.commit(ctx, live, s.deleted)
	s.mu.Unlock()
	if err != nil {
		return model.Task{}, err
	}
	s.publish(Change{Kind: kind, TaskID: id})
	return t.Clone(), nil
}
