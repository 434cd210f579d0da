// Package taskview derives the visible task list from the stored lists:
// scope selection, filtering, sorting and creation-date grouping.
package taskview

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/kario/internal/model"
)

type Scope string

const (
	ScopeTotal     Scope = "total"
	ScopePending   Scope = "pending"
	ScopeCompleted Scope = "completed"
	ScopeDrafts    Scope = "drafts"
	ScopeDeleted   Scope = "deleted"
)

var Scopes = []Scope{ScopeTotal, ScopePending, ScopeCompleted, ScopeDrafts, ScopeDeleted}

func (s Scope) IsValid() bool {
	switch s {
	case ScopeTotal, ScopePending, ScopeCompleted, ScopeDrafts, ScopeDeleted:
		return true
	default:
		return false
	}
}

func ParseScope(v string) (Scope, error) {
	s := Scope(strings.ToLower(strings.TrimSpace(v)))
	if s == "all" || s == "" {
		s = ScopeTotal
	}
	if !s.IsValid() {
		return "", fmt.Errorf("taskview: unknown scope %q", v)
	}
	return s, nil
}

// Includes reports whether a live task belongs to the scope. Drafts only
// ever show up in ScopeDrafts; ScopeDeleted reads the deleted list instead.
func (s Scope) Includes(t model.Task) bool {
	switch s {
	case ScopeDrafts:
		return t.IsDraft
	case ScopeCompleted:
		return t.Completed && !t.IsDraft
	case ScopePending:
		return !t.Completed && !t.IsDraft
	case ScopeTotal:
		return !t.IsDraft
	default:
		return false
	}
}

// Stats are the header counters.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Pending   int `json:"pending" yaml:"pending"`
	Completed int `json:"completed" yaml:"completed"`
	Drafts    int `json:"drafts" yaml:"drafts"`
	Deleted   int `json:"deleted" yaml:"deleted"`
}

func Counts(live []model.Task, deleted []model.DeletedTask) Stats {
	st := Stats{Deleted: len(deleted)}
	for _, t := range live {
		if t.IsDraft {
			st.Drafts++
			continue
		}
		st.Total++
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
		}
	}
	return st
}

func (st Stats) For(s Scope) int {
	switch s {
	case ScopePending:
		return st.Pending
	case ScopeCompleted:
		return st.Completed
	case ScopeDrafts:
		return st.Drafts
	case ScopeDeleted:
		return st.Deleted
	default:
		return st.Total
	}
}
