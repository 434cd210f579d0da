package taskview

import (
	"time"

	"github.com/sandeepkv93/kario/internal/model"
)

// Query bundles everything that shapes the visible list.
type Query struct {
	Scope    Scope
	Settings FilterSettings
	Values   FilterValues
	Sort     SortSettings
	Now      time.Time
}

// Row is one visible entry. DeletedAt is set only in ScopeDeleted.
type Row struct {
	model.Task
	DeletedAt time.Time
}

// View is the derived list ready for rendering.
type View struct {
	Rows   []Row
	Groups []Group
	Stats  Stats
}

// Derive runs scope, filter, sort and (when sorting by creation date)
// grouping over the stored lists. The inputs are not modified.
func Derive(live []model.Task, deleted []model.DeletedTask, q Query) View {
	if q.Now.IsZero() {
		q.Now = time.Now()
	}
	var base []model.Task
	deletedAt := make(map[string]time.Time)
	if q.Scope == ScopeDeleted {
		base = make([]model.Task, 0, len(deleted))
		for _, d := range deleted {
			base = append(base, d.Task)
			deletedAt[d.ID] = d.DeletedAt
		}
	} else {
		base = make([]model.Task, 0, len(live))
		for _, t := range live {
			if q.Scope.Includes(t) {
				base = append(base, t)
			}
		}
	}

	filtered := Filter(base, q.Settings, q.Values, q.Now)
	sorted := Sort(filtered, q.Sort)

	v := View{Stats: Counts(live, deleted)}
	if q.Sort.CreationDate {
		v.Groups = GroupByCreation(sorted)
		for _, g := range v.Groups {
			for _, t := range g.Tasks {
				v.Rows = append(v.Rows, Row{Task: t, DeletedAt: deletedAt[t.ID]})
			}
		}
		return v
	}
	for _, t := range sorted {
		v.Rows = append(v.Rows, Row{Task: t, DeletedAt: deletedAt[t.ID]})
	}
	return v
}
