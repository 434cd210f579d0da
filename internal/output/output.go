// Package output renders tasks for the non-interactive CLI.
package output

import (
	"fmt"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/taskview"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t model.Task) string
	FormatView(scope taskview.Scope, v taskview.View) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func New(f Format) (Formatter, error) {
	switch f {
	case FormatHuman, "":
		return NewHumanFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("output: unknown format %q", f)
	}
}

// taskDoc is the machine-readable shape shared by the JSON and YAML
// formatters.
type taskDoc struct {
	model.Task `yaml:",inline"`
	DeletedAt  string `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
	ReminderAt string `json:"reminderLabel,omitempty" yaml:"reminderLabel,omitempty"`
}

type viewDoc struct {
	Scope  taskview.Scope `json:"scope" yaml:"scope"`
	Stats  taskview.Stats `json:"stats" yaml:"stats"`
	Tasks  []taskDoc      `json:"tasks" yaml:"tasks"`
	Groups []groupDoc     `json:"groups,omitempty" yaml:"groups,omitempty"`
}

type groupDoc struct {
	Date  string   `json:"date" yaml:"date"`
	Tasks []string `json:"tasks" yaml:"tasks"`
}

func toTaskDoc(t model.Task) taskDoc {
	d := taskDoc{Task: t}
	if t.Reminder != "" {
		d.ReminderAt = model.ReminderLabel(t.Reminder)
	}
	return d
}

func toViewDoc(scope taskview.Scope, v taskview.View) viewDoc {
	doc := viewDoc{Scope: scope, Stats: v.Stats, Tasks: make([]taskDoc, 0, len(v.Rows))}
	for _, r := range v.Rows {
		d := toTaskDoc(r.Task)
		if !r.DeletedAt.IsZero() {
			d.DeletedAt = r.DeletedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		doc.Tasks = append(doc.Tasks, d)
	}
	for _, g := range v.Groups {
		gd := groupDoc{Date: g.Date}
		for _, t := range g.Tasks {
			gd.Tasks = append(gd.Tasks, t.ID)
		}
		doc.Groups = append(doc.Groups, gd)
	}
	return doc
}

type errorDoc struct {
	Error string `json:"error" yaml:"error"`
}

type messageDoc struct {
	Message string `json:"message" yaml:"message"`
}
