package output

import (
	"encoding/json"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/taskview"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

func (f *JSONFormatter) FormatTask(t model.Task) string {
	return marshalJSON(toTaskDoc(t))
}

func (f *JSONFormatter) FormatView(scope taskview.Scope, v taskview.View) string {
	return marshalJSON(toViewDoc(scope, v))
}

func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorDoc{Error: err.Error()})
}

func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageDoc{Message: msg})
}
