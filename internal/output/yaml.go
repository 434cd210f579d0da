package output

import (
	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/taskview"
	"gopkg.in/yaml.v3"
)

type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func marshalYAML(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "error: " + err.Error() + "\n"
	}
	return string(data)
}

func (f *YAMLFormatter) FormatTask(t model.Task) string {
	return marshalYAML(toTaskDoc(t))
}

func (f *YAMLFormatter) FormatView(scope taskview.Scope, v taskview.View) string {
	return marshalYAML(toViewDoc(scope, v))
}

func (f *YAMLFormatter) FormatError(err error) string {
	return marshalYAML(errorDoc{Error: err.Error()})
}

func (f *YAMLFormatter) FormatMessage(msg string) string {
	return marshalYAML(messageDoc{Message: msg})
}
