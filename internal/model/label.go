package model

import (
	"fmt"
	"strings"
)

type CustomLabel struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

func (l CustomLabel) Validate() error {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len([]rune(name)) > MaxLabelNameLen {
		return fmt.Errorf("%w: %q", ErrLabelTooLong, name)
	}
	return nil
}

var PresetLabels = []CustomLabel{
	{Name: "#ByKairo", Color: "blue"},
	{Name: "#School", Color: "green"},
	{Name: "#Work", Color: "orange"},
	{Name: "#Personal", Color: "pink"},
	{Name: "#Urgent", Color: "red"},
	{Name: "#Shopping", Color: "cyan"},
	{Name: "#Health", Color: "emerald"},
	{Name: "#Finance", Color: "amber"},
	{Name: "#Family", Color: "rose"},
	{Name: "#Projects", Color: "teal"},
}

// LabelColor looks a label up case-insensitively in the presets and then
// in custom. Unknown labels get FallbackColor.
func LabelColor(name string, custom []CustomLabel) string {
	for _, set := range [][]CustomLabel{PresetLabels, custom} {
		for _, l := range set {
			if strings.EqualFold(l.Name, name) && l.Color != "" {
				return l.Color
			}
		}
	}
	return FallbackColor
}

// ContainsLabel reports a case-insensitive name match.
func ContainsLabel(labels []CustomLabel, name string) bool {
	for _, l := range labels {
		if strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}
