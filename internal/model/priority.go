package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxPriorityNameLen = 20
	MaxCustomEntries   = 10
	FallbackColor      = "gray"
)

var (
	ErrEmptyName      = errors.New("model: name is required")
	ErrNameTooLong    = errors.New("model: name too long")
	ErrDuplicateLabel = errors.New("model: label already exists")
)

// Reserved priorities, most severe first.
var PresetPriorities = []CustomPriority{
	{Name: "Priority 1", Color: "red"},
	{Name: "Priority 2", Color: "orange"},
	{Name: "Priority 3", Color: "yellow"},
	{Name: "Priority 4", Color: "green"},
	{Name: "Priority 5", Color: "blue"},
	{Name: "Priority 6", Color: "purple"},
}

type CustomPriority struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

func (p CustomPriority) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len([]rune(name)) > MaxPriorityNameLen {
		return fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	return nil
}

// IsPresetPriority reports whether name is one of the reserved levels.
func IsPresetPriority(name string) bool {
	for _, p := range PresetPriorities {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PriorityColor resolves a priority name against the presets and then the
// custom registry. Unknown names get FallbackColor.
func PriorityColor(name string, custom []CustomPriority) string {
	for _, p := range PresetPriorities {
		if p.Name == name {
			return p.Color
		}
	}
	for _, p := range custom {
		if p.Name == name && p.Color != "" {
			return p.Color
		}
	}
	return FallbackColor
}

// CustomReminder is a recently used free-text reminder.
type CustomReminder struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// PresetReminders are offered before any custom entries.
var PresetReminders = []CustomReminder{
	{Value: ReminderAtTime, Label: "At time of task"},
	{Value: "10m", Label: "10 minutes before"},
	{Value: "30m", Label: "30 minutes before"},
	{Value: "1h", Label: "1 hour before"},
}
