package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/kario/internal/model"
	"github.com/sandeepkv93/kario/internal/phrase"
	"github.com/sandeepkv93/kario/internal/taskview"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDraft    Type = "draft"
	TypeDue      Type = "due"
	TypeAt       Type = "at"
	TypeRemind   Type = "remind"
	TypeRepeat   Type = "repeat"
	TypePriority Type = "priority"
	TypeLabel    Type = "label"
	TypeDesc     Type = "desc"
	TypeSub      Type = "sub"
	TypeFilter   Type = "filter"
	TypeSort     Type = "sort"
	TypeView     Type = "view"
	TypePurge    Type = "purge"
)

// Names lists the palette verbs for completion and help.
var Names = []Type{
	TypeAdd, TypeDraft, TypeDue, TypeAt, TypeRemind, TypeRepeat, TypePriority,
	TypeLabel, TypeDesc, TypeSub, TypeFilter, TypeSort, TypeView, TypePurge,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, a ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, a...)}
}

type AddArgs struct {
	Title string
	Draft bool
}

// DueArgs carries a DD/MM/YYYY day; Clear removes the due date.
type DueArgs struct {
	Day   string
	Clear bool
}

type AtArgs struct {
	Clock model.Clock
	Clear bool
}

type RemindArgs struct {
	Token string
	Clear bool
}

type RepeatArgs struct {
	Token string
	Clear bool
}

type PriorityArgs struct {
	Name string
}

type LabelArgs struct {
	Name string
}

type DescArgs struct {
	Text string
}

type SubArgs struct {
	Title string
}

type FilterKind string

const (
	FilterDate     FilterKind = "date"
	FilterPriority FilterKind = "priority"
	FilterLabel    FilterKind = "label"
)

type FilterArgs struct {
	Kind   FilterKind
	Off    bool
	Date   taskview.DatePreset
	Values []string
}

type SortKey string

const (
	SortStatus  SortKey = "status"
	SortCreated SortKey = "created"
)

type SortArgs struct {
	Key SortKey
	On  bool
}

type ViewArgs struct {
	Scope taskview.Scope
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Due      *DueArgs
	At       *AtArgs
	Remind   *RemindArgs
	Repeat   *RepeatArgs
	Priority *PriorityArgs
	Label    *LabelArgs
	Desc     *DescArgs
	Sub      *SubArgs
	Filter   *FilterArgs
	Sort     *SortArgs
	View     *ViewArgs
}

// Parse reads one palette line such as "/due mar 5" or "remind 10 minutes
// before". Relative dates resolve against now.
func Parse(input string, now time.Time) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)
	cmd := Command{Type: Type(head), Raw: input}

	switch cmd.Type {
	case TypeAdd, TypeDraft:
		if rest == "" {
			return Command{}, invalid("%s requires a title", head)
		}
		cmd.Add = &AddArgs{Title: rest, Draft: cmd.Type == TypeDraft}
	case TypeDue:
		args, err := ParseDue(rest, now)
		if err != nil {
			return Command{}, err
		}
		cmd.Due = &args
	case TypeAt:
		args, err := ParseAt(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.At = &args
	case TypeRemind:
		args, err := ParseRemind(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.Remind = &args
	case TypeRepeat:
		args, err := ParseRepeat(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.Repeat = &args
	case TypePriority:
		if rest == "" {
			return Command{}, invalid("priority requires a name or level 1-6")
		}
		cmd.Priority = &PriorityArgs{Name: PriorityName(rest)}
	case TypeLabel:
		if rest == "" {
			return Command{}, invalid("label requires a name")
		}
		if len([]rune(rest)) > model.MaxLabelNameLen {
			return Command{}, invalid("label names are at most %d characters", model.MaxLabelNameLen)
		}
		cmd.Label = &LabelArgs{Name: rest}
	case TypeDesc:
		cmd.Desc = &DescArgs{Text: rest}
	case TypeSub:
		if rest == "" {
			return Command{}, invalid("sub requires a title")
		}
		cmd.Sub = &SubArgs{Title: rest}
	case TypeFilter:
		args, err := parseFilter(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.Filter = &args
	case TypeSort:
		args, err := parseSort(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.Sort = &args
	case TypeView:
		scope, err := taskview.ParseScope(rest)
		if err != nil {
			return Command{}, invalid("unknown view %q", rest)
		}
		cmd.View = &ViewArgs{Scope: scope}
	case TypePurge:
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	return cmd, nil
}

func isClear(s string) bool {
	switch strings.ToLower(s) {
	case "clear", "none", "off":
		return true
	default:
		return false
	}
}

// ParseDue reads a literal DD/MM/YYYY day, a date phrase or "clear".
func ParseDue(rest string, now time.Time) (DueArgs, error) {
	if isClear(rest) {
		return DueArgs{Clear: true}, nil
	}
	if d, ok := model.ParseDayIn(rest, now.Location()); ok {
		return DueArgs{Day: model.FormatDay(d)}, nil
	}
	d, ok := phrase.Date(rest, now)
	if !ok {
		return DueArgs{}, invalid("cannot read date %q", rest)
	}
	return DueArgs{Day: model.FormatDay(d)}, nil
}

func ParseAt(rest string) (AtArgs, error) {
	if isClear(rest) {
		return AtArgs{Clear: true}, nil
	}
	c, ok := phrase.Clock(rest)
	if !ok {
		return AtArgs{}, invalid("cannot read time %q", rest)
	}
	return AtArgs{Clock: c}, nil
}

func ParseRemind(rest string) (RemindArgs, error) {
	if isClear(rest) {
		return RemindArgs{Clear: true}, nil
	}
	if r, err := model.ParseReminderToken(strings.ToLower(strings.TrimSpace(rest))); err == nil {
		return RemindArgs{Token: r.Token()}, nil
	}
	token, ok := phrase.Reminder(rest)
	if !ok {
		return RemindArgs{}, invalid("cannot read reminder %q", rest)
	}
	return RemindArgs{Token: token}, nil
}

func ParseRepeat(rest string) (RepeatArgs, error) {
	if isClear(rest) {
		return RepeatArgs{Clear: true}, nil
	}
	token, ok := phrase.Repeat(rest)
	if !ok {
		return RepeatArgs{}, invalid("cannot read repeat %q", rest)
	}
	return RepeatArgs{Token: token}, nil
}

// PriorityName expands a bare level such as "2" or "p2" to "Priority 2".
func PriorityName(s string) string {
	level := strings.TrimPrefix(strings.ToLower(s), "p")
	if n, err := strconv.Atoi(level); err == nil && n >= 1 && n <= len(model.PresetPriorities) {
		return model.PresetPriorities[n-1].Name
	}
	return s
}

func parseFilter(rest string) (FilterArgs, error) {
	kindWord, value, _ := strings.Cut(rest, " ")
	kind := FilterKind(strings.ToLower(kindWord))
	value = strings.TrimSpace(value)
	switch kind {
	case FilterDate, FilterPriority, FilterLabel:
	default:
		return FilterArgs{}, invalid("filter requires date, priority or label")
	}
	if value == "" || isClear(value) {
		return FilterArgs{Kind: kind, Off: true}, nil
	}
	args := FilterArgs{Kind: kind}
	switch kind {
	case FilterDate:
		preset, ok := ParseDatePreset(value)
		if !ok {
			return FilterArgs{}, invalid("unknown date range %q", value)
		}
		args.Date = preset
	case FilterPriority:
		for _, v := range splitList(value) {
			args.Values = append(args.Values, PriorityName(v))
		}
	case FilterLabel:
		args.Values = splitList(value)
	}
	return args, nil
}

func ParseDatePreset(s string) (taskview.DatePreset, bool) {
	switch strings.ToLower(s) {
	case "today":
		return taskview.DateToday, true
	case "week", "this week":
		return taskview.DateThisWeek, true
	case "7", "next 7 days", "7 days":
		return taskview.DateNext7Days, true
	case "month", "this month":
		return taskview.DateThisMonth, true
	case "30", "next 30 days", "30 days":
		return taskview.DateNext30Days, true
	default:
		return "", false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseSort(rest string) (SortArgs, error) {
	fields := strings.Fields(strings.ToLower(rest))
	if len(fields) == 0 {
		return SortArgs{}, invalid("sort requires status or created")
	}
	key := SortKey(fields[0])
	if key != SortStatus && key != SortCreated {
		return SortArgs{}, invalid("unknown sort key %q", fields[0])
	}
	on := true
	if len(fields) > 1 {
		switch fields[1] {
		case "on":
		case "off":
			on = false
		default:
			return SortArgs{}, invalid("sort takes on or off, got %q", fields[1])
		}
	}
	return SortArgs{Key: key, On: on}, nil
}
