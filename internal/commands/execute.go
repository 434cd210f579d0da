package commands

import "fmt"

type Result struct {
	Message string
}

// Handlers binds each command to its implementation. A nil handler makes
// the command fail with ErrCodeHandlerMissing.
type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Due      func(DueArgs) (Result, error)
	At       func(AtArgs) (Result, error)
	Remind   func(RemindArgs) (Result, error)
	Repeat   func(RepeatArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Label    func(LabelArgs) (Result, error)
	Desc     func(DescArgs) (Result, error)
	Sub      func(SubArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Sort     func(SortArgs) (Result, error)
	View     func(ViewArgs) (Result, error)
	Purge    func() (Result, error)
}

func Execute(cmd Command, h Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd, TypeDraft:
		return call(cmd.Type, h.Add, cmd.Add)
	case TypeDue:
		return call(cmd.Type, h.Due, cmd.Due)
	case TypeAt:
		return call(cmd.Type, h.At, cmd.At)
	case TypeRemind:
		return call(cmd.Type, h.Remind, cmd.Remind)
	case TypeRepeat:
		return call(cmd.Type, h.Repeat, cmd.Repeat)
	case TypePriority:
		return call(cmd.Type, h.Priority, cmd.Priority)
	case TypeLabel:
		return call(cmd.Type, h.Label, cmd.Label)
	case TypeDesc:
		return call(cmd.Type, h.Desc, cmd.Desc)
	case TypeSub:
		return call(cmd.Type, h.Sub, cmd.Sub)
	case TypeFilter:
		return call(cmd.Type, h.Filter, cmd.Filter)
	case TypeSort:
		return call(cmd.Type, h.Sort, cmd.Sort)
	case TypeView:
		return call(cmd.Type, h.View, cmd.View)
	case TypePurge:
		if h.Purge == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Purge()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call[A any](t Type, fn func(A) (Result, error), args *A) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s has no arguments", t)}
	}
	return fn(*args)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
