package field

import "fmt"

type ErrorKind int

const (
	KindOutOfBounds ErrorKind = iota
	KindOverlap
	KindAlreadyChecked
	KindInvalidLifecycle
	KindInvalidLine
)

func (k ErrorKind) String() string {
	switch k {
	case KindOutOfBounds:
		return "out of bounds"
	case KindOverlap:
		return "overlap"
	case KindAlreadyChecked:
		return "already checked"
	case KindInvalidLifecycle:
		return "invalid lifecycle"
	case KindInvalidLine:
		return "invalid line"
	default:
		panic("unknown error kind")
	}
}

// Error is returned by every rule violation in the engine.
//
// Two errors match under `errors.Is` when their kinds are equal,
// so callers compare against the `Err*` sentinels below.
type Error struct {
	Kind    ErrorKind
	Details string
}

var (
	ErrOutOfBounds      error = &Error{Kind: KindOutOfBounds}
	ErrOverlap          error = &Error{Kind: KindOverlap}
	ErrAlreadyChecked   error = &Error{Kind: KindAlreadyChecked}
	ErrInvalidLifecycle error = &Error{Kind: KindInvalidLifecycle}
	ErrInvalidLine      error = &Error{Kind: KindInvalidLine}
)

func Errorf(kind ErrorKind, format string, a ...any) error {
	return &Error{
		Kind:    kind,
		Details: fmt.Sprintf(format, a...),
	}
}

func (e *Error) Is(target error) bool {
	if err, ok := target.(*Error); ok {
		return e.Kind == err.Kind
	}

	return false
}

func (e *Error) Error() string {
	if e.Details == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Details
}
