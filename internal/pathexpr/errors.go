package pathexpr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExpression is matched by path errors raised while parsing.
	ErrMalformedExpression = errors.New("malformed path expression")

	// ErrNotFound is matched by path errors raised while walking a tree.
	ErrNotFound = errors.New("path not found")
)

// ErrorKind classifies a PathError.
type ErrorKind int

const (
	MalformedExpression ErrorKind = iota + 1
	NotFound
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedExpression:
		return "malformed_expression"
	case NotFound:
		return "not_found"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// PathError is returned by Parse, Evaluate and Select.
type PathError struct {
	Kind ErrorKind

	// Expr and Offset locate a MalformedExpression; Offset is -1 when the
	// failure has no single position.
	Expr   string
	Offset int

	// Segment is the step that could not be resolved and Path the prefix
	// that was resolved before it. Both are set for NotFound.
	Segment Segment
	Path    Path

	Reason string
}

func (e *PathError) Error() string {
	switch e.Kind {
	case MalformedExpression:
		if e.Offset >= 0 {
			return fmt.Sprintf("%v %q at offset %d: %s", ErrMalformedExpression, e.Expr, e.Offset, e.Reason)
		}
		return fmt.Sprintf("%v %q: %s", ErrMalformedExpression, e.Expr, e.Reason)
	case NotFound:
		at := "root"
		if len(e.Path) > 0 {
			at = fmt.Sprintf("%q", e.Path.String())
		}
		return fmt.Sprintf("%v: segment %q at %s: %s", ErrNotFound, e.Segment.String(), at, e.Reason)
	default:
		return e.Reason
	}
}

func (e *PathError) Is(target error) bool {
	switch e.Kind {
	case MalformedExpression:
		return target == ErrMalformedExpression
	case NotFound:
		return target == ErrNotFound
	default:
		return false
	}
}

func malformed(expr string, offset int, reason string) *PathError {
	return &PathError{Kind: MalformedExpression, Expr: expr, Offset: offset, Reason: reason}
}
