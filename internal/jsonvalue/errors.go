package jsonvalue

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("jsonvalue: parse error")

	// ErrInvalidNumber indicates a literal that is not a JSON number.
	ErrInvalidNumber = errors.New("jsonvalue: invalid number")

	// ErrUnsupportedType indicates a Go value with no JSON counterpart.
	ErrUnsupportedType = errors.New("jsonvalue: unsupported type")

	// ErrMaxDepth indicates a document nested deeper than the decoder allows.
	ErrMaxDepth = errors.New("jsonvalue: maximum nesting depth exceeded")
)

// ParseError reports a document that could not be turned into a Value.
type ParseError struct {
	Format Format
	// Offset is the byte offset of the failure, or -1 when unknown.
	Offset int64
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid %s at offset %d: %s", e.Format, e.Offset, msg)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
