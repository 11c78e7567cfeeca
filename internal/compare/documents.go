package compare

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jcmp/internal/differ"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
)

// Side names the document a decoding failure belongs to.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// DocumentError reports a document that failed to decode. It wraps the
// decoder's *jsonvalue.ParseError.
type DocumentError struct {
	Side Side
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s document: %v", e.Side, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Decode parses one side of a comparison.
func Decode(side Side, format jsonvalue.Format, data []byte, opts ...jsonvalue.DecodeOption) (jsonvalue.Value, error) {
	v, err := jsonvalue.ParseAs(format, data, opts...)
	if err != nil {
		return jsonvalue.Value{}, &DocumentError{Side: side, Err: err}
	}
	return v, nil
}

// Documents decodes two raw documents and runs Full on them. The left
// document is decoded first and its error wins.
func Documents(format jsonvalue.Format, left, right []byte, opts ...jsonvalue.DecodeOption) (differ.Result, error) {
	l, err := Decode(Left, format, left, opts...)
	if err != nil {
		return differ.Result{}, err
	}
	r, err := Decode(Right, format, right, opts...)
	if err != nil {
		return differ.Result{}, err
	}
	return Full(l, r), nil
}

// SideOf returns the side named by a *DocumentError in err's chain.
func SideOf(err error) (Side, bool) {
	var de *DocumentError
	if errors.As(err, &de) {
		return de.Side, true
	}
	return "", false
}
