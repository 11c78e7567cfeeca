// Package compare is the entry point for comparing documents: a full
// structural diff, equality of two documents at a path, and equality of a
// document's value at a path with an expected literal.
//
// Every function is pure and safe for concurrent use on independent inputs.
package compare

import (
	"github.com/jacoelho/jcmp/internal/differ"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathexpr"
)

// Full lists every difference between left and right.
func Full(left, right jsonvalue.Value) differ.Result {
	return differ.Diff(left, right)
}

// AtPath reports whether left and right hold deep-equal values at path.
// The path is resolved on left first; the first resolution error is returned
// as is. Nothing outside path influences the answer.
func AtPath(left, right jsonvalue.Value, path pathexpr.Path) (bool, error) {
	l, err := pathexpr.Evaluate(left, path)
	if err != nil {
		return false, err
	}
	r, err := pathexpr.Evaluate(right, path)
	if err != nil {
		return false, err
	}
	return jsonvalue.Equal(l, r), nil
}

// ValueAtPath reports whether the value of tree at path is deep-equal to
// expected. Types must match exactly: the number 30 does not equal "30".
func ValueAtPath(tree jsonvalue.Value, path pathexpr.Path, expected jsonvalue.Value) (bool, error) {
	v, err := pathexpr.Evaluate(tree, path)
	if err != nil {
		return false, err
	}
	return jsonvalue.Equal(v, expected), nil
}

// AtExpression is AtPath with a textual path expression.
func AtExpression(left, right jsonvalue.Value, expr string) (bool, error) {
	path, err := pathexpr.Parse(expr)
	if err != nil {
		return false, err
	}
	return AtPath(left, right, path)
}

// ValueAtExpression is ValueAtPath with a textual path expression.
func ValueAtExpression(tree jsonvalue.Value, expr string, expected jsonvalue.Value) (bool, error) {
	path, err := pathexpr.Parse(expr)
	if err != nil {
		return false, err
	}
	return ValueAtPath(tree, path, expected)
}
