package pathexpr

import (
	"fmt"

	"github.com/jacoelho/jcmp/internal/jsonvalue"
)

// Evaluate resolves path against tree. The work is bounded by the length of
// the path, not the size of the tree. An empty path returns tree itself.
//
// A field segment on a non-object or a missing member, and an index segment
// on a non-array or outside the array, fail with a NotFound *PathError that
// names the segment and the prefix resolved before it.
func Evaluate(tree jsonvalue.Value, path Path) (jsonvalue.Value, error) {
	current := tree
	for i, seg := range path {
		next, reason, ok := step(current, seg)
		if !ok {
			return jsonvalue.Value{}, &PathError{
				Kind:    NotFound,
				Segment: seg,
				Path:    path[:i:i].Append(),
				Reason:  reason,
			}
		}
		current = next
	}
	return current, nil
}

// EvaluateString parses expr and evaluates it against tree. Syntax errors are
// reported before the tree is touched.
func EvaluateString(tree jsonvalue.Value, expr string) (jsonvalue.Value, error) {
	path, err := Parse(expr)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	return Evaluate(tree, path)
}

func step(node jsonvalue.Value, seg Segment) (jsonvalue.Value, string, bool) {
	if i, ok := seg.ArrayIndex(); ok {
		if node.Kind() != jsonvalue.KindArray {
			return jsonvalue.Value{}, fmt.Sprintf("expected array, found %s", node.Kind()), false
		}
		child, ok := node.Index(i)
		if !ok {
			return jsonvalue.Value{}, fmt.Sprintf("index out of range (length %d)", node.Len()), false
		}
		return child, "", true
	}

	name, _ := seg.FieldName()
	if node.Kind() != jsonvalue.KindObject {
		return jsonvalue.Value{}, fmt.Sprintf("expected object, found %s", node.Kind()), false
	}
	child, ok := node.Get(name)
	if !ok {
		return jsonvalue.Value{}, "no such field", false
	}
	return child, "", true
}
