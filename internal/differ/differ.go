// Package differ compares two document trees and lists every divergence.
//
// Records come out in traversal order: object members in the left
// document's order followed by members only the right document has, array
// elements by ascending index. A shape mismatch is reported once at the node
// where it occurs and its children are not visited.
package differ

import (
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathexpr"
)

// Diff compares left and right. Mismatches are data, not errors: Diff has no
// failure mode and does not modify its inputs.
func Diff(left, right jsonvalue.Value) Result {
	w := &walker{}
	w.walk(left, right)
	return Result{Differences: w.records}
}

type walker struct {
	path    []pathexpr.Segment
	records []Record
}

// walk never emits for deep-equal subtrees: containers of the same kind only
// produce records from their children, and scalars are compared directly.
func (w *walker) walk(left, right jsonvalue.Value) {
	switch {
	case left.Kind() == jsonvalue.KindObject && right.Kind() == jsonvalue.KindObject:
		w.objects(left, right)
	case left.Kind() == jsonvalue.KindArray && right.Kind() == jsonvalue.KindArray:
		w.arrays(left, right)
	case !jsonvalue.Equal(left, right):
		w.emit(ValueMismatch, &left, &right)
	}
}

func (w *walker) objects(left, right jsonvalue.Value) {
	for key, lv := range left.Members() {
		w.push(pathexpr.Field(key))
		if rv, ok := right.Get(key); ok {
			w.walk(lv, rv)
		} else {
			w.emit(MissingInRight, &lv, nil)
		}
		w.pop()
	}

	for key, rv := range right.Members() {
		if left.Has(key) {
			continue
		}
		w.push(pathexpr.Field(key))
		w.emit(ExtraInRight, nil, &rv)
		w.pop()
	}
}

func (w *walker) arrays(left, right jsonvalue.Value) {
	n := max(left.Len(), right.Len())
	for i := range n {
		lv, inLeft := left.Index(i)
		rv, inRight := right.Index(i)

		w.push(pathexpr.Elem(i))
		switch {
		case inLeft && inRight:
			w.walk(lv, rv)
		case inLeft:
			w.emit(MissingInRight, &lv, nil)
		default:
			w.emit(ExtraInRight, nil, &rv)
		}
		w.pop()
	}
}

func (w *walker) push(seg pathexpr.Segment) {
	w.path = append(w.path, seg)
}

func (w *walker) pop() {
	w.path = w.path[:len(w.path)-1]
}

// emit snapshots the current path; the walker keeps reusing its buffer.
func (w *walker) emit(kind Kind, left, right *jsonvalue.Value) {
	w.records = append(w.records, Record{
		Path:  append(pathexpr.Path{}, w.path...),
		Kind:  kind,
		Left:  left,
		Right: right,
	})
}
