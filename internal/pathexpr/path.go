// Package pathexpr locates values inside a jsonvalue tree.
//
// A path expression is a dot separated list of field names with bracketed
// array indices, such as user.addresses[0].city. Field names that cannot be
// written bare use the quoted bracket form ["a.b"] or ['a.b']. A leading $
// root marker is accepted and ignored.
//
// Expressions are parsed once into a Path, a fixed sequence of typed
// segments, and evaluated without further parsing.
package pathexpr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object field or an array index.
type Segment struct {
	name    string
	index   int
	isIndex bool
}

// Field returns a segment selecting the object member name.
func Field(name string) Segment {
	return Segment{name: name}
}

// Elem returns a segment selecting array element i. Negative indices never
// match anything.
func Elem(i int) Segment {
	return Segment{index: i, isIndex: true}
}

func (s Segment) IsIndex() bool {
	return s.isIndex
}

// FieldName returns the member name of a field segment.
func (s Segment) FieldName() (string, bool) {
	return s.name, !s.isIndex
}

// ArrayIndex returns the position of an index segment.
func (s Segment) ArrayIndex() (int, bool) {
	return s.index, s.isIndex
}

// String renders the segment on its own: a bare or quoted field name, or [n].
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	if needsQuoting(s.name) {
		return quoteField(s.name)
	}
	return s.name
}

// MarshalJSON encodes field segments as strings and index segments as numbers.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.isIndex {
		return []byte(strconv.Itoa(s.index)), nil
	}
	return json.Marshal(s.name)
}

// Path is an ordered sequence of segments. The empty Path denotes the root.
type Path []Segment

// Append returns a new Path extended by segs; p is left untouched.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the canonical form, e.g. a.b[2].c. The root renders as the
// empty string. Parse accepts every rendering it produces.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		switch {
		case seg.isIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
		case needsQuoting(seg.name):
			b.WriteString(quoteField(seg.name))
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.name)
		}
	}
	return b.String()
}

func needsQuoting(name string) bool {
	if name == "" || name == rootMarker {
		return true
	}
	if strings.TrimSpace(name) != name {
		return true
	}
	return strings.ContainsAny(name, `.[]"'\`)
}

func quoteField(name string) string {
	return "[" + strconv.Quote(name) + "]"
}
