package differ

import (
	"encoding/json"
	"fmt"

	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathexpr"
)

// Kind classifies a difference record.
type Kind uint8

const (
	// MissingInRight marks a member or element only the left document has.
	MissingInRight Kind = iota + 1
	// ExtraInRight marks a member or element only the right document has.
	ExtraInRight
	// ValueMismatch marks unequal scalars or nodes of different shape classes.
	ValueMismatch
)

var kindNames = map[Kind]string{
	MissingInRight: "missing_in_right",
	ExtraInRight:   "extra_in_right",
	ValueMismatch:  "value_mismatch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("differ: unknown kind %d", uint8(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("differ: unknown kind %q", text)
}

// Record is one point of divergence. Left is nil for ExtraInRight and Right
// is nil for MissingInRight; a ValueMismatch carries both full subtrees.
type Record struct {
	Path  pathexpr.Path
	Kind  Kind
	Left  *jsonvalue.Value
	Right *jsonvalue.Value
}

type recordJSON struct {
	Path     string           `json:"path"`
	Segments pathexpr.Path    `json:"segments"`
	Kind     Kind             `json:"kind"`
	Left     *jsonvalue.Value `json:"left,omitempty"`
	Right    *jsonvalue.Value `json:"right,omitempty"`
}

// MarshalJSON encodes the path both as its canonical string and as a segment
// array, and the values verbatim.
func (r Record) MarshalJSON() ([]byte, error) {
	segments := r.Path
	if segments == nil {
		segments = pathexpr.Path{}
	}
	return json.Marshal(recordJSON{
		Path:     r.Path.String(),
		Segments: segments,
		Kind:     r.Kind,
		Left:     r.Left,
		Right:    r.Right,
	})
}

// Result is the outcome of Diff.
type Result struct {
	Differences []Record
}

// Equal is true exactly when there are no differences.
func (r Result) Equal() bool {
	return len(r.Differences) == 0
}

// Count returns the number of records of the given kind.
func (r Result) Count(kind Kind) int {
	n := 0
	for _, rec := range r.Differences {
		if rec.Kind == kind {
			n++
		}
	}
	return n
}

type resultJSON struct {
	Equal       bool     `json:"equal"`
	Differences []Record `json:"differences"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	differences := r.Differences
	if differences == nil {
		differences = []Record{}
	}
	return json.Marshal(resultJSON{Equal: r.Equal(), Differences: differences})
}
