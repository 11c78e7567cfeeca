// Package patch turns a difference list into an RFC 6902 JSON Patch that
// rewrites the left document into the right one, and applies such patches.
package patch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/jacoelho/jcmp/internal/differ"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathexpr"
)

const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
)

// Operation is a single JSON Patch step.
type Operation struct {
	Op    string           `json:"op"`
	Path  string           `json:"path"`
	Value *jsonvalue.Value `json:"value,omitempty"`
}

// FromResult converts differences into patch operations. Removals are
// emitted after everything else, in reverse order, so array indices stay
// valid while elements are dropped from the tail.
func FromResult(result differ.Result) []Operation {
	ops := make([]Operation, 0, len(result.Differences))
	var removals []Operation

	for _, rec := range result.Differences {
		pointer := Pointer(rec.Path)
		switch rec.Kind {
		case differ.ValueMismatch:
			ops = append(ops, Operation{Op: OpReplace, Path: pointer, Value: rec.Right})
		case differ.ExtraInRight:
			ops = append(ops, Operation{Op: OpAdd, Path: pointer, Value: rec.Right})
		case differ.MissingInRight:
			removals = append(removals, Operation{Op: OpRemove, Path: pointer})
		}
	}

	for i := len(removals) - 1; i >= 0; i-- {
		ops = append(ops, removals[i])
	}
	return ops
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders path as an RFC 6901 JSON Pointer. The root is "".
func Pointer(path pathexpr.Path) string {
	var b strings.Builder
	for _, seg := range path {
		b.WriteByte('/')
		if i, ok := seg.ArrayIndex(); ok {
			b.WriteString(strconv.Itoa(i))
			continue
		}
		name, _ := seg.FieldName()
		b.WriteString(pointerEscaper.Replace(name))
	}
	return b.String()
}

// Apply runs ops against doc and returns the patched document. A replace of
// the root pointer swaps the whole document.
func Apply(doc jsonvalue.Value, ops []Operation) (jsonvalue.Value, error) {
	pending := make([]Operation, 0, len(ops))

	for _, op := range ops {
		if op.Path == "" && op.Op == OpReplace && op.Value != nil {
			pending = pending[:0]
			doc = *op.Value
			continue
		}
		pending = append(pending, op)
	}

	if len(pending) == 0 {
		return doc, nil
	}
	return applyJSON(doc, pending)
}

func applyJSON(doc jsonvalue.Value, ops []Operation) (jsonvalue.Value, error) {
	raw, err := json.Marshal(ops)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("encode patch: %w", err)
	}

	decoded, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("decode patch: %w", err)
	}

	original, err := doc.MarshalJSON()
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("encode document: %w", err)
	}

	patched, err := decoded.Apply(original)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("apply patch: %w", err)
	}

	return jsonvalue.Parse(patched)
}
