package jsonvalue

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes a single YAML document into a Value. Mapping order is
// preserved; non-string mapping keys are rendered as text.
func ParseYAML(data []byte, opts ...DecodeOption) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, &ParseError{Format: FormatYAML, Offset: 0, Msg: "empty document"}
	}

	o := newDecodeOptions(opts)

	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return Value{}, &ParseError{Format: FormatYAML, Offset: -1, Err: err}
	}

	v, err := fromInterface(doc, 0, o.maxDepth)
	if err != nil {
		return Value{}, &ParseError{Format: FormatYAML, Offset: -1, Err: err}
	}
	return v, nil
}

// MarshalYAML renders v for go-yaml with object order preserved.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNative(), nil
}

func (v Value) yamlNative() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindString:
		return v.text
	case KindNumber:
		if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(v.text, 10, 64); err == nil {
			return n
		}
		// YAML output is for reading; literals beyond float64 precision are
		// rounded here and only the JSON encoding keeps them verbatim.
		if f, ok := v.Float64(); ok {
			return f
		}
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.yamlNative()
		}
		return out
	case KindObject:
		out := make(yaml.MapSlice, len(v.members))
		for i, m := range v.members {
			out[i] = yaml.MapItem{Key: m.Key, Value: m.Value.yamlNative()}
		}
		return out
	default:
		return nil
	}
}
