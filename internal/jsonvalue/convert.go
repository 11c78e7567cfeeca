package jsonvalue

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
)

// FromInterface converts a decoded Go value into a Value. It accepts the
// shapes produced by encoding/json and go-yaml: nil, bool, string, the
// numeric kinds, json.Number, map[string]any, yaml.MapSlice and []any.
// Plain Go maps carry no order, so their members are sorted by key.
func FromInterface(v any) (Value, error) {
	return fromInterface(v, 0, DefaultMaxDepth)
}

func fromInterface(v any, depth, maxDepth int) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String())
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	}

	if depth >= maxDepth {
		return Value{}, ErrMaxDepth
	}

	switch t := v.(type) {
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			converted, err := fromInterface(item, depth+1, maxDepth)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = converted
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		members := make([]Member, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			converted, err := fromInterface(t[key], depth+1, maxDepth)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			members = append(members, Member{Key: key, Value: converted})
		}
		return Object(members...), nil
	case yaml.MapSlice:
		members := make([]Member, 0, len(t))
		for _, item := range t {
			key := mapKey(item.Key)
			converted, err := fromInterface(item.Value, depth+1, maxDepth)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			members = append(members, Member{Key: key, Value: converted})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// mapKey renders a YAML mapping key; JSON only has string keys.
func mapKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	if key == nil {
		return "null"
	}
	return fmt.Sprint(key)
}

// Interface converts v into the generic shapes used by encoding/json:
// map[string]any, []any, string, bool, nil and json.Number.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return json.Number(v.text)
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
