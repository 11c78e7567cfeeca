package pathexpr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/theory/jsonpath"
)

// Select runs an RFC 9535 JSONPath query (wildcards, slices, filters,
// descendant segments) and returns every matching node.
//
// Matched objects come back with their members sorted by key: the query
// engine works on Go maps, which carry no member order.
func Select(tree jsonvalue.Value, expr string) ([]jsonvalue.Value, error) {
	query, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, &PathError{Kind: MalformedExpression, Expr: expr, Offset: -1, Reason: err.Error()}
	}

	nodes := query.Select(native(tree))
	out := make([]jsonvalue.Value, 0, len(nodes))
	for i, node := range nodes {
		v, err := jsonvalue.FromInterface(node)
		if err != nil {
			return nil, fmt.Errorf("select %q: node %d: %w", expr, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// native converts a tree into the generic shapes the query engine filters
// on. Integral numbers become int64 and the rest float64 so that filter
// comparisons see ordinary Go numbers.
func native(v jsonvalue.Value) any {
	switch v.Kind() {
	case jsonvalue.KindBool:
		b, _ := v.AsBool()
		return b
	case jsonvalue.KindString:
		s, _ := v.AsString()
		return s
	case jsonvalue.KindNumber:
		lit, _ := v.AsNumber()
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n
		}
		f, _ := v.Float64()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f)
		}
		return f
	case jsonvalue.KindArray:
		out := make([]any, 0, v.Len())
		for _, item := range v.Elements() {
			out = append(out, native(item))
		}
		return out
	case jsonvalue.KindObject:
		out := make(map[string]any, v.Len())
		for key, member := range v.Members() {
			out[key] = native(member)
		}
		return out
	default:
		return nil
	}
}
