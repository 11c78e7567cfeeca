// Package jsonvalue holds the immutable document tree compared by jcmp.
//
// A Value is a closed tagged union over the six JSON shape classes. Objects
// keep their members in document order, numbers keep their literal text, and
// nothing inside a Value can be modified after construction: accessors hand
// out copies or iterators, never the backing slices.
//
// The zero Value is JSON null.
package jsonvalue

import (
	"iter"
	"math"
	"slices"
	"strconv"
)

// Kind is the shape class of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindObject: "object",
	KindArray:  "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsContainer reports whether values of this kind have children.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON document node.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents, or the literal of a number
	members []Member
	keys    map[string]int
	items   []Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a number value for a JSON number literal such as "30",
// "-1.5" or "3e1". The literal is kept verbatim for encoding.
func Number(literal string) (Value, error) {
	if !validNumber(literal) {
		return Value{}, &invalidNumberError{literal: literal}
	}
	return Value{kind: KindNumber, text: literal}, nil
}

// MustNumber is like Number but panics on an invalid literal.
// It is intended for tests and package-level fixtures.
func MustNumber(literal string) Value {
	v, err := Number(literal)
	if err != nil {
		panic(err)
	}
	return v
}

// Int returns a number value for an integer.
func Int(n int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)}
}

// Uint returns a number value for an unsigned integer.
func Uint(n uint64) Value {
	return Value{kind: KindNumber, text: strconv.FormatUint(n, 10)}
}

// Float returns a number value for f. NaN and infinities have no JSON
// representation and are rejected.
func Float(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, &invalidNumberError{literal: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}, nil
}

// Object returns an object with the given members in order. When a key is
// repeated the last value wins and keeps the position of the first occurrence.
func Object(members ...Member) Value {
	v := Value{
		kind:    KindObject,
		members: make([]Member, 0, len(members)),
		keys:    make(map[string]int, len(members)),
	}
	for _, m := range members {
		if i, ok := v.keys[m.Key]; ok {
			v.members[i].Value = m.Value
			continue
		}
		v.keys[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

// Array returns an array holding a copy of items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsNumber returns the number literal as written in the source document.
func (v Value) AsNumber() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// Float64 converts a number to the nearest float64.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	return f, true
}

// Len is the number of members of an object or elements of an array, and
// zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.keys[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Has reports whether an object has the member key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Index returns the array element at i.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Members iterates over object members in document order.
func (v Value) Members() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != KindObject {
			return
		}
		for _, m := range v.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Keys returns the object keys in document order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Elements iterates over array elements in order.
func (v Value) Elements() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindArray {
			return
		}
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// String renders v as compact JSON.
func (v Value) String() string {
	return string(v.appendJSON(nil))
}
