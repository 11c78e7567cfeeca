package jsonvalue

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, doc string) Value {
	t.Helper()
	v, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", doc, err)
	}
	return v
}

func TestParse_PreservesMemberOrder(t *testing.T) {
	v := mustParse(t, `{"zeta":1,"alpha":{"y":true,"x":null},"mid":[3,2,1]}`)

	if got, want := v.Keys(), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	alpha, _ := v.Get("alpha")
	if got, want := alpha.Keys(), []string{"y", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("alpha.Keys() = %v, want %v", got, want)
	}

	if got, want := v.String(), `{"zeta":1,"alpha":{"y":true,"x":null},"mid":[3,2,1]}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind Kind
	}{
		{name: "null", doc: `null`, kind: KindNull},
		{name: "true", doc: `true`, kind: KindBool},
		{name: "number", doc: ` -1.50e3 `, kind: KindNumber},
		{name: "string", doc: `"hi"`, kind: KindString},
		{name: "empty_object", doc: `{}`, kind: KindObject},
		{name: "empty_array", doc: `[]`, kind: KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, tt.doc)
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
		})
	}
}

func TestParse_NumberLiteralKept(t *testing.T) {
	v := mustParse(t, `{"n":30.0}`)
	n, _ := v.Get("n")

	lit, ok := n.AsNumber()
	if !ok || lit != "30.0" {
		t.Errorf("AsNumber() = %q, %t, want 30.0, true", lit, ok)
	}
	if got := v.String(); got != `{"n":30.0}` {
		t.Errorf("String() = %s", got)
	}
}

func TestParse_DuplicateKeysLastWins(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":2,"a":3}`)

	if got, want := v.String(), `{"a":3,"b":2}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "whitespace", doc: "  \n"},
		{name: "truncated_object", doc: `{"a":1`},
		{name: "truncated_array", doc: `[1,2`},
		{name: "trailing_comma", doc: `[1,]`},
		{name: "bare_word", doc: `nope`},
		{name: "second_document", doc: `{} {}`},
		{name: "trailing_garbage", doc: `1 x`},
		{name: "single_quotes", doc: `{'a':1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("errors.Is(err, ErrParse) = false for %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Format != FormatJSON {
				t.Errorf("want *ParseError with json format, got %#v", err)
			}
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	doc := []byte(`[[[[1]]]]`)

	if _, err := Parse(doc, WithMaxDepth(4)); err != nil {
		t.Fatalf("depth 4 error = %v", err)
	}

	_, err := Parse(doc, WithMaxDepth(3))
	if !errors.Is(err, ErrMaxDepth) || !errors.Is(err, ErrParse) {
		t.Fatalf("depth 3 error = %v, want ErrMaxDepth", err)
	}
}

func TestParseAs(t *testing.T) {
	v, err := ParseAs(FormatYAML, []byte("a: 1\nb: [x, y]\n"))
	if err != nil {
		t.Fatalf("ParseAs(yaml) error = %v", err)
	}
	if got, want := v.String(), `{"a":1,"b":["x","y"]}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}

	if _, err := ParseAs(Format("toml"), []byte("a = 1")); !errors.Is(err, ErrParse) {
		t.Errorf("ParseAs(toml) error = %v, want ErrParse", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatJSON},
		{input: "JSON", want: FormatJSON},
		{input: "yml", want: FormatYAML},
		{input: " yaml ", want: FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatForFile(t *testing.T) {
	tests := map[string]Format{
		"a.json":           FormatJSON,
		"dir/b.YAML":       FormatYAML,
		"c.yml":            FormatYAML,
		"no_extension":     FormatJSON,
		"fixtures/d.json5": FormatJSON,
	}

	for name, want := range tests {
		if got := FormatForFile(name); got != want {
			t.Errorf("FormatForFile(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestArray_CopiesInput(t *testing.T) {
	items := []Value{Int(1), Int(2)}
	arr := Array(items...)
	items[0] = String("changed")

	first, _ := arr.Index(0)
	if !Equal(first, Int(1)) {
		t.Errorf("Array() shares its input slice: first = %s", first)
	}
}

func TestObject_Accessors(t *testing.T) {
	obj := Object(
		Member{Key: "b", Value: Bool(true)},
		Member{Key: "a", Value: String("x")},
	)

	if obj.Len() != 2 {
		t.Errorf("Len() = %d, want 2", obj.Len())
	}
	if !obj.Has("a") || obj.Has("c") {
		t.Error("Has() mismatch")
	}

	var keys []string
	for key := range obj.Members() {
		keys = append(keys, key)
	}
	if !reflect.DeepEqual(keys, []string{"b", "a"}) {
		t.Errorf("Members() order = %v", keys)
	}

	if _, ok := String("s").Get("a"); ok {
		t.Error("Get() on a string should fail")
	}
	if _, ok := obj.Index(0); ok {
		t.Error("Index() on an object should fail")
	}
}

func TestNumber_Validation(t *testing.T) {
	valid := []string{"0", "-0", "30", "30.0", "1e2", "1E+2", "-1.5e-3", "0.001"}
	invalid := []string{"", "-", "01", "1.", ".5", "+1", "1e", "1e+", "0x10", "NaN", "1 "}

	for _, lit := range valid {
		if _, err := Number(lit); err != nil {
			t.Errorf("Number(%q) error = %v", lit, err)
		}
	}
	for _, lit := range invalid {
		if _, err := Number(lit); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("Number(%q) error = %v, want ErrInvalidNumber", lit, err)
		}
	}
}

func TestFromInterface(t *testing.T) {
	v, err := FromInterface(map[string]any{
		"b":    []any{1, 2.5, json.Number("3"), nil},
		"a":    "text",
		"flag": true,
	})
	if err != nil {
		t.Fatalf("FromInterface() error = %v", err)
	}

	if got, want := v.String(), `{"a":"text","b":[1,2.5,3,null],"flag":true}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}

	if _, err := FromInterface(struct{}{}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("FromInterface(struct) error = %v, want ErrUnsupportedType", err)
	}
}

func TestInterface(t *testing.T) {
	v := mustParse(t, `{"a":[1,"x",true,null]}`)

	want := map[string]any{"a": []any{json.Number("1"), "x", true, nil}}
	if got := v.Interface(); !reflect.DeepEqual(got, want) {
		t.Errorf("Interface() = %#v, want %#v", got, want)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var holder struct {
		Doc Value `json:"doc"`
	}
	if err := json.Unmarshal([]byte(`{"doc":{"k":[1,2]}}`), &holder); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := holder.Doc.String(); got != `{"k":[1,2]}` {
		t.Errorf("Doc = %s", got)
	}
}

func TestKindString(t *testing.T) {
	if KindObject.String() != "object" || KindBool.String() != "boolean" {
		t.Errorf("unexpected kind names: %s %s", KindObject, KindBool)
	}
	if !KindArray.IsContainer() || KindString.IsContainer() {
		t.Error("IsContainer() mismatch")
	}
}
