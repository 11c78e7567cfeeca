package differ

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/jacoelho/jcmp/internal/jsonvalue"
)

func mustDoc(t *testing.T, doc string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", doc, err)
	}
	return v
}

// describe flattens records into comparable strings: "kind path left right".
func describe(result Result) []string {
	out := make([]string, 0, len(result.Differences))
	for _, rec := range result.Differences {
		left, right := "-", "-"
		if rec.Left != nil {
			left = rec.Left.String()
		}
		if rec.Right != nil {
			right = rec.Right.String()
		}
		out = append(out, fmt.Sprintf("%s %q %s %s", rec.Kind, rec.Path.String(), left, right))
	}
	return out
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  []string
	}{
		{
			name:  "changed_scalar",
			left:  `{"name":"John","age":30}`,
			right: `{"name":"John","age":31}`,
			want:  []string{`value_mismatch "age" 30 31`},
		},
		{
			name:  "extra_member",
			left:  `{"a":1}`,
			right: `{"a":1,"b":2}`,
			want:  []string{`extra_in_right "b" - 2`},
		},
		{
			name:  "extra_element",
			left:  `[1,2]`,
			right: `[1,2,3]`,
			want:  []string{`extra_in_right "[2]" - 3`},
		},
		{
			name:  "missing_element",
			left:  `[1,2,3,4]`,
			right: `[1,2]`,
			want: []string{
				`missing_in_right "[2]" 3 -`,
				`missing_in_right "[3]" 4 -`,
			},
		},
		{
			name:  "missing_member",
			left:  `{"a":1,"b":{"c":true}}`,
			right: `{"a":1}`,
			want:  []string{`missing_in_right "b" {"c":true} -`},
		},
		{
			name:  "equal_objects_any_order",
			left:  `{"a":1,"b":[1,{"c":null}]}`,
			right: `{"b":[1,{"c":null}],"a":1}`,
			want:  []string{},
		},
		{
			name:  "empty_objects",
			left:  `{}`,
			right: `{}`,
			want:  []string{},
		},
		{
			name:  "object_vs_array_same_content",
			left:  `{"0":"x"}`,
			right: `["x"]`,
			want:  []string{`value_mismatch "" {"0":"x"} ["x"]`},
		},
		{
			name:  "root_scalar_mismatch",
			left:  `1`,
			right: `"1"`,
			want:  []string{`value_mismatch "" 1 "1"`},
		},
		{
			name:  "shape_mismatch_reported_once",
			left:  `{"data":{"a":1,"b":2,"c":{"d":3}}}`,
			right: `{"data":[1,2,3]}`,
			want:  []string{`value_mismatch "data" {"a":1,"b":2,"c":{"d":3}} [1,2,3]`},
		},
		{
			name:  "scalar_vs_container",
			left:  `{"v":null}`,
			right: `{"v":{}}`,
			want:  []string{`value_mismatch "v" null {}`},
		},
		{
			name:  "numeric_literals",
			left:  `{"n":30,"m":1e2}`,
			right: `{"n":30.0,"m":100}`,
			want:  []string{},
		},
		{
			name:  "nested_paths",
			left:  `{"user":{"addresses":[{"city":"Lisbon"},{"city":"Porto"}]}}`,
			right: `{"user":{"addresses":[{"city":"Lisbon"},{"city":"Braga","zip":"4700"}]}}`,
			want: []string{
				`value_mismatch "user.addresses[1].city" "Porto" "Braga"`,
				`extra_in_right "user.addresses[1].zip" - "4700"`,
			},
		},
		{
			name:  "quoted_path_segment",
			left:  `{"a.b":1}`,
			right: `{"a.b":2}`,
			want:  []string{`value_mismatch "[\"a.b\"]" 1 2`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(mustDoc(t, tt.left), mustDoc(t, tt.right))

			if lines := describe(got); !reflect.DeepEqual(lines, tt.want) {
				t.Errorf("Diff() =\n%q\nwant\n%q", lines, tt.want)
			}
			if got.Equal() != (len(tt.want) == 0) {
				t.Errorf("Equal() = %t with %d records", got.Equal(), len(got.Differences))
			}
		})
	}
}

func TestDiff_EmissionOrder(t *testing.T) {
	left := mustDoc(t, `{"z":1,"gone":true,"a":{"x":1,"y":2},"list":[1,2]}`)
	right := mustDoc(t, `{"new2":0,"a":{"y":3,"x":1},"z":2,"list":[1,5,6],"new1":0}`)

	want := []string{
		`value_mismatch "z" 1 2`,
		`missing_in_right "gone" true -`,
		`value_mismatch "a.y" 2 3`,
		`value_mismatch "list[1]" 2 5`,
		`extra_in_right "list[2]" - 6`,
		`extra_in_right "new2" - 0`,
		`extra_in_right "new1" - 0`,
	}

	if got := describe(Diff(left, right)); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() =\n%q\nwant\n%q", got, want)
	}
}

var propertyDocs = []string{
	`null`,
	`true`,
	`0`,
	`"text"`,
	`[]`,
	`{}`,
	`[1,[2,[3,{"k":"v"}]]]`,
	`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
	`{"a":1,"b":[true,false],"c":{"d":"f","g":1}}`,
	`{"b":[true,false,null],"a":1.0,"c":{"d":"e"}}`,
	`[{"0":"x"}]`,
	`[["x"]]`,
}

func TestDiff_Reflexive(t *testing.T) {
	for _, doc := range propertyDocs {
		v := mustDoc(t, doc)
		if got := Diff(v, v); !got.Equal() || len(got.Differences) != 0 {
			t.Errorf("Diff(%s, itself) = %v", doc, describe(got))
		}
	}
}

func TestDiff_SymmetricEquality(t *testing.T) {
	for _, a := range propertyDocs {
		for _, b := range propertyDocs {
			left, right := mustDoc(t, a), mustDoc(t, b)
			forward := Diff(left, right)
			backward := Diff(right, left)

			if forward.Equal() != backward.Equal() {
				t.Errorf("Diff(%s, %s).Equal() = %t but reverse = %t", a, b, forward.Equal(), backward.Equal())
			}
			if forward.Count(MissingInRight) != backward.Count(ExtraInRight) {
				t.Errorf("missing/extra counts not mirrored for %s vs %s", a, b)
			}
			if forward.Count(ValueMismatch) != backward.Count(ValueMismatch) {
				t.Errorf("mismatch counts differ for %s vs %s", a, b)
			}
			if forward.Equal() != jsonvalue.Equal(left, right) {
				t.Errorf("Diff(%s, %s).Equal() disagrees with jsonvalue.Equal", a, b)
			}
		}
	}
}

func TestDiff_Idempotent(t *testing.T) {
	left := mustDoc(t, propertyDocs[7])
	right := mustDoc(t, propertyDocs[8])

	first := describe(Diff(left, right))
	second := describe(Diff(left, right))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Diff() not idempotent:\n%q\n%q", first, second)
	}
}

func TestDiff_RecordsDoNotShareMemory(t *testing.T) {
	result := Diff(mustDoc(t, `{"a":{"b":1,"c":2}}`), mustDoc(t, `{"a":{"b":9,"c":8}}`))
	if len(result.Differences) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Differences))
	}

	result.Differences[0].Path[0] = result.Differences[0].Path[1]
	if got := result.Differences[1].Path.String(); got != "a.c" {
		t.Errorf("second record path = %q, want a.c", got)
	}
}

func TestResultMarshalJSON(t *testing.T) {
	result := Diff(mustDoc(t, `{"age":30,"tags":["x"]}`), mustDoc(t, `{"age":31,"tags":["x","y"]}`))

	out, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"equal":false,"differences":[` +
		`{"path":"age","segments":["age"],"kind":"value_mismatch","left":30,"right":31},` +
		`{"path":"tags[1]","segments":["tags",1],"kind":"extra_in_right","right":"y"}]}`
	if string(out) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", out, want)
	}

	out, err = json.Marshal(Result{})
	if err != nil {
		t.Fatalf("Marshal(empty) error = %v", err)
	}
	if string(out) != `{"equal":true,"differences":[]}` {
		t.Errorf("Marshal(empty) = %s", out)
	}
}

func TestKindText(t *testing.T) {
	for _, kind := range []Kind{MissingInRight, ExtraInRight, ValueMismatch} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) error = %v", kind, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil || back != kind {
			t.Errorf("UnmarshalText(%s) = %v, %v", text, back, err)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("renamed")); err == nil {
		t.Error("UnmarshalText(renamed) error = nil")
	}
	if _, err := Kind(0).MarshalText(); err == nil {
		t.Error("MarshalText(0) error = nil")
	}
}
