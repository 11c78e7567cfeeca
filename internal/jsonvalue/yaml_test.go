package jsonvalue

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestParseYAML(t *testing.T) {
	doc := `
name: John
age: 30
tags:
  - admin
  - user
address:
  zip: "01234"
  city: Lisbon
active: true
manager: null
`
	v, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	want := `{"name":"John","age":30,"tags":["admin","user"],"address":{"zip":"01234","city":"Lisbon"},"active":true,"manager":null}`
	if got := v.String(); got != want {
		t.Errorf("String() = %s\nwant %s", got, want)
	}

	jsonTwin := mustParse(t, want)
	if !Equal(v, jsonTwin) {
		t.Error("YAML document should equal its JSON twin")
	}
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "nested_mapping_value", doc: "a: b: c\n"},
		{name: "unclosed_flow", doc: "a: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("ParseYAML() error = %v, want ErrParse", err)
			}
			var pe *ParseError
			if errors.As(err, &pe) && pe.Format != FormatYAML {
				t.Errorf("Format = %q, want yaml", pe.Format)
			}
		})
	}
}

func TestMarshalYAML_KeepsOrder(t *testing.T) {
	v := mustParse(t, `{"z":1,"a":[true,"x"],"m":{"k":1.5}}`)

	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	text := string(out)
	if strings.Index(text, "z:") > strings.Index(text, "a:") || strings.Index(text, "a:") > strings.Index(text, "m:") {
		t.Errorf("member order lost:\n%s", text)
	}

	back, err := ParseYAML(out)
	if err != nil {
		t.Fatalf("ParseYAML(round trip) error = %v", err)
	}
	if !Equal(v, back) {
		t.Errorf("round trip = %s, want %s", back, v)
	}
}
