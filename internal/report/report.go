// Package report renders comparison results for people and for machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jcmp/internal/differ"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/patch"
)

// Format selects an output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPatch Format = "patch"
)

var (
	// ErrUnknownFormat is returned for format names outside the supported set.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrUnsupported is returned when a format cannot express a payload,
	// e.g. a patch for a boolean outcome.
	ErrUnsupported = errors.New("format not supported for this output")
)

// ParseFormat resolves a --format value. The empty string means text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatPatch:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Reporter writes results to an io.Writer in a single format.
type Reporter struct {
	w       io.Writer
	format  Format
	palette palette
}

// New creates a Reporter. Color only affects the text format.
func New(w io.Writer, format Format, color bool) *Reporter {
	return &Reporter{
		w:       w,
		format:  format,
		palette: newPalette(color),
	}
}

// Result renders a full diff.
func (r *Reporter) Result(result differ.Result) error {
	switch r.format {
	case FormatText:
		return r.textResult(result)
	case FormatJSON:
		return r.writeJSON(result)
	case FormatYAML:
		return r.writeYAML(resultYAML(result))
	case FormatPatch:
		return r.writeJSON(patch.FromResult(result))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}
}

type outcome struct {
	Equal bool `json:"equal" yaml:"equal"`
}

// Outcome renders the answer of a path or value comparison.
func (r *Reporter) Outcome(equal bool) error {
	switch r.format {
	case FormatText:
		text := "not equal"
		c := r.palette.removed
		if equal {
			text = "equal"
			c = r.palette.added
		}
		_, err := fmt.Fprintln(r.w, c.Sprint(text))
		return err
	case FormatJSON:
		return r.writeJSON(outcome{Equal: equal})
	case FormatYAML:
		return r.writeYAML(outcome{Equal: equal})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, r.format)
	}
}

// Values renders query matches: one compact JSON value per line in text
// format, a list otherwise.
func (r *Reporter) Values(values []jsonvalue.Value) error {
	if values == nil {
		values = []jsonvalue.Value{}
	}

	switch r.format {
	case FormatText:
		for _, v := range values {
			if _, err := fmt.Fprintln(r.w, v.String()); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return r.writeJSON(values)
	case FormatYAML:
		items := make([]any, len(values))
		for i, v := range values {
			items[i] = yamlValue(v)
		}
		return r.writeYAML(items)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, r.format)
	}
}

func (r *Reporter) writeJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	out = append(out, '\n')
	_, err = r.w.Write(out)
	return err
}

func (r *Reporter) writeYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = r.w.Write(out)
	return err
}

func resultYAML(result differ.Result) yaml.MapSlice {
	records := make([]yaml.MapSlice, 0, len(result.Differences))
	for _, rec := range result.Differences {
		segments := make([]any, len(rec.Path))
		for i, seg := range rec.Path {
			if idx, ok := seg.ArrayIndex(); ok {
				segments[i] = idx
				continue
			}
			name, _ := seg.FieldName()
			segments[i] = name
		}

		item := yaml.MapSlice{
			{Key: "path", Value: rec.Path.String()},
			{Key: "segments", Value: segments},
			{Key: "kind", Value: rec.Kind.String()},
		}
		if rec.Left != nil {
			item = append(item, yaml.MapItem{Key: "left", Value: yamlValue(*rec.Left)})
		}
		if rec.Right != nil {
			item = append(item, yaml.MapItem{Key: "right", Value: yamlValue(*rec.Right)})
		}
		records = append(records, item)
	}

	return yaml.MapSlice{
		{Key: "equal", Value: result.Equal()},
		{Key: "differences", Value: records},
	}
}

func yamlValue(v jsonvalue.Value) any {
	native, _ := v.MarshalYAML()
	return native
}
