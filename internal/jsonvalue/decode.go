package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jacoelho/jcmp/internal/stack"
)

// DefaultMaxDepth bounds document nesting so that the recursive differ and
// equality checks stay within a predictable stack size.
const DefaultMaxDepth = 10000

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name given on the command line or in a
// suite file. The empty string selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want json or yaml)", name)
	}
}

// FormatForFile picks the decoder from a file extension.
func FormatForFile(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type decodeOptions struct {
	maxDepth int
}

// DecodeOption configures Parse, ParseYAML and Decode.
type DecodeOption func(*decodeOptions)

// WithMaxDepth sets the deepest container nesting accepted. Values below one
// fall back to DefaultMaxDepth.
func WithMaxDepth(depth int) DecodeOption {
	return func(o *decodeOptions) {
		o.maxDepth = depth
	}
}

func newDecodeOptions(opts []DecodeOption) decodeOptions {
	o := decodeOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth < 1 {
		o.maxDepth = DefaultMaxDepth
	}
	return o
}

// ParseAs decodes data with the decoder for format.
func ParseAs(format Format, data []byte, opts ...DecodeOption) (Value, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data, opts...)
	case FormatJSON, "":
		return Parse(data, opts...)
	default:
		return Value{}, &ParseError{Format: format, Offset: -1, Msg: "unknown format"}
	}
}

// Parse decodes a single JSON document.
func Parse(data []byte, opts ...DecodeOption) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, &ParseError{Format: FormatJSON, Offset: 0, Msg: "empty document"}
	}
	return Decode(bytes.NewReader(data), opts...)
}

// frame is an open container while decoding.
type frame struct {
	kind    Kind
	needKey bool
	key     string
	members []Member
	items   []Value
}

// Decode reads exactly one JSON document from r. Object members keep their
// document order and numbers keep their literal text.
func Decode(r io.Reader, opts ...DecodeOption) (Value, error) {
	o := newDecodeOptions(opts)

	dec := json.NewDecoder(r)
	dec.UseNumber()

	frames := stack.New[frame]()
	var (
		root Value
		done bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Value{}, syntaxError(dec, err)
		}
		if done {
			return Value{}, &ParseError{Format: FormatJSON, Offset: dec.InputOffset(), Msg: "unexpected data after top-level value"}
		}

		var v Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				if frames.Size() >= o.maxDepth {
					return Value{}, &ParseError{Format: FormatJSON, Offset: dec.InputOffset(), Err: ErrMaxDepth}
				}
				f := frame{kind: KindArray}
				if t == '{' {
					f = frame{kind: KindObject, needKey: true}
				}
				frames.Push(f)
				continue
			case '}':
				f, _ := frames.Pop()
				v = Object(f.members...)
			case ']':
				f, _ := frames.Pop()
				v = Value{kind: KindArray, items: f.items}
				if v.items == nil {
					v.items = []Value{}
				}
			}
		case string:
			if top := frames.Top(); top != nil && top.kind == KindObject && top.needKey {
				top.key = t
				top.needKey = false
				continue
			}
			v = String(t)
		case json.Number:
			v = Value{kind: KindNumber, text: t.String()}
		case bool:
			v = Bool(t)
		case nil:
			v = Null()
		default:
			return Value{}, &ParseError{Format: FormatJSON, Offset: dec.InputOffset(), Msg: fmt.Sprintf("unexpected token %v", tok)}
		}

		top := frames.Top()
		switch {
		case top == nil:
			root = v
			done = true
		case top.kind == KindObject:
			top.members = append(top.members, Member{Key: top.key, Value: v})
			top.needKey = true
		default:
			top.items = append(top.items, v)
		}
	}

	if !done {
		return Value{}, &ParseError{Format: FormatJSON, Offset: dec.InputOffset(), Msg: "unexpected end of input"}
	}
	return root, nil
}

func syntaxError(dec *json.Decoder, err error) *ParseError {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Format: FormatJSON, Offset: se.Offset, Err: err}
	}
	return &ParseError{Format: FormatJSON, Offset: dec.InputOffset(), Err: err}
}

// UnmarshalJSON lets a Value sit inside structs decoded with encoding/json.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
