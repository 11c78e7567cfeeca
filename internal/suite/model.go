package suite

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jcmp/internal/jsonvalue"
)

// ErrSuite marks an invalid suite file.
var ErrSuite = errors.New("suite")

// Expectation is the outcome a check asserts.
type Expectation string

const (
	ExpectEqual     Expectation = "equal"
	ExpectDifferent Expectation = "different"
)

// Side selects which document a value check reads.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Case pairs two documents with the checks to run against them. Left and
// Right are resolved relative to the suite file.
type Case struct {
	Name   string  `yaml:"name"`
	Left   string  `yaml:"left"`
	Right  string  `yaml:"right"`
	Format string  `yaml:"format"`
	Checks []Check `yaml:"checks"`
}

// Check is one assertion. Exactly one of Diff or Path is set; Value, when
// present, turns a path check into a comparison against a literal.
type Check struct {
	Diff     bool
	Path     string
	Value    jsonvalue.Value
	HasValue bool
	Side     Side
	Expect   Expectation
}

// Describe names the check in reports.
func (c Check) Describe() string {
	switch {
	case c.Diff:
		return "diff"
	case c.HasValue:
		return fmt.Sprintf("value at %q on %s is %s", c.Path, c.Side, c.Value)
	default:
		return fmt.Sprintf("path %q", c.Path)
	}
}

// NeedsRight reports whether the check reads the right document.
func (c Check) NeedsRight() bool {
	return !c.HasValue || c.Side == SideRight
}

// UnmarshalYAML reads a check mapping. Keys are checked by hand so that an
// explicit null value stays distinguishable from an absent one.
func (c *Check) UnmarshalYAML(unmarshal func(any) error) error {
	var raw yaml.MapSlice
	if err := unmarshal(&raw); err != nil {
		return err
	}

	var hasPath, hasSide, hasDiff bool
	*c = Check{Expect: ExpectEqual, Side: SideLeft}

	for _, item := range raw {
		key, _ := item.Key.(string)
		switch key {
		case "diff":
			b, ok := item.Value.(bool)
			if !ok || !b {
				return fmt.Errorf("%w: diff must be true", ErrSuite)
			}
			c.Diff, hasDiff = true, true
		case "path":
			s, ok := item.Value.(string)
			if !ok {
				return fmt.Errorf("%w: path must be a string", ErrSuite)
			}
			c.Path, hasPath = s, true
		case "value":
			v, err := jsonvalue.FromInterface(item.Value)
			if err != nil {
				return fmt.Errorf("%w: value: %v", ErrSuite, err)
			}
			c.Value, c.HasValue = v, true
		case "side":
			s, _ := item.Value.(string)
			switch Side(s) {
			case SideLeft, SideRight:
				c.Side = Side(s)
			default:
				return fmt.Errorf("%w: side must be left or right, got %v", ErrSuite, item.Value)
			}
			hasSide = true
		case "expect":
			s, _ := item.Value.(string)
			switch Expectation(s) {
			case ExpectEqual, ExpectDifferent:
				c.Expect = Expectation(s)
			default:
				return fmt.Errorf("%w: expect must be equal or different, got %v", ErrSuite, item.Value)
			}
		default:
			return fmt.Errorf("%w: unknown check field %q", ErrSuite, item.Key)
		}
	}

	switch {
	case hasDiff == hasPath:
		return fmt.Errorf("%w: check needs exactly one of diff or path", ErrSuite)
	case c.HasValue && !hasPath:
		return fmt.Errorf("%w: value requires path", ErrSuite)
	case hasSide && !c.HasValue:
		return fmt.Errorf("%w: side only applies to value checks", ErrSuite)
	}
	return nil
}

// Parse decodes a suite: a YAML list of cases. Unknown fields are rejected.
func Parse(r io.Reader) ([]Case, error) {
	decoder := yaml.NewDecoder(r, yaml.DisallowUnknownField(), yaml.UseOrderedMap())

	var cases []Case
	if err := decoder.Decode(&cases); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty suite", ErrSuite)
		}
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrSuite, err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: empty suite", ErrSuite)
	}

	for i, c := range cases {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: case %d: %v", ErrSuite, i+1, err)
		}
	}
	return cases, nil
}

func (c Case) validate() error {
	if c.Name == "" {
		return errors.New("missing name")
	}
	if c.Left == "" {
		return fmt.Errorf("%s: missing left document", c.Name)
	}
	if len(c.Checks) == 0 {
		return fmt.Errorf("%s: no checks", c.Name)
	}
	if c.Format != "" {
		if _, err := jsonvalue.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%s: %v", c.Name, err)
		}
	}
	for i, check := range c.Checks {
		if check.NeedsRight() && c.Right == "" {
			return fmt.Errorf("%s: check %d (%s) needs a right document", c.Name, i+1, check.Describe())
		}
	}
	return nil
}
