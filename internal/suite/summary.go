package suite

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jacoelho/jcmp/internal/differ"
)

// CheckResult is the outcome of one check.
type CheckResult struct {
	Description string          `json:"check"`
	Expect      Expectation     `json:"expect"`
	Equal       bool            `json:"equal"`
	Passed      bool            `json:"passed"`
	Err         string          `json:"error,omitempty"`
	Differences []differ.Record `json:"differences,omitempty"`
}

// CaseResult groups the check outcomes of one case.
type CaseResult struct {
	File   string        `json:"file"`
	Name   string        `json:"name"`
	Checks []CheckResult `json:"checks"`
}

// Passed is true when every check passed.
func (c CaseResult) Passed() bool {
	for _, check := range c.Checks {
		if !check.Passed {
			return false
		}
	}
	return true
}

// Summary accumulates the results of a run.
type Summary struct {
	RunID        string
	Files        int
	Cases        int
	PassedCases  int
	FailedCases  int
	Checks       int
	PassedChecks int
	FailedChecks int
	Duration     time.Duration
	Results      []CaseResult
}

func NewSummary(runID string) *Summary {
	return &Summary{RunID: runID}
}

func (s *Summary) Add(result CaseResult) {
	s.Results = append(s.Results, result)
	s.Cases++

	if result.Passed() {
		s.PassedCases++
	} else {
		s.FailedCases++
	}

	for _, check := range result.Checks {
		s.Checks++
		if check.Passed {
			s.PassedChecks++
		} else {
			s.FailedChecks++
		}
	}
}

// Failed reports whether any check failed.
func (s *Summary) Failed() bool {
	return s.FailedChecks > 0
}

// OutputFormat selects how a summary is rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat resolves an --output value. The empty string means text.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(name)); f {
	case "":
		return OutputText, nil
	case OutputText, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", name)
	}
}

// Format writes the summary to w.
func (s *Summary) Format(format OutputFormat, w io.Writer) error {
	switch format {
	case OutputJSON:
		return s.formatJSON(w)
	default:
		return s.formatText(w)
	}
}

func (s *Summary) formatText(w io.Writer) error {
	for _, c := range s.Results {
		status := "pass"
		if !c.Passed() {
			status = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %s (%d check(s))\n", c.File, c.Name, status, len(c.Checks)); err != nil {
			return err
		}

		for i, check := range c.Checks {
			if check.Passed {
				continue
			}
			if err := formatFailedCheck(w, i+1, check); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "--------------------------------------------------------------------------------"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Run:      %s\n", s.RunID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Files:    %d\n", s.Files); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Cases:    %d (%d passed, %d failed)\n", s.Cases, s.PassedCases, s.FailedCases); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Checks:   %d (%d passed, %d failed)\n", s.Checks, s.PassedChecks, s.FailedChecks); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Duration: %d ms\n", s.Duration.Milliseconds()); err != nil {
		return err
	}

	return nil
}

func formatFailedCheck(w io.Writer, n int, check CheckResult) error {
	if check.Err != "" {
		_, err := fmt.Fprintf(w, "  check %d (%s): error: %s\n", n, check.Description, check.Err)
		return err
	}

	got := "equal"
	if !check.Equal {
		got = "different"
	}
	if _, err := fmt.Fprintf(w, "  check %d (%s): expected %s, got %s\n", n, check.Description, check.Expect, got); err != nil {
		return err
	}

	for _, rec := range check.Differences {
		path := rec.Path.String()
		if path == "" {
			path = "$"
		}
		if _, err := fmt.Fprintf(w, "    %s %s\n", rec.Kind, path); err != nil {
			return err
		}
	}
	return nil
}

type summaryJSON struct {
	RunID        string       `json:"run_id"`
	Files        int          `json:"files"`
	Cases        int          `json:"cases"`
	PassedCases  int          `json:"passed_cases"`
	FailedCases  int          `json:"failed_cases"`
	Checks       int          `json:"checks"`
	PassedChecks int          `json:"passed_checks"`
	FailedChecks int          `json:"failed_checks"`
	DurationMS   int64        `json:"duration_ms"`
	Results      []CaseResult `json:"results"`
}

func (s *Summary) formatJSON(w io.Writer) error {
	results := s.Results
	if results == nil {
		results = []CaseResult{}
	}

	out, err := json.MarshalIndent(summaryJSON{
		RunID:        s.RunID,
		Files:        s.Files,
		Cases:        s.Cases,
		PassedCases:  s.PassedCases,
		FailedCases:  s.FailedCases,
		Checks:       s.Checks,
		PassedChecks: s.PassedChecks,
		FailedChecks: s.FailedChecks,
		DurationMS:   s.Duration.Milliseconds(),
		Results:      results,
	}, "", "  ")
	if err != nil {
		return err
	}

	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
