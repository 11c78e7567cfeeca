// Package suite runs declarative comparison suites: YAML files listing
// document pairs and the checks that must hold between them.
package suite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jacoelho/jcmp/internal/compare"
	"github.com/jacoelho/jcmp/internal/differ"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathing"
)

// Runner executes suite files.
type Runner struct {
	logger   *slog.Logger
	maxDepth int
	progress *rate.Sometimes
}

// DefaultProgressInterval is the minimum gap between progress log lines.
const DefaultProgressInterval = 2 * time.Second

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMaxDepth bounds document nesting.
func WithMaxDepth(depth int) Option {
	return func(r *Runner) {
		r.maxDepth = depth
	}
}

// WithProgressInterval sets the minimum gap between progress log lines.
func WithProgressInterval(interval time.Duration) Option {
	return func(r *Runner) {
		r.progress = &rate.Sometimes{Interval: interval}
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: jsonvalue.DefaultMaxDepth,
		progress: &rate.Sometimes{Interval: DefaultProgressInterval},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every suite file in order. Invalid suite files abort the run
// with an error wrapping ErrSuite; failing checks are recorded in the
// summary. Cancellation is observed between cases.
func (r *Runner) Run(ctx context.Context, files []string) (*Summary, error) {
	s := NewSummary(uuid.NewString())
	logger := r.logger.With("run_id", s.RunID)

	start := time.Now()
	defer func() {
		s.Duration = time.Since(start)
	}()

	logger.Debug("starting run", "files", len(files))

	for _, filename := range files {
		cases, err := loadSuite(filename)
		if err != nil {
			return s, err
		}
		s.Files++

		for _, c := range cases {
			if err := ctx.Err(); err != nil {
				logger.Info("run interrupted", "file", filename, "case", c.Name)
				return s, err
			}

			result := r.runCase(logger, filename, c)
			s.Add(result)

			logger.Debug("case finished",
				"file", filename,
				"case", c.Name,
				"checks", len(result.Checks),
				"passed", result.Passed())

			r.progress.Do(func() {
				logger.Info("progress",
					"file", filename,
					"cases", s.Cases,
					"failed_checks", s.FailedChecks)
			})
		}
	}

	logger.Debug("run finished", "cases", s.Cases, "failed_checks", s.FailedChecks)
	return s, nil
}

func loadSuite(filename string) ([]Case, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open suite %s: %w", filename, err)
	}
	defer file.Close()

	cases, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cases, nil
}

type documents struct {
	left  jsonvalue.Value
	right jsonvalue.Value
	// err is set when a document could not be loaded; every check of the
	// case fails with it.
	err error
}

func (r *Runner) runCase(logger *slog.Logger, filename string, c Case) CaseResult {
	result := CaseResult{File: filename, Name: c.Name}
	docs := r.loadDocuments(filename, c)

	for _, check := range c.Checks {
		cr := CheckResult{Description: check.Describe(), Expect: check.Expect}

		if docs.err != nil {
			cr.Err = docs.err.Error()
			result.Checks = append(result.Checks, cr)
			continue
		}

		equal, differences, err := runCheck(docs, check)
		if err != nil {
			logger.Debug("check error", "case", c.Name, "check", cr.Description, "error", err)
			cr.Err = err.Error()
			result.Checks = append(result.Checks, cr)
			continue
		}

		cr.Equal = equal
		cr.Passed = equal == (check.Expect == ExpectEqual)
		if !cr.Passed {
			cr.Differences = differences
		}
		result.Checks = append(result.Checks, cr)
	}

	return result
}

func runCheck(docs documents, check Check) (bool, []differ.Record, error) {
	switch {
	case check.Diff:
		result := compare.Full(docs.left, docs.right)
		return result.Equal(), result.Differences, nil
	case check.HasValue:
		tree := docs.left
		if check.Side == SideRight {
			tree = docs.right
		}
		equal, err := compare.ValueAtExpression(tree, check.Path, check.Value)
		return equal, nil, err
	default:
		equal, err := compare.AtExpression(docs.left, docs.right, check.Path)
		return equal, nil, err
	}
}

func (r *Runner) loadDocuments(suiteFile string, c Case) documents {
	baseDir := filepath.Dir(suiteFile)

	format := jsonvalue.Format("")
	if c.Format != "" {
		// validated by Parse
		format, _ = jsonvalue.ParseFormat(c.Format)
	}

	left, err := r.loadDocument(compare.Left, pathing.ResolveDocumentPath(c.Left, baseDir), format)
	if err != nil {
		return documents{err: err}
	}

	docs := documents{left: left}
	if c.Right == "" {
		return docs
	}

	docs.right, err = r.loadDocument(compare.Right, pathing.ResolveDocumentPath(c.Right, baseDir), format)
	if err != nil {
		return documents{err: err}
	}
	return docs
}

func (r *Runner) loadDocument(side compare.Side, path string, format jsonvalue.Format) (jsonvalue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("%s document: %w", side, err)
	}
	if format == "" {
		format = jsonvalue.FormatForFile(path)
	}
	return compare.Decode(side, format, data, jsonvalue.WithMaxDepth(r.maxDepth))
}
