// Package cli executes a parsed command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/jcmp/internal/compare"
	"github.com/jacoelho/jcmp/internal/config"
	"github.com/jacoelho/jcmp/internal/exit"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathexpr"
	"github.com/jacoelho/jcmp/internal/pathing"
	"github.com/jacoelho/jcmp/internal/report"
	"github.com/jacoelho/jcmp/internal/suite"
)

// App runs one command.
type App struct {
	config    *config.Config
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
	terminal  bool
	logger    *slog.Logger
}

// New creates an App reading stdin and writing to stdout and stderr.
// terminal tells whether stdout is attached to a terminal.
func New(cfg *config.Config, terminal bool) *App {
	a := &App{
		config:    cfg,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
		terminal:  terminal,
	}
	a.logger = newLogger(a.errOutput, cfg.Debug)
	return a
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *App) SetInput(r io.Reader) {
	a.input = r
}

func (a *App) SetOutput(w io.Writer) {
	a.output = w
}

// SetErrorOutput redirects error messages and logs.
func (a *App) SetErrorOutput(w io.Writer) {
	a.errOutput = w
	a.logger = newLogger(w, a.config.Debug)
}

// Run executes the configured command and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	var (
		code int
		err  error
	)

	switch a.config.Command {
	case config.CommandDiff:
		code, err = a.diff()
	case config.CommandPath:
		code, err = a.path()
	case config.CommandValue:
		code, err = a.value()
	case config.CommandQuery:
		code, err = a.query()
	case config.CommandRun:
		code, err = a.run(ctx)
	default:
		err = fmt.Errorf("%w: %s", config.ErrUnknownCommand, a.config.Command)
	}

	if err != nil {
		fmt.Fprintf(a.errOutput, "Error: %v\n", err)
		return exit.CodeError
	}
	return code
}

func (a *App) reporter() *report.Reporter {
	return report.New(a.output, a.config.Format, a.config.Color.Enabled(a.terminal))
}

func (a *App) diff() (int, error) {
	left, right, err := a.loadPair()
	if err != nil {
		return 0, err
	}

	result := compare.Full(left, right)
	a.logger.Debug("compared documents", "differences", len(result.Differences))

	if err := a.reporter().Result(result); err != nil {
		return 0, err
	}
	return exit.ForOutcome(result.Equal()), nil
}

func (a *App) path() (int, error) {
	left, right, err := a.loadPair()
	if err != nil {
		return 0, err
	}

	equal, err := compare.AtExpression(left, right, a.config.Expr)
	if err != nil {
		return 0, err
	}

	if err := a.reporter().Outcome(equal); err != nil {
		return 0, err
	}
	return exit.ForOutcome(equal), nil
}

func (a *App) value() (int, error) {
	doc, err := a.load(compare.Left, a.config.Left)
	if err != nil {
		return 0, err
	}

	equal, err := compare.ValueAtExpression(doc, a.config.Expr, a.config.Expected)
	if err != nil {
		return 0, err
	}

	if err := a.reporter().Outcome(equal); err != nil {
		return 0, err
	}
	return exit.ForOutcome(equal), nil
}

func (a *App) query() (int, error) {
	doc, err := a.load(compare.Left, a.config.Left)
	if err != nil {
		return 0, err
	}

	matches, err := pathexpr.Select(doc, a.config.Expr)
	if err != nil {
		return 0, err
	}
	a.logger.Debug("query matched", "expr", a.config.Expr, "matches", len(matches))

	if err := a.reporter().Values(matches); err != nil {
		return 0, err
	}
	return exit.ForOutcome(len(matches) > 0), nil
}

func (a *App) run(ctx context.Context) (int, error) {
	runner := suite.New(
		suite.WithLogger(a.logger),
		suite.WithMaxDepth(a.config.MaxDepth),
	)

	summary, err := runner.Run(ctx, a.config.SuiteFiles)
	if summary != nil && summary.Cases > 0 {
		if ferr := summary.Format(a.config.Output, a.output); ferr != nil && err == nil {
			err = ferr
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, fmt.Errorf("interrupted after %d case(s): %w", summary.Cases, err)
		}
		return 0, err
	}

	return exit.ForOutcome(!summary.Failed()), nil
}

func (a *App) loadPair() (jsonvalue.Value, jsonvalue.Value, error) {
	left, err := a.load(compare.Left, a.config.Left)
	if err != nil {
		return jsonvalue.Value{}, jsonvalue.Value{}, err
	}
	right, err := a.load(compare.Right, a.config.Right)
	if err != nil {
		return jsonvalue.Value{}, jsonvalue.Value{}, err
	}
	return left, right, nil
}

// load reads a document from a file, or from stdin for "-". Stdin is JSON.
func (a *App) load(side compare.Side, path string) (jsonvalue.Value, error) {
	var (
		data   []byte
		err    error
		format = jsonvalue.FormatJSON
	)

	if pathing.IsStdin(path) {
		data, err = io.ReadAll(a.input)
	} else {
		path = pathing.NormalizeInputPath(path)
		format = jsonvalue.FormatForFile(path)
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("%s document: %w", side, err)
	}

	a.logger.Debug("loaded document", "side", side, "path", path, "format", format, "bytes", len(data))
	return compare.Decode(side, format, data, jsonvalue.WithMaxDepth(a.config.MaxDepth))
}
