package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/jcmp/internal/exit"
	"github.com/jacoelho/jcmp/internal/jsonvalue"
	"github.com/jacoelho/jcmp/internal/pathing"
	"github.com/jacoelho/jcmp/internal/report"
	"github.com/jacoelho/jcmp/internal/suite"
)

// Version is reported by -v; release builds set it with -ldflags.
var Version = "dev"

var (
	ErrNoArguments    = errors.New("no arguments provided")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgumentCount  = errors.New("wrong number of arguments")
	ErrNoSuiteFiles   = errors.New("no suite files specified")
	ErrInvalidColor   = errors.New("color must be auto, always or never")
	ErrInvalidDepth   = errors.New("max-depth must be positive")
	ErrTwoStdin       = errors.New("only one document can be read from stdin")
)

// Command names a subcommand.
type Command string

const (
	CommandDiff  Command = "diff"
	CommandPath  Command = "path"
	CommandValue Command = "value"
	CommandQuery Command = "query"
	CommandRun   Command = "run"
)

// ColorMode controls coloured text output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Enabled resolves the mode against whether stdout is a terminal.
func (m ColorMode) Enabled(terminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}

// Config represents a parsed command line.
type Config struct {
	Command  Command
	Format   report.Format
	Output   suite.OutputFormat
	Color    ColorMode
	Debug    bool
	MaxDepth int

	// Left and Right are document paths; "-" reads stdin.
	Left  string
	Right string
	// Expr is a path expression for path and value, a JSONPath query for query.
	Expr string
	// Expected is the literal the value command compares against.
	Expected jsonvalue.Value

	SuiteFiles []string
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return ErrInvalidDepth
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidColor, c.Color)
	}

	if pathing.IsStdin(c.Left) && pathing.IsStdin(c.Right) {
		return ErrTwoStdin
	}

	if c.Command != CommandDiff && c.Format == report.FormatPatch {
		return fmt.Errorf("%w: patch is only available for diff", report.ErrUnsupported)
	}

	if c.Command == CommandRun {
		if len(c.SuiteFiles) == 0 {
			return ErrNoSuiteFiles
		}
		for _, file := range c.SuiteFiles {
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("suite file %s not found: %w", file, err)
			}
		}
	}

	return nil
}

// commandSpec describes positional arguments per command.
type commandSpec struct {
	usage string
	args  int // -1 means one or more
}

var commands = map[Command]commandSpec{
	CommandDiff:  {usage: "LEFT RIGHT", args: 2},
	CommandPath:  {usage: "LEFT RIGHT EXPR", args: 3},
	CommandValue: {usage: "DOC EXPR JSON_LITERAL", args: 3},
	CommandQuery: {usage: "DOC JSONPATH", args: 2},
	CommandRun:   {usage: "SUITE...", args: -1},
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) < 2 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	switch args[1] {
	case "-h", "--help", "help":
		return nil, exit.Success(Usage())
	case "-v", "--version", "version":
		return nil, exit.Success(fmt.Sprintf("jcmp %s\n", Version))
	}

	command := Command(args[1])
	spec, ok := commands[command]
	if !ok {
		return nil, exit.Errorf("Error: %v: %s\n\n%s", ErrUnknownCommand, args[1], Usage())
	}

	fs := flag.NewFlagSet(string(command), flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		format   = fs.String("format", string(report.FormatText), "Output format: text, json, yaml or patch (diff only)")
		color    = fs.String("color", string(ColorAuto), "Colour text output: auto, always or never")
		output   = fs.String("output", string(suite.OutputText), "Suite summary format: text or json")
		debug    = fs.Bool("debug", false, "Enable debug logging")
		maxDepth = fs.Int("max-depth", jsonvalue.DefaultMaxDepth, "Maximum document nesting depth")
	)

	if err := fs.Parse(args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	positional := fs.Args()
	if (spec.args < 0 && len(positional) == 0) || (spec.args > 0 && len(positional) != spec.args) {
		if command == CommandRun {
			return nil, exit.Errorf("Error: %v\n\n%s", ErrNoSuiteFiles, Usage())
		}
		return nil, exit.Errorf("Error: %v: jcmp %s %s\n\n%s", ErrArgumentCount, command, spec.usage, Usage())
	}

	reportFormat, err := report.ParseFormat(*format)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}
	outputFormat, err := suite.ParseOutputFormat(*output)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	config := &Config{
		Command:  command,
		Format:   reportFormat,
		Output:   outputFormat,
		Color:    ColorMode(strings.ToLower(*color)),
		Debug:    *debug,
		MaxDepth: *maxDepth,
	}

	switch command {
	case CommandDiff:
		config.Left, config.Right = positional[0], positional[1]
	case CommandPath:
		config.Left, config.Right, config.Expr = positional[0], positional[1], positional[2]
	case CommandValue:
		config.Left, config.Expr = positional[0], positional[1]
		expected, err := jsonvalue.Parse([]byte(positional[2]))
		if err != nil {
			return nil, exit.Errorf("Error: invalid JSON literal %q: %v\n\n%s", positional[2], err, Usage())
		}
		config.Expected = expected
	case CommandQuery:
		config.Left, config.Expr = positional[0], positional[1]
	case CommandRun:
		config.SuiteFiles = positional
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jcmp - structural JSON and YAML comparison

Usage:
  jcmp diff  [options] LEFT RIGHT
  jcmp path  [options] LEFT RIGHT EXPR
  jcmp value [options] DOC EXPR JSON_LITERAL
  jcmp query [options] DOC JSONPATH
  jcmp run   [options] SUITE...

Documents ending in .yaml or .yml are read as YAML, everything else as JSON.
Use - to read one document from stdin.

Options:
  --format FORMAT         Output format: text, json, yaml, patch (diff only) (default: text)
  --color MODE            Colour text output: auto, always, never (default: auto)
  --output FORMAT         Suite summary format for run: text, json (default: text)
  --debug                 Enable debug logging
  --max-depth N           Maximum document nesting depth (default: 10000)
  -h, --help              Show this help message
  -v, --version           Show version information

Exit status:
  0  documents equal, or every check passed
  1  documents differ, or a check failed
  2  usage, parse or path error

Examples:
  jcmp diff old.json new.json                  # List every difference
  jcmp diff --format patch old.json new.json   # Emit an RFC 6902 patch
  jcmp path old.json new.json 'users[0].email' # Compare one location
  jcmp value user.json age 30                  # Check a value
  jcmp query user.json '$.users[*].name'       # Select with JSONPath
  jcmp run suite.yaml                          # Run a comparison suite
`
}
