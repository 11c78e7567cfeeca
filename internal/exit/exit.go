package exit

import (
	"fmt"
	"io"
	"os"
)

// Process exit codes.
const (
	// CodeSuccess: documents equal or every check passed.
	CodeSuccess = 0
	// CodeMismatch: documents differ or a check failed.
	CodeMismatch = 1
	// CodeError: usage, decode, path or I/O failure.
	CodeError = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// ForOutcome maps a comparison outcome to its exit code.
func ForOutcome(equal bool) int {
	if equal {
		return CodeSuccess
	}
	return CodeMismatch
}
