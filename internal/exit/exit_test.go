package exit

import (
	"bytes"
	"os"
	"testing"
)

func TestSuccess(t *testing.T) {
	message := "Operation completed successfully"
	result := Success(message)

	if result.ExitCode != CodeSuccess {
		t.Errorf("Success() ExitCode = %d, want %d", result.ExitCode, CodeSuccess)
	}

	if result.Message != message {
		t.Errorf("Success() Message = %q, want %q", result.Message, message)
	}

	if result.Output != os.Stdout {
		t.Error("Success() expected output to stdout")
	}
}

func TestError(t *testing.T) {
	result := Errorf("bad %s", "input")

	if result.ExitCode != CodeError {
		t.Errorf("Errorf() ExitCode = %d, want %d", result.ExitCode, CodeError)
	}

	if result.Message != "bad input" {
		t.Errorf("Errorf() Message = %q", result.Message)
	}

	if result.Output != os.Stderr {
		t.Error("Errorf() expected output to stderr")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	result := &Result{Output: &buf, Message: "hello\n"}
	result.Print()

	if buf.String() != "hello\n" {
		t.Errorf("Print() wrote %q", buf.String())
	}
}

func TestForOutcome(t *testing.T) {
	if got := ForOutcome(true); got != CodeSuccess {
		t.Errorf("ForOutcome(true) = %d", got)
	}
	if got := ForOutcome(false); got != CodeMismatch {
		t.Errorf("ForOutcome(false) = %d", got)
	}
}
