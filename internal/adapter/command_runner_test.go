package adapter

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Run(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), CommandSpec{
		Dir:   t.TempDir(),
		Argv:  []string{"sh", "-c", "cat; echo \"$MUTFIX_TEST\" >&2; exit 3"},
		Env:   []string{"MUTFIX_TEST=hello"},
		Stdin: []byte("from stdin\n"),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", result.ExitCode)
	}

	if result.Stdout != "from stdin\n" || result.Stderr != "hello\n" {
		t.Fatalf("Stdout = %q, Stderr = %q", result.Stdout, result.Stderr)
	}

	if result.Output() != "from stdin\nhello\n" {
		t.Fatalf("Output() = %q", result.Output())
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	result, err := NewExecRunner().Run(context.Background(), CommandSpec{
		Argv:    []string{"sleep", "5"},
		Timeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.TimedOut || result.ExitCode != -1 {
		t.Fatalf("result = %+v, want timed out", result)
	}
}

func TestExecRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewExecRunner().Run(ctx, CommandSpec{Argv: []string{"true"}}); err == nil {
		t.Fatalf("Run() expected error for cancelled context")
	}
}

func TestExecRunner_StartFailure(t *testing.T) {
	runner := NewExecRunner()

	if _, err := runner.Run(context.Background(), CommandSpec{}); err == nil {
		t.Fatalf("Run() expected error for empty argv")
	}

	_, err := runner.Run(context.Background(), CommandSpec{Argv: []string{"mutfix-no-such-binary"}})
	if err == nil || !strings.Contains(err.Error(), "mutfix-no-such-binary") {
		t.Fatalf("Run() error = %v, want start failure", err)
	}
}

func TestSplitCommand(t *testing.T) {
	got := SplitCommand("  defects4j   compile -w . ")
	want := []string{"defects4j", "compile", "-w", "."}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitCommand() = %v, want %v", got, want)
	}

	if len(SplitCommand("")) != 0 {
		t.Fatalf("SplitCommand(\"\") should be empty")
	}
}
