package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// CommandSpec describes one external process invocation.
type CommandSpec struct {
	Dir     string
	Argv    []string
	Env     []string // appended to the parent environment, KEY=VALUE
	Stdin   []byte
	Timeout time.Duration
}

// CommandResult holds the captured output of a finished process.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Output returns stdout followed by stderr.
func (r CommandResult) Output() string {
	return r.Stdout + r.Stderr
}

// CommandRunner abstracts process execution so collaborators can be faked in tests.
type CommandRunner interface {
	// Run executes the command and waits for it. A non-zero exit status is
	// reported through CommandResult.ExitCode, not as an error; err is only
	// set when the process could not be started.
	Run(ctx context.Context, spec CommandSpec) (CommandResult, error)
}

// ExecRunner implements CommandRunner with os/exec.
type ExecRunner struct{}

// NewExecRunner constructs an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes spec.Argv in spec.Dir.
func (r *ExecRunner) Run(ctx context.Context, spec CommandSpec) (CommandResult, error) {
	if len(spec.Argv) == 0 {
		return CommandResult{}, fmt.Errorf("empty command")
	}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	// #nosec G204 - commands come from the operator's configuration
	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir

	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	if spec.Stdin != nil {
		cmd.Stdin = bytes.NewReader(spec.Stdin)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}

	slog.Debug("Command finished", "argv", spec.Argv, "dir", spec.Dir, "duration", time.Since(start))

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.Canceled) {
			return result, ctxErr
		}

		result.ExitCode = -1
		result.TimedOut = true

		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, fmt.Errorf("failed to start %s: %w", spec.Argv[0], err)
}

// SplitCommand turns a configured command line into argv. Arguments are split
// on whitespace; quoting is not supported.
func SplitCommand(command string) []string {
	return strings.Fields(command)
}
