package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// Properties understood by the build tool's export command.
const (
	PropertySourceClasses = "dir.src.classes"
	PropertyBinClasses    = "dir.bin.classes"
)

// BuildResult is the outcome of compiling a project checkout.
type BuildResult struct {
	Succeeded bool
	ExitCode  int
	TimedOut  bool
	Output    string
}

// BuildTool abstracts the external build / mutation-testing tool that operates
// on a project checkout identified by its working directory.
type BuildTool interface {
	// Compile builds the checkout. Exit status 0 means success and any other
	// status means failure; err is reserved for a tool that cannot be run.
	Compile(ctx context.Context, workDir m.Path) (BuildResult, error)

	// Export queries a project property such as the source class root.
	Export(ctx context.Context, workDir m.Path, property string) (string, error)
}

// LocalBuildTool runs configured commands (defects4j by default).
type LocalBuildTool struct {
	runner         CommandRunner
	compileCommand []string
	exportCommand  []string
	timeout        time.Duration
}

// DefaultBuildTimeout bounds a single compile invocation.
const DefaultBuildTimeout = 10 * time.Minute

// NewLocalBuildTool constructs a LocalBuildTool. A zero timeout falls back to
// DefaultBuildTimeout.
func NewLocalBuildTool(runner CommandRunner, compileCommand, exportCommand string, timeout time.Duration) *LocalBuildTool {
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}

	return &LocalBuildTool{
		runner:         runner,
		compileCommand: SplitCommand(compileCommand),
		exportCommand:  SplitCommand(exportCommand),
		timeout:        timeout,
	}
}

// Compile runs the compile command in workDir.
func (b *LocalBuildTool) Compile(ctx context.Context, workDir m.Path) (BuildResult, error) {
	res, err := b.runner.Run(ctx, CommandSpec{
		Dir:     string(workDir),
		Argv:    b.compileCommand,
		Timeout: b.timeout,
	})
	if err != nil {
		return BuildResult{}, fmt.Errorf("failed to run build tool: %w", err)
	}

	return BuildResult{
		Succeeded: res.ExitCode == 0 && !res.TimedOut,
		ExitCode:  res.ExitCode,
		TimedOut:  res.TimedOut,
		Output:    res.Output(),
	}, nil
}

// Export runs the export command for property and returns its trimmed stdout.
func (b *LocalBuildTool) Export(ctx context.Context, workDir m.Path, property string) (string, error) {
	argv := append(append([]string{}, b.exportCommand...), property)

	res, err := b.runner.Run(ctx, CommandSpec{
		Dir:     string(workDir),
		Argv:    argv,
		Timeout: b.timeout,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run build tool export: %w", err)
	}

	if res.ExitCode != 0 {
		return "", fmt.Errorf("export %s exited with status %d: %s", property, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	value := strings.TrimSpace(res.Stdout)
	if value == "" {
		return "", fmt.Errorf("export %s returned an empty value", property)
	}

	return value, nil
}
