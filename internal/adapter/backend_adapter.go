package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// BackendConfig selects and parameterises one generation backend. Device
// selection is part of the configuration instead of ambient process state.
type BackendConfig struct {
	Name    string `mapstructure:"name" yaml:"name" validate:"required"`
	Command string `mapstructure:"command" yaml:"command" validate:"required"`
	Model   string `mapstructure:"model" yaml:"model" validate:"required"`
	Device  string `mapstructure:"device" yaml:"device"`
}

// GenerationRequest carries everything a backend needs for one invocation.
type GenerationRequest struct {
	Vocabulary       m.Path
	Input            m.Path
	IdentifierText   m.Path
	IdentifierTokens m.Path
	Output           m.Path
	Beam             int
}

// GenerationBackend produces a ranked hypothesis file from tokenized input.
type GenerationBackend interface {
	Name() m.Backend
	Generate(ctx context.Context, req GenerationRequest) error
}

// CommandBackend invokes an external generation program.
type CommandBackend struct {
	config  BackendConfig
	runner  CommandRunner
	timeout time.Duration
}

// NewCommandBackend constructs a CommandBackend. A zero timeout disables the limit.
func NewCommandBackend(config BackendConfig, runner CommandRunner, timeout time.Duration) *CommandBackend {
	return &CommandBackend{config: config, runner: runner, timeout: timeout}
}

// Name returns the backend name used for output file names.
func (b *CommandBackend) Name() m.Backend {
	return m.Backend(b.config.Name)
}

// Generate runs the backend once. The device is exported only into the child
// process environment.
func (b *CommandBackend) Generate(ctx context.Context, req GenerationRequest) error {
	argv := append(SplitCommand(b.config.Command),
		"--vocab", string(req.Vocabulary),
		"--model", b.config.Model,
		"--input", string(req.Input),
		"--identifier-txt", string(req.IdentifierText),
		"--identifier-tokens", string(req.IdentifierTokens),
		"--output", string(req.Output),
		"--beam", strconv.Itoa(req.Beam),
	)

	var env []string
	if b.config.Device != "" {
		env = append(env, "CUDA_VISIBLE_DEVICES="+b.config.Device)
	}

	res, err := b.runner.Run(ctx, CommandSpec{Argv: argv, Env: env, Timeout: b.timeout})
	if err != nil {
		return err
	}

	if res.TimedOut {
		return fmt.Errorf("backend %s timed out after %s", b.config.Name, b.timeout)
	}

	if res.ExitCode != 0 {
		return fmt.Errorf("backend %s exited with status %d: %s", b.config.Name, res.ExitCode, tail(res.Stderr, 2048))
	}

	return nil
}

// tail keeps the last n bytes of s for diagnostics.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}

	return "..." + s[len(s)-n:]
}
