package adapter

import (
	"context"
	"fmt"
	"time"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// Reranker fuses the merged hypothesis streams of several backends into the
// reranked-patches checkpoint.
type Reranker interface {
	Rerank(ctx context.Context, meta m.Path, hypotheses []m.Path, output m.Path) error
}

// CommandReranker invokes an external reranking program.
type CommandReranker struct {
	runner  CommandRunner
	command []string
	timeout time.Duration
}

// NewCommandReranker constructs a CommandReranker.
func NewCommandReranker(runner CommandRunner, command string, timeout time.Duration) *CommandReranker {
	return &CommandReranker{runner: runner, command: SplitCommand(command), timeout: timeout}
}

// Rerank runs the reranker with one --hypotheses flag per stream.
func (r *CommandReranker) Rerank(ctx context.Context, meta m.Path, hypotheses []m.Path, output m.Path) error {
	argv := append(append([]string{}, r.command...), "--meta", string(meta))
	for _, hypothesis := range hypotheses {
		argv = append(argv, "--hypotheses", string(hypothesis))
	}

	argv = append(argv, "--output", string(output))

	res, err := r.runner.Run(ctx, CommandSpec{Argv: argv, Timeout: r.timeout})
	if err != nil {
		return err
	}

	if res.ExitCode != 0 {
		return fmt.Errorf("reranker exited with status %d: %s", res.ExitCode, tail(res.Stderr, 2048))
	}

	return nil
}
