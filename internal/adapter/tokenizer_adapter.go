package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// PrepareRequest asks the tokenizer to translate a half-open line window of a
// source file into the generation input format.
type PrepareRequest struct {
	SourceFile m.Path
	StartLine  int
	EndLine    int
	OutputDir  m.Path
}

// Tokenizer is the tokenization / detokenization collaborator.
type Tokenizer interface {
	// Prepare writes input.txt, identifier.txt and identifier.tokens into
	// req.OutputDir.
	Prepare(ctx context.Context, req PrepareRequest) error

	// Detokenize expands a tokenized patch into concrete statements using the
	// literal pools.
	Detokenize(ctx context.Context, tokens, numbers, strs []string) ([]string, error)
}

// CommandTokenizer drives an external tokenizer program with the sub-commands
// "prepare" and "detokenize".
type CommandTokenizer struct {
	runner  CommandRunner
	command []string
	timeout time.Duration
}

// NewCommandTokenizer constructs a CommandTokenizer.
func NewCommandTokenizer(runner CommandRunner, command string, timeout time.Duration) *CommandTokenizer {
	return &CommandTokenizer{runner: runner, command: SplitCommand(command), timeout: timeout}
}

// Prepare runs "<command> prepare".
func (t *CommandTokenizer) Prepare(ctx context.Context, req PrepareRequest) error {
	argv := append(append([]string{}, t.command...), "prepare",
		"--buggy-file", string(req.SourceFile),
		"--start-line", strconv.Itoa(req.StartLine),
		"--end-line", strconv.Itoa(req.EndLine),
		"--output-dir", string(req.OutputDir),
	)

	res, err := t.runner.Run(ctx, CommandSpec{Argv: argv, Timeout: t.timeout})
	if err != nil {
		return err
	}

	if res.ExitCode != 0 {
		return fmt.Errorf("tokenizer prepare exited with status %d: %s", res.ExitCode, tail(res.Stderr, 2048))
	}

	return nil
}

type detokenizeRequest struct {
	Tokens  []string `json:"tokens"`
	Numbers []string `json:"numbers"`
	Strings []string `json:"strings"`
}

// Detokenize runs "<command> detokenize" with a JSON request on stdin and
// expects a JSON array of statements on stdout.
func (t *CommandTokenizer) Detokenize(ctx context.Context, tokens, numbers, strs []string) ([]string, error) {
	payload, err := json.Marshal(detokenizeRequest{Tokens: tokens, Numbers: numbers, Strings: strs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detokenize request: %w", err)
	}

	argv := append(append([]string{}, t.command...), "detokenize")

	res, err := t.runner.Run(ctx, CommandSpec{Argv: argv, Stdin: payload, Timeout: t.timeout})
	if err != nil {
		return nil, err
	}

	if res.ExitCode != 0 {
		return nil, fmt.Errorf("tokenizer detokenize exited with status %d: %s", res.ExitCode, tail(res.Stderr, 2048))
	}

	var statements []string
	if err := json.Unmarshal([]byte(res.Stdout), &statements); err != nil {
		return nil, fmt.Errorf("failed to decode detokenized statements: %w", err)
	}

	return statements, nil
}
