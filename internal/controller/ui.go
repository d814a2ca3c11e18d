// Package controller renders pipeline progress and reports.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeReport StartMode = iota
	ModeRun
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithReportMode shows static tables (list, view, audit).
func WithReportMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeReport
	}
}

// WithRunMode shows live pipeline progress.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// TargetRow is one line of the target mutant table.
type TargetRow struct {
	Project     string
	MutantID    m.MutantID
	MutatorKind string
	Line        int
	Source      string
	Prepared    bool
	Pooled      int
}

// MutantValidation is the per-mutant breakdown of a validation run.
type MutantValidation struct {
	MutantID m.MutantID
	Compiled int
	Failed   int
	Skipped  int
}

// UI defines how the workflow reports progress and results. Implementations
// can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayProject(ctx context.Context, project string, targets int)
	DisplayStage(ctx context.Context, project string, stage string)
	DisplaySkip(ctx context.Context, project string, id m.MutantID)
	DisplayCandidate(ctx context.Context, outcome m.ValidationOutcome)
	DisplayValidationSummary(ctx context.Context, summary m.ValidationSummary, mutants []MutantValidation)
	DisplayError(ctx context.Context, project string, err error)
	DisplayTargets(ctx context.Context, rows []TargetRow) error
	DisplayPool(ctx context.Context, project string, entries []m.PoolEntry) error
	DisplayAudit(ctx context.Context, report *m.AuditReport) error
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewUI returns the TUI for terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}
