package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/mutfix/internal/model"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	return cmd, &stdout, &stderr
}

func intPtr(v int) *int {
	return &v
}

func TestSimpleUI_ProgressMarkers(t *testing.T) {
	ctx := context.Background()
	cmd, stdout, stderr := newTestCmd()
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.Start(ctx, WithRunMode()))

	ui.DisplayProject(ctx, "Chart_1", 3)
	ui.DisplayStage(ctx, "Chart_1", "merge")
	ui.DisplaySkip(ctx, "Chart_1", "7")
	ui.DisplayCandidate(ctx, m.ValidationOutcome{MutantID: "1", Status: m.Compiled, PoolID: intPtr(4)})
	ui.DisplayCandidate(ctx, m.ValidationOutcome{MutantID: "1", Status: m.Failed})
	ui.DisplayCandidate(ctx, m.ValidationOutcome{MutantID: "1", Status: m.Skipped})
	ui.DisplayError(ctx, "Chart_1", errors.New("kill.csv missing"))
	ui.Close(ctx)

	assert.Equal(t, "Project Chart_1: 3 target mutant(s)\n"+
		"[Chart_1] merge\n"+
		"Skipping Mutant-7\n"+
		"Compile Succeeded! PatchId: 4 (mutant 1)\n"+
		"Compile Failed! (mutant 1)\n", stdout.String())
	assert.Equal(t, "[Chart_1] error: kill.csv missing\n", stderr.String())
}

func TestSimpleUI_CancelledContextPrintsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd, stdout, _ := newTestCmd()
	ui := NewSimpleUI(cmd)

	assert.ErrorIs(t, ui.Start(ctx), context.Canceled)
	ui.DisplayProject(ctx, "Chart_1", 1)
	assert.ErrorIs(t, ui.DisplayTargets(ctx, nil), context.Canceled)
	assert.Empty(t, stdout.String())
}

func TestSimpleUI_Tables(t *testing.T) {
	ctx := context.Background()
	cmd, stdout, _ := newTestCmd()
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayTargets(ctx, []TargetRow{
		{Project: "Chart_1", MutantID: "1", MutatorKind: "AOR", Line: 4, Source: "src/Calc.java", Prepared: true, Pooled: 2},
		{Project: "Chart_1", MutantID: "3", MutatorKind: "ROR", Line: 7, Source: "src/Calc.java"},
	}))

	out := stdout.String()
	assert.Contains(t, out, "AOR")
	assert.Contains(t, out, "ROR")
	assert.Contains(t, strings.ToUpper(out), "TOTAL 2")

	stdout.Reset()
	require.NoError(t, ui.DisplayPool(ctx, "Chart_1", []m.PoolEntry{{ID: 0, MutantID: "1", Line: 4, Score: -0.25, Candidate: "return a + b;"}}))

	out = stdout.String()
	assert.Contains(t, out, "Patch pool of Chart_1")
	assert.Contains(t, out, "-0.2500")
	assert.Contains(t, out, "return a + b;")

	stdout.Reset()
	ui.DisplayValidationSummary(ctx, m.ValidationSummary{Project: "Chart_1", Mutants: 2, Compiled: 3, Failed: 1, Skipped: 4, Duration: 1500 * time.Millisecond},
		[]MutantValidation{{MutantID: "1", Compiled: 3, Failed: 1, Skipped: 4}})

	out = stdout.String()
	assert.Contains(t, strings.ToUpper(out), "(2 MUTANTS, 1.5S)")
}

func TestSimpleUI_DisplayAudit(t *testing.T) {
	ctx := context.Background()
	cmd, stdout, _ := newTestCmd()

	report := m.NewAuditReport()
	report.Record(m.MutantAudit{Project: "Chart_1", MutantID: "1", MutatorKind: "AOR", Candidates: 2, Fixed: true})
	report.Record(m.MutantAudit{Project: "Chart_1", MutantID: "3", MutatorKind: "ROR", Candidates: 1})

	require.NoError(t, NewSimpleUI(cmd).DisplayAudit(ctx, report))

	out := stdout.String()
	assert.Contains(t, out, "project Chart_1")
	assert.Contains(t, out, "mutator AOR")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "50.00%")
}

func TestNewUI(t *testing.T) {
	cmd, _, _ := newTestCmd()

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
