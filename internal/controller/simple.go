package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayProject announces a project.
func (s *SimpleUI) DisplayProject(ctx context.Context, project string, targets int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Project %s: %d target mutant(s)\n", project, targets)
}

// DisplayStage announces a stage.
func (s *SimpleUI) DisplayStage(ctx context.Context, project string, stage string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("[%s] %s\n", project, stage)
}

// DisplaySkip prints the merge skip marker.
func (s *SimpleUI) DisplaySkip(ctx context.Context, _ string, id m.MutantID) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Skipping Mutant-%s\n", id)
}

// DisplayCandidate prints the compile marker of one candidate.
func (s *SimpleUI) DisplayCandidate(ctx context.Context, outcome m.ValidationOutcome) {
	if ctx.Err() != nil {
		return
	}

	switch outcome.Status {
	case m.Compiled:
		if outcome.PoolID != nil {
			s.printf("Compile Succeeded! PatchId: %d (mutant %s)\n", *outcome.PoolID, outcome.MutantID)
		}
	case m.Failed:
		s.printf("Compile Failed! (mutant %s)\n", outcome.MutantID)
	case m.Skipped:
	}
}

// DisplayValidationSummary prints the per-mutant table of a validation run.
func (s *SimpleUI) DisplayValidationSummary(ctx context.Context, summary m.ValidationSummary, mutants []MutantValidation) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderValidationTable(summary, mutants))
}

// DisplayError prints a project-level error.
func (s *SimpleUI) DisplayError(ctx context.Context, project string, err error) {
	if ctx.Err() != nil {
		return
	}

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "[%s] error: %v\n", project, err)
}

// DisplayTargets prints the target mutant table.
func (s *SimpleUI) DisplayTargets(ctx context.Context, rows []TargetRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderTargetTable(rows))

	return nil
}

// DisplayPool prints the pool of one project.
func (s *SimpleUI) DisplayPool(ctx context.Context, project string, entries []m.PoolEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nPatch pool of %s\n%s", project, renderPoolTable(entries))

	return nil
}

// DisplayAudit prints the audit aggregates.
func (s *SimpleUI) DisplayAudit(ctx context.Context, report *m.AuditReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderAuditTable(report))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderTargetTable(rows []TargetRow) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Project", "Mutant", "Mutator", "Line", "Source", "Prepared", "Pooled"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	prepared := 0

	for _, row := range rows {
		mark := "-"
		if row.Prepared {
			mark = "yes"
			prepared++
		}

		table.Append([]string{row.Project, string(row.MutantID), row.MutatorKind, strconv.Itoa(row.Line), row.Source, mark, strconv.Itoa(row.Pooled)})
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total %d", len(rows)), "", "", "", strconv.Itoa(prepared), ""})
	table.Render()

	return tableBuffer.String()
}

func renderPoolTable(entries []m.PoolEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Id", "Mutant", "Line", "Score", "Candidate"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, entry := range entries {
		table.Append([]string{
			strconv.Itoa(entry.ID),
			string(entry.MutantID),
			strconv.Itoa(entry.Line),
			strconv.FormatFloat(entry.Score, 'f', 4, 64),
			entry.Candidate,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(entries)), "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func renderValidationTable(summary m.ValidationSummary, mutants []MutantValidation) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Mutant", "Compiled", "Failed", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, mutant := range mutants {
		table.Append([]string{string(mutant.MutantID), strconv.Itoa(mutant.Compiled), strconv.Itoa(mutant.Failed), strconv.Itoa(mutant.Skipped)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%s (%d mutants, %s)", summary.Project, summary.Mutants, summary.Duration.Round(time.Millisecond)),
		strconv.Itoa(summary.Compiled),
		strconv.Itoa(summary.Failed),
		strconv.Itoa(summary.Skipped),
	})
	table.Render()

	return tableBuffer.String()
}

func renderAuditTable(report *m.AuditReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Group", "Mutants", "Candidates", "Fixed", "Rate"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	appendCounts := func(group string, counts m.AuditCounts) {
		table.Append([]string{
			group,
			strconv.Itoa(counts.Mutants),
			strconv.Itoa(counts.Candidates),
			strconv.Itoa(counts.Fixed),
			fmt.Sprintf("%.2f%%", counts.FixRate()*100),
		})
	}

	for _, project := range sortedKeys(report.PerProject) {
		appendCounts("project "+project, report.PerProject[project])
	}

	for _, mutator := range sortedKeys(report.PerMutator) {
		appendCounts("mutator "+mutator, report.PerMutator[mutator])
	}

	table.SetFooter([]string{
		"Total",
		strconv.Itoa(report.Total.Mutants),
		strconv.Itoa(report.Total.Candidates),
		strconv.Itoa(report.Total.Fixed),
		fmt.Sprintf("%.2f%%", report.Total.FixRate()*100),
	})
	table.Render()

	return tableBuffer.String()
}

func sortedKeys(counts map[string]m.AuditCounts) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
