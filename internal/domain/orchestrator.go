package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// Orchestrator runs the validation loop: every candidate is patched into the
// project checkout, compiled, pooled on success and always rolled back.
type Orchestrator interface {
	Validate(ctx context.Context, args ValidationArgs) (m.ValidationSummary, error)
}

// ValidationArgs selects what one validation run processes.
type ValidationArgs struct {
	Registry  *Registry
	Workspace m.Workspace
	Entries   m.RerankedPatches
	RunID     string
	OnOutcome func(m.ValidationOutcome)
}

// ValidationLimits are the per-mutant guards. Both are always enforced.
type ValidationLimits struct {
	MaxCandidates int
	MaxDuration   time.Duration
}

// JournalOpener opens the attempt journal of a project workspace.
type JournalOpener func(ws m.Workspace) (adapter.Journal, error)

// BadgerJournalOpener stores the journal under the workspace's journal dir.
func BadgerJournalOpener(ws m.Workspace) (adapter.Journal, error) {
	return adapter.OpenBadgerJournal(adapter.DefaultJournalConfig(ws.JournalDir().String()))
}

// NopJournalOpener disables journaling.
func NopJournalOpener(m.Workspace) (adapter.Journal, error) {
	return adapter.NopJournal{}, nil
}

type orchestrator struct {
	fs            adapter.SourceFSAdapter
	store         adapter.ReportStore
	checkouts     adapter.CheckoutProvider
	build         adapter.BuildTool
	reconstructor *Reconstructor
	openJournal   JournalOpener
	limits        ValidationLimits
	now           func() time.Time
}

// NewOrchestrator constructs the validation loop.
func NewOrchestrator(
	fs adapter.SourceFSAdapter,
	store adapter.ReportStore,
	checkouts adapter.CheckoutProvider,
	build adapter.BuildTool,
	reconstructor *Reconstructor,
	openJournal JournalOpener,
	limits ValidationLimits,
) Orchestrator {
	if openJournal == nil {
		openJournal = NopJournalOpener
	}

	return &orchestrator{
		fs:            fs,
		store:         store,
		checkouts:     checkouts,
		build:         build,
		reconstructor: reconstructor,
		openJournal:   openJournal,
		limits:        limits,
		now:           time.Now,
	}
}

// validationRun is the state of one Validate call.
type validationRun struct {
	args     ValidationArgs
	project  m.ProjectContext
	checkout adapter.Checkout
	pool     *Pool
	journal  adapter.Journal
	summary  m.ValidationSummary
}

func (o *orchestrator) Validate(ctx context.Context, args ValidationArgs) (summary m.ValidationSummary, err error) {
	project := args.Registry.Project()
	started := o.now()

	checkout, err := o.checkouts.Acquire(ctx, project.Root, args.RunID)
	if err != nil {
		slog.Error("Failed to acquire project checkout", "project", project.Name, "error", err)
		return m.ValidationSummary{}, fmt.Errorf("failed to acquire checkout: %w", err)
	}

	defer func() {
		if releaseErr := checkout.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Error("Failed to release project checkout", "project", project.Name, "error", releaseErr)
			err = errors.Join(err, releaseErr)
		}
	}()

	pool, err := OpenPool(ctx, o.fs, o.store, project.Name, args.Workspace)
	if err != nil {
		return m.ValidationSummary{}, err
	}

	journal, err := o.openJournal(args.Workspace)
	if err != nil {
		slog.Error("Failed to open validation journal", "project", project.Name, "error", err)
		return m.ValidationSummary{}, fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if closeErr := journal.Close(); closeErr != nil {
			slog.Error("Failed to close validation journal", "error", closeErr)
		}
	}()

	run := &validationRun{
		args:     args,
		project:  project,
		checkout: checkout,
		pool:     pool,
		journal:  journal,
		summary:  m.ValidationSummary{Project: project.Name},
	}

	for _, entry := range args.Entries {
		if err := ctx.Err(); err != nil {
			run.summary.Duration = o.now().Sub(started)
			return run.summary, err
		}

		if err := o.validateEntry(ctx, run, entry); err != nil {
			run.summary.Duration = o.now().Sub(started)
			return run.summary, err
		}
	}

	run.summary.Duration = o.now().Sub(started)

	return run.summary, nil
}

// mutantTarget is what the loop needs to patch one mutant.
type mutantTarget struct {
	record   m.MutantRecord
	original []byte
	live     m.Path
	class    m.Path
}

// validateEntry returns an error only when the checkout can no longer be
// trusted or the context is done; everything else is logged and skipped.
func (o *orchestrator) validateEntry(ctx context.Context, run *validationRun, entry m.RerankedEntry) error {
	id := entry.Key.BugID

	ctx, span := startMutantSpan(ctx, "mutfix.validate.mutant", id)
	defer span.End()

	slog.Info(fmt.Sprintf("===== Mutant-%s =====", id), "project", run.project.Name, "patches", len(entry.Patches))

	target, err := o.resolveTarget(ctx, run, id)
	if err != nil {
		slog.Error("Skipping mutant that cannot be validated", "mutant", id, "error", err)
		return nil
	}

	pool, err := o.reconstructor.LiteralPool(ctx, run.project, entry.Key)
	if err != nil {
		slog.Error("Skipping mutant without literal pool", "mutant", id, "error", err)
		return nil
	}

	run.summary.Mutants++

	started := o.now()
	attempts := 0
	seen := map[string]struct{}{}

	for i, patch := range entry.Patches {
		if o.exhausted(id, attempts, started) {
			return nil
		}

		slog.Debug(fmt.Sprintf("***** Patch-%d *****", i), "tokenized", patch.Patch, "score", patch.Score)

		candidates, err := o.reconstructor.Reconstruct(ctx, patch, i, pool)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			slog.Warn("Skipping patch that failed to reconstruct", "mutant", id, "patch", i, "error", err)

			continue
		}

		for _, candidate := range candidates {
			if o.exhausted(id, attempts, started) {
				return nil
			}

			outcome, attempted, err := o.handleCandidate(ctx, run, entry, target, candidate, seen)
			if err != nil {
				return err
			}

			if attempted {
				attempts++
			}

			run.summary.Add(outcome)
			recordCandidate(run.project.Name, outcome.Status)

			if run.args.OnOutcome != nil {
				run.args.OnOutcome(outcome)
			}
		}
	}

	return nil
}

func (o *orchestrator) resolveTarget(ctx context.Context, run *validationRun, id m.MutantID) (mutantTarget, error) {
	record, err := run.args.Registry.Record(ctx, id)
	if err != nil {
		return mutantTarget{}, err
	}

	original, err := o.fs.ReadFile(ctx, record.SourcePathAbsolute)
	if err != nil {
		return mutantTarget{}, fmt.Errorf("failed to read mutant source: %w", err)
	}

	if _, err := ReplaceLine(original, record.SourceLine, ""); err != nil {
		return mutantTarget{}, err
	}

	live := run.project.SourceFile(record.SourcePathRelative)
	if !o.fs.Exists(ctx, live) {
		return mutantTarget{}, fmt.Errorf("project file %s: %w", live, ErrNotFound)
	}

	return mutantTarget{
		record:   record,
		original: original,
		live:     live,
		class:    run.project.ClassFile(record.SourcePathRelative),
	}, nil
}

func (o *orchestrator) exhausted(id m.MutantID, attempts int, started time.Time) bool {
	if attempts >= o.limits.MaxCandidates {
		slog.Warn("Candidate budget exhausted", "mutant", id, "max_candidates", o.limits.MaxCandidates)
		return true
	}

	if elapsed := o.now().Sub(started); elapsed >= o.limits.MaxDuration {
		slog.Warn("Time budget exhausted", "mutant", id, "elapsed", elapsed, "max_duration", o.limits.MaxDuration)
		return true
	}

	return false
}

// handleCandidate dedupes, consults the journal and compiles. attempted
// reports whether the candidate counts against the candidate budget.
func (o *orchestrator) handleCandidate(
	ctx context.Context,
	run *validationRun,
	entry m.RerankedEntry,
	target mutantTarget,
	candidate m.ConcretePatch,
	seen map[string]struct{},
) (m.ValidationOutcome, bool, error) {
	outcome := m.ValidationOutcome{
		MutantID:  entry.Key.BugID,
		Key:       entry.Key.String(),
		Candidate: candidate,
		Status:    m.Skipped,
	}

	normalized := NormalizeCode(candidate.Text)
	if _, ok := seen[normalized]; ok {
		slog.Debug("Skipping duplicate candidate", "mutant", outcome.MutantID, "candidate", candidate.Text)
		return outcome, false, nil
	}

	seen[normalized] = struct{}{}

	journalKey := outcome.Key + "|" + normalized

	previous, found, err := run.journal.Lookup(ctx, journalKey)
	if err != nil {
		slog.Warn("Journal lookup failed", "mutant", outcome.MutantID, "error", err)
	}

	if found {
		slog.Info("Skipping candidate validated by an earlier run", "mutant", outcome.MutantID, "status", previous.Status)
		outcome.PoolID = previous.PoolID

		return outcome, true, nil
	}

	outcome, err = o.attempt(ctx, run, target, outcome)
	if err != nil {
		return outcome, true, err
	}

	if outcome.Status == m.Skipped {
		return outcome, true, nil
	}

	record := adapter.JournalEntry{Status: outcome.Status, PoolID: outcome.PoolID, RunID: run.args.RunID, At: o.now().UTC()}
	if err := run.journal.Record(ctx, journalKey, record); err != nil {
		slog.Warn("Failed to journal candidate", "mutant", outcome.MutantID, "error", err)
	}

	return outcome, true, nil
}

// attempt patches, compiles and restores. The checkout is restored on every
// path before attempt returns.
func (o *orchestrator) attempt(ctx context.Context, run *validationRun, target mutantTarget, outcome m.ValidationOutcome) (result m.ValidationOutcome, err error) {
	patched, err := ReplaceLine(target.original, target.record.SourceLine, outcome.Candidate.Text)
	if err != nil {
		return outcome, err
	}

	defer func() {
		if restoreErr := run.checkout.Restore(ctx); restoreErr != nil {
			slog.Error("Failed to restore project file", "file", target.live, "error", restoreErr)
			err = errors.Join(err, restoreErr)
		}
	}()

	if err := run.checkout.Apply(ctx, target.live, patched); err != nil {
		slog.Error("Failed to apply candidate", "file", target.live, "error", err)
		return outcome, fmt.Errorf("failed to apply candidate: %w", err)
	}

	build, err := o.build.Compile(ctx, run.project.Root)
	if err != nil {
		slog.Error("Failed to run build tool", "project", run.project.Name, "error", err)
		return outcome, err
	}

	if !build.Succeeded {
		slog.Info("Compile Failed!", "mutant", outcome.MutantID, "exit", build.ExitCode, "timed_out", build.TimedOut)

		outcome.Status = m.Failed

		return outcome, nil
	}

	id, err := run.pool.Add(ctx, m.PoolEntry{
		MutantID:  outcome.MutantID,
		Key:       outcome.Key,
		Line:      target.record.SourceLine,
		Candidate: outcome.Candidate.Text,
		Tokenized: outcome.Candidate.Tokenized,
		Score:     outcome.Candidate.Score,
		RunID:     run.args.RunID,
	}, target.record.SourcePathRelative, PoolArtifacts{
		Source:   target.live,
		Class:    target.class,
		Original: target.original,
		Patched:  patched,
	})
	if err != nil {
		slog.Error("Compiled candidate could not be pooled", "mutant", outcome.MutantID, "error", err)
		return outcome, nil
	}

	slog.Info(fmt.Sprintf("Compile Succeeded! PatchId: %d", id), "mutant", outcome.MutantID)

	outcome.Status = m.Compiled
	outcome.PoolID = &id

	return outcome, nil
}

// ReplaceLine overwrites the 1-based line of source with text, keeping the
// line's indentation and line ending.
func ReplaceLine(source []byte, line int, text string) ([]byte, error) {
	lines := strings.SplitAfter(string(source), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if line < 1 || line > len(lines) {
		return nil, fmt.Errorf("line %d is outside the file (%d lines)", line, len(lines))
	}

	current := lines[line-1]

	ending := ""

	switch {
	case strings.HasSuffix(current, "\r\n"):
		ending = "\r\n"
	case strings.HasSuffix(current, "\n"):
		ending = "\n"
	}

	content := strings.TrimSuffix(current, ending)
	indent := content[:len(content)-len(strings.TrimLeft(content, " \t"))]

	lines[line-1] = indent + text + ending

	return []byte(strings.Join(lines, "")), nil
}
