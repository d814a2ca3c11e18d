package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/sourcegraph/go-diff/diff"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// NormalizeCode drops every whitespace rune.
func NormalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, code)
}

// IsExactlySameCode compares two statements ignoring all whitespace.
func IsExactlySameCode(a, b string) bool {
	return NormalizeCode(a) == NormalizeCode(b)
}

// Auditor compares candidates with the project's original source. It never
// writes to the project or the workspace.
type Auditor struct {
	fs    adapter.SourceFSAdapter
	store adapter.ReportStore
}

// NewAuditor constructs an Auditor.
func NewAuditor(fs adapter.SourceFSAdapter, store adapter.ReportStore) *Auditor {
	return &Auditor{fs: fs, store: store}
}

// GroundTruth is the mutated line as it reads in the unmutated project source.
func (a *Auditor) GroundTruth(ctx context.Context, registry *Registry, id m.MutantID) (string, error) {
	line, err := registry.Line(id)
	if err != nil {
		return "", err
	}

	rel, err := registry.RelativeSourcePath(ctx, id)
	if err != nil {
		return "", err
	}

	source, err := a.fs.ReadFile(ctx, registry.Project().SourceFile(rel))
	if err != nil {
		return "", fmt.Errorf("failed to read original source of mutant %s: %w", id, err)
	}

	lines := strings.Split(string(source), "\n")
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("line %d of mutant %s: %w", line, id, ErrNotFound)
	}

	return strings.TrimSpace(lines[line-1]), nil
}

// AuditPool audits the compiled candidates of the patch pool.
func (a *Auditor) AuditPool(ctx context.Context, registry *Registry, ws m.Workspace) (*m.AuditReport, error) {
	pooled, err := ReadPool(ctx, a.fs, a.store, ws)
	if err != nil {
		return nil, err
	}

	candidates := map[m.MutantID][]string{}

	for _, entry := range pooled {
		text := a.pooledCandidate(ctx, entry)
		candidates[entry.Entry.MutantID] = append(candidates[entry.Entry.MutantID], text)
	}

	return a.audit(ctx, registry, candidates)
}

// AuditRecovered audits the recovered candidate lists.
func (a *Auditor) AuditRecovered(ctx context.Context, registry *Registry, ws m.Workspace) (*m.AuditReport, error) {
	candidates := map[m.MutantID][]string{}

	for _, id := range registry.Targets() {
		path := ws.Recovered(id)
		if !a.fs.Exists(ctx, path) {
			continue
		}

		data, err := a.fs.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read recovered candidates of mutant %s: %w", id, err)
		}

		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				candidates[id] = append(candidates[id], line)
			}
		}
	}

	return a.audit(ctx, registry, candidates)
}

// audit records one verdict for every target mutant, with or without
// candidates.
func (a *Auditor) audit(ctx context.Context, registry *Registry, candidates map[m.MutantID][]string) (*m.AuditReport, error) {
	report := m.NewAuditReport()
	project := registry.Project().Name

	for _, id := range registry.Targets() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		truth, err := a.GroundTruth(ctx, registry, id)
		if err != nil {
			slog.Warn("Skipping mutant without ground truth", "project", project, "mutant", id, "error", err)
			continue
		}

		kind, _ := registry.MutatorKind(id)

		verdict := m.MutantAudit{
			Project:     project,
			MutantID:    id,
			MutatorKind: kind,
			GroundTruth: truth,
			Candidates:  len(candidates[id]),
		}

		for _, candidate := range candidates[id] {
			if IsExactlySameCode(candidate, truth) {
				verdict.Fixed = true
				verdict.MatchedBy = strings.TrimSpace(candidate)

				break
			}
		}

		report.Record(verdict)
	}

	slog.Info("Audited project", "project", project, "mutants", report.Total.Mutants, "fixed", report.Total.Fixed)

	return report, nil
}

// pooledCandidate reads the candidate back from the entry's patch.diff and
// falls back to the metadata.
func (a *Auditor) pooledCandidate(ctx context.Context, pooled PooledCandidate) string {
	path := pooled.Dir.Join(PatchDiffFileName)
	if !a.fs.NonEmpty(ctx, path) {
		return pooled.Entry.Candidate
	}

	data, err := a.fs.ReadFile(ctx, path)
	if err != nil {
		slog.Warn("Failed to read patch diff", "path", path, "error", err)
		return pooled.Entry.Candidate
	}

	added, err := AddedLines(data)
	if err != nil || len(added) == 0 {
		return pooled.Entry.Candidate
	}

	return strings.Join(added, "\n")
}

// AddedLines returns the added lines of a single-file unified diff.
func AddedLines(patch []byte) ([]string, error) {
	fileDiff, err := diff.ParseFileDiff(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to parse patch diff: %w", err)
	}

	var added []string

	for _, hunk := range fileDiff.Hunks {
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			if strings.HasPrefix(line, "+") {
				added = append(added, strings.TrimPrefix(line, "+"))
			}
		}
	}

	return added, nil
}
