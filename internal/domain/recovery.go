package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// Recoverer writes budgeted candidate lists without compiling them.
type Recoverer struct {
	fs            adapter.SourceFSAdapter
	reconstructor *Reconstructor
}

// NewRecoverer constructs a Recoverer.
func NewRecoverer(fs adapter.SourceFSAdapter, reconstructor *Reconstructor) *Recoverer {
	return &Recoverer{fs: fs, reconstructor: reconstructor}
}

// Recover writes recovered/<id>.txt, one candidate per line, for every entry
// whose file is still missing or empty. It returns the number of files written.
func (r *Recoverer) Recover(ctx context.Context, registry *Registry, ws m.Workspace, entries m.RerankedPatches, budget Budget) (int, error) {
	pending := make([]m.RerankedEntry, 0, len(entries))
	queued := map[m.MutantID]struct{}{}

	for _, entry := range entries {
		id := entry.Key.BugID
		if _, ok := queued[id]; ok {
			slog.Warn("Ignoring repeated reranked entry", "mutant", id, "key", entry.Key.String())
			continue
		}

		queued[id] = struct{}{}

		if r.fs.NonEmpty(ctx, ws.Recovered(id)) {
			slog.Debug("Recovered candidates already exist", "mutant", id)
			continue
		}

		pending = append(pending, entry)
	}

	results, err := r.reconstructor.ReconstructAll(ctx, registry.Project(), pending, budget)
	if err != nil {
		return 0, fmt.Errorf("failed to reconstruct candidates: %w", err)
	}

	written := 0

	for i, entry := range pending {
		if len(results[i]) == 0 {
			continue
		}

		var b strings.Builder
		for _, candidate := range results[i] {
			b.WriteString(candidate.Text)
			b.WriteByte('\n')
		}

		path := ws.Recovered(entry.Key.BugID)
		if err := r.fs.WriteFile(ctx, path, []byte(b.String()), 0o600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}

		written++
	}

	slog.Info("Recovered candidates", "project", registry.Project().Name, "written", written, "pending", len(pending))

	return written, nil
}
