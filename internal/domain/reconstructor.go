package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// MaxCandidatesPerPatch bounds the concrete statements taken from one
// tokenized patch.
const MaxCandidatesPerPatch = 5

// Budget is the per-mutant candidate budget of the recovery path.
type Budget struct {
	// Count is the number of candidates to keep. Zero or less keeps all.
	Count int `mapstructure:"candidates"`
	// Evenly keeps only the first statement of each tokenized patch when
	// Count is positive.
	Evenly bool `mapstructure:"evenly"`
}

// Reconstructor expands tokenized patches into concrete statements.
type Reconstructor struct {
	fs        adapter.SourceFSAdapter
	tokenizer adapter.Tokenizer
	literals  adapter.LiteralExtractor
	window    int
	parallel  int
}

// NewReconstructor constructs a Reconstructor.
func NewReconstructor(fs adapter.SourceFSAdapter, tokenizer adapter.Tokenizer, literals adapter.LiteralExtractor, window, parallel int) *Reconstructor {
	if parallel < 1 {
		parallel = 1
	}

	return &Reconstructor{fs: fs, tokenizer: tokenizer, literals: literals, window: window, parallel: parallel}
}

// LiteralPool collects the literals around the midpoint of the entry's span
// in the project's copy of the file.
func (r *Reconstructor) LiteralPool(ctx context.Context, project m.ProjectContext, key m.RerankKey) (adapter.LiteralPool, error) {
	source, err := r.fs.ReadFile(ctx, project.Root.Join(key.Path))
	if err != nil {
		return adapter.LiteralPool{}, fmt.Errorf("failed to read %s: %w", key.Path, err)
	}

	pool, err := r.literals.Extract(ctx, source, key.Midpoint(), r.window, adapter.DefaultLiteralLimit)
	if err != nil {
		return adapter.LiteralPool{}, fmt.Errorf("failed to collect literals of %s: %w", key.Path, err)
	}

	return pool, nil
}

// Reconstruct detokenizes one patch and keeps at most MaxCandidatesPerPatch
// trimmed, non-empty statements.
func (r *Reconstructor) Reconstruct(ctx context.Context, patch m.ScoredPatch, patchIndex int, pool adapter.LiteralPool) ([]m.ConcretePatch, error) {
	statements, err := r.tokenizer.Detokenize(ctx, patch.Tokens(), pool.Numbers, pool.Strings)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct patch %d: %w", patchIndex, err)
	}

	candidates := make([]m.ConcretePatch, 0, MaxCandidatesPerPatch)

	for _, statement := range statements {
		if len(candidates) == MaxCandidatesPerPatch {
			break
		}

		text := strings.TrimSpace(statement)
		if text == "" {
			continue
		}

		candidates = append(candidates, m.ConcretePatch{
			Text:       text,
			Tokenized:  patch.Patch,
			Score:      patch.Score,
			PatchIndex: patchIndex,
			Index:      len(candidates),
		})
	}

	return candidates, nil
}

// ReconstructBudgeted applies the budget to one entry. Patches are consulted
// in order and never after the budget is filled. A patch that fails to
// reconstruct is logged and contributes nothing.
func (r *Reconstructor) ReconstructBudgeted(ctx context.Context, entry m.RerankedEntry, pool adapter.LiteralPool, budget Budget) ([]m.ConcretePatch, error) {
	var kept []m.ConcretePatch

	contributing := 0

	for i, patch := range entry.Patches {
		if budget.Count > 0 {
			if budget.Evenly && contributing >= budget.Count {
				break
			}

			if !budget.Evenly && len(kept) >= budget.Count {
				break
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := r.Reconstruct(ctx, patch, i, pool)
		if err != nil {
			slog.Warn("Skipping patch that failed to reconstruct", "key", entry.Key.String(), "patch", i, "error", err)
			continue
		}

		if len(candidates) == 0 {
			continue
		}

		contributing++

		// A non-positive count keeps everything, whatever Evenly says.
		switch {
		case budget.Count <= 0:
			kept = append(kept, candidates...)
		case budget.Evenly:
			kept = append(kept, candidates[0])
		default:
			room := budget.Count - len(kept)
			if len(candidates) > room {
				candidates = candidates[:room]
			}

			kept = append(kept, candidates...)
		}
	}

	return kept, nil
}

// ReconstructAll reconstructs many entries in parallel. The result is
// aligned with entries; an entry whose literal pool cannot be built yields
// nil and is logged.
func (r *Reconstructor) ReconstructAll(ctx context.Context, project m.ProjectContext, entries []m.RerankedEntry, budget Budget) ([][]m.ConcretePatch, error) {
	results := make([][]m.ConcretePatch, len(entries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.parallel)

	for i, entry := range entries {
		group.Go(func() error {
			pool, err := r.LiteralPool(groupCtx, project, entry.Key)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}

				slog.Error("Failed to build literal pool", "key", entry.Key.String(), "error", err)

				return nil
			}

			candidates, err := r.ReconstructBudgeted(groupCtx, entry, pool, budget)
			if err != nil {
				return err
			}

			results[i] = candidates

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
