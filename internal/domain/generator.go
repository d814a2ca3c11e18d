package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// Generator drives the generation backends.
type Generator struct {
	fs         adapter.SourceFSAdapter
	backends   []adapter.GenerationBackend
	vocabulary m.Path
	beam       int
	parallel   int
}

// NewGenerator constructs a Generator for the configured backends.
func NewGenerator(fs adapter.SourceFSAdapter, backends []adapter.GenerationBackend, vocabulary m.Path, beam, parallel int) *Generator {
	if parallel < 1 {
		parallel = 1
	}

	return &Generator{fs: fs, backends: backends, vocabulary: vocabulary, beam: beam, parallel: parallel}
}

// Backends returns the names of the configured backends in order.
func (g *Generator) Backends() []m.Backend {
	names := make([]m.Backend, 0, len(g.backends))
	for _, backend := range g.backends {
		names = append(names, backend.Name())
	}

	return names
}

// Generate runs one backend for one mutant. Existing non-empty output is
// reused. Failures are returned as *GenerationError.
func (g *Generator) Generate(ctx context.Context, artifact m.InputArtifact, backend adapter.GenerationBackend, beam int) (m.HypothesisFile, error) {
	return g.generate(ctx, artifact, backend, beam, true)
}

// GenerateBatched runs one backend over the all-in input. There is no
// per-item skip in this mode.
func (g *Generator) GenerateBatched(ctx context.Context, allIn m.InputArtifact, backend adapter.GenerationBackend) (m.HypothesisFile, error) {
	return g.generate(ctx, allIn, backend, g.beam, false)
}

func (g *Generator) generate(ctx context.Context, artifact m.InputArtifact, backend adapter.GenerationBackend, beam int, skipExisting bool) (m.HypothesisFile, error) {
	output := m.Hypotheses(artifact.Dir, backend.Name())
	hypotheses := m.HypothesisFile{MutantID: artifact.MutantID, Backend: backend.Name(), Path: output}

	if skipExisting && g.fs.NonEmpty(ctx, output) {
		slog.Debug("Hypotheses already generated", "mutant", artifact.MutantID, "backend", backend.Name())
		return hypotheses, nil
	}

	for _, input := range []m.Path{artifact.Input, artifact.IdentifierText, artifact.IdentifierTokens} {
		if !g.fs.Exists(ctx, input) {
			return m.HypothesisFile{}, g.failure(artifact, backend, fmt.Errorf("input %s: %w", input, ErrNotFound))
		}
	}

	slog.Info("Generating patches", "mutant", artifact.MutantID, "backend", backend.Name(), "beam", beam)

	err := backend.Generate(ctx, adapter.GenerationRequest{
		Vocabulary:       g.vocabulary,
		Input:            artifact.Input,
		IdentifierText:   artifact.IdentifierText,
		IdentifierTokens: artifact.IdentifierTokens,
		Output:           output,
		Beam:             beam,
	})
	if err != nil {
		return m.HypothesisFile{}, g.failure(artifact, backend, err)
	}

	if !g.fs.NonEmpty(ctx, output) {
		return m.HypothesisFile{}, g.failure(artifact, backend, fmt.Errorf("output %s is missing or empty", output))
	}

	return hypotheses, nil
}

func (g *Generator) failure(artifact m.InputArtifact, backend adapter.GenerationBackend, err error) error {
	generationFailuresTotal.WithLabelValues(string(backend.Name())).Inc()

	return &GenerationError{MutantID: artifact.MutantID, Backend: backend.Name(), Err: err}
}

// GenerateAll runs every backend for every artifact. Mutants run in
// parallel, the backends of one mutant in order. A failure never stops the
// siblings; the returned error joins every GenerationError.
func (g *Generator) GenerateAll(ctx context.Context, artifacts []m.InputArtifact) ([]m.HypothesisFile, error) {
	results := make([][]m.HypothesisFile, len(artifacts))
	failures := make([][]error, len(artifacts))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.parallel)

	for i, artifact := range artifacts {
		group.Go(func() error {
			spanCtx, span := startMutantSpan(groupCtx, "mutfix.generate.mutant", artifact.MutantID)
			defer span.End()

			for _, backend := range g.backends {
				if err := spanCtx.Err(); err != nil {
					return err
				}

				hypotheses, err := g.Generate(spanCtx, artifact, backend, g.beam)
				if err != nil {
					if spanCtx.Err() != nil {
						return spanCtx.Err()
					}

					slog.Error("Failed to generate patches", "mutant", artifact.MutantID, "backend", backend.Name(), "error", err)
					failures[i] = append(failures[i], err)

					continue
				}

				results[i] = append(results[i], hypotheses)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var (
		files []m.HypothesisFile
		errs  []error
	)

	for i := range artifacts {
		files = append(files, results[i]...)
		errs = append(errs, failures[i]...)
	}

	return files, errors.Join(errs...)
}

// GenerateAllBatched runs every backend once over the all-in input, one
// backend at a time. Failures are joined and never stop the next backend.
func (g *Generator) GenerateAllBatched(ctx context.Context, allIn m.InputArtifact) ([]m.HypothesisFile, error) {
	var (
		files []m.HypothesisFile
		errs  []error
	)

	for _, backend := range g.backends {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		hypotheses, err := g.GenerateBatched(ctx, allIn, backend)
		if err != nil {
			if ctx.Err() != nil {
				return files, ctx.Err()
			}

			slog.Error("Failed to generate batched patches", "backend", backend.Name(), "error", err)
			errs = append(errs, err)

			continue
		}

		files = append(files, hypotheses)
	}

	return files, errors.Join(errs...)
}
