package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// Batcher prepares one generation-ready input per mutant.
type Batcher struct {
	fs        adapter.SourceFSAdapter
	tokenizer adapter.Tokenizer
	parallel  int
}

// NewBatcher constructs a Batcher running at most parallel preparations at once.
func NewBatcher(fs adapter.SourceFSAdapter, tokenizer adapter.Tokenizer, parallel int) *Batcher {
	if parallel < 1 {
		parallel = 1
	}

	return &Batcher{fs: fs, tokenizer: tokenizer, parallel: parallel}
}

// PrepareInput translates the window [line, line+1) of the mutant's source
// copy. An existing non-empty input is returned unchanged.
func (b *Batcher) PrepareInput(ctx context.Context, registry *Registry, ws m.Workspace, id m.MutantID) (m.InputArtifact, error) {
	artifact := ws.Artifact(id)

	if b.fs.NonEmpty(ctx, artifact.Input) {
		slog.Debug("Input already prepared", "mutant", id)
		return artifact, nil
	}

	if err := b.fs.MkdirAll(ctx, artifact.Dir); err != nil {
		return m.InputArtifact{}, fmt.Errorf("failed to create mutant directory: %w", err)
	}

	line, err := registry.Line(id)
	if err != nil {
		return m.InputArtifact{}, err
	}

	source, err := registry.SourcePath(ctx, id)
	if err != nil {
		return m.InputArtifact{}, err
	}

	slog.Info("Preparing input", "project", registry.Project().Name, "mutant", id, "line", line)

	err = b.tokenizer.Prepare(ctx, adapter.PrepareRequest{
		SourceFile: source,
		StartLine:  line,
		EndLine:    line + 1,
		OutputDir:  artifact.Dir,
	})
	if err != nil {
		return m.InputArtifact{}, fmt.Errorf("failed to prepare input for mutant %s: %w", id, err)
	}

	return artifact, nil
}

// PrepareAll prepares every mutant in ids. A failing mutant is logged and
// left out; the returned error joins all per-mutant failures.
func (b *Batcher) PrepareAll(ctx context.Context, registry *Registry, ws m.Workspace, ids []m.MutantID) ([]m.InputArtifact, error) {
	artifacts := make([]m.InputArtifact, len(ids))
	failures := make([]error, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.parallel)

	for i, id := range ids {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			artifact, err := b.PrepareInput(groupCtx, registry, ws, id)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}

				slog.Error("Failed to prepare input", "mutant", id, "error", err)
				failures[i] = err

				return nil
			}

			artifacts[i] = artifact

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	prepared := make([]m.InputArtifact, 0, len(ids))

	for i := range ids {
		if failures[i] == nil {
			prepared = append(prepared, artifacts[i])
		}
	}

	return prepared, errors.Join(failures...)
}

// PrepareBatched concatenates prepared inputs into the all-in artifact and
// writes the id manifest that maps input rows back to mutants.
func (b *Batcher) PrepareBatched(ctx context.Context, ws m.Workspace, artifacts []m.InputArtifact) (m.InputArtifact, error) {
	allIn := ws.AllIn()

	var input, identifierText, identifierTokens, manifest strings.Builder

	for _, artifact := range artifacts {
		parts := []struct {
			path m.Path
			dst  *strings.Builder
		}{
			{artifact.Input, &input},
			{artifact.IdentifierText, &identifierText},
			{artifact.IdentifierTokens, &identifierTokens},
		}

		for _, part := range parts {
			data, err := b.fs.ReadFile(ctx, part.path)
			if err != nil {
				return m.InputArtifact{}, fmt.Errorf("failed to read %s: %w", part.path, err)
			}

			part.dst.Write(data)

			if len(data) > 0 && data[len(data)-1] != '\n' {
				part.dst.WriteByte('\n')
			}
		}

		manifest.WriteString(string(artifact.MutantID))
		manifest.WriteByte('\n')
	}

	outputs := map[m.Path]string{
		allIn.Input:            input.String(),
		allIn.IdentifierText:   identifierText.String(),
		allIn.IdentifierTokens: identifierTokens.String(),
		ws.AllInManifest():     manifest.String(),
	}

	for path, content := range outputs {
		if err := b.fs.WriteFile(ctx, path, []byte(content), 0o600); err != nil {
			return m.InputArtifact{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	slog.Info("Prepared batched input", "mutants", len(artifacts), "dir", allIn.Dir)

	return allIn, nil
}
