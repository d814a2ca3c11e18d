package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// metaLabel is the project column the reranker copies into every key.
const metaLabel = "Mutant"

// RerankStage builds the metadata table and invokes the reranker.
type RerankStage struct {
	fs       adapter.SourceFSAdapter
	store    adapter.ReportStore
	reranker adapter.Reranker
}

// NewRerankStage constructs a RerankStage.
func NewRerankStage(fs adapter.SourceFSAdapter, store adapter.ReportStore, reranker adapter.Reranker) *RerankStage {
	return &RerankStage{fs: fs, store: store, reranker: reranker}
}

// MetaRow formats one metadata row:
// Mutant<TAB>id<TAB>srcRoot/rel<TAB>line<TAB>line.
func MetaRow(id m.MutantID, replacePath string, line int) string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d\n", metaLabel, id, replacePath, line, line)
}

// BuildMeta writes the metadata table unless it already exists. Rows follow
// the merge manifest so that row i describes merged ordinal i.
func (r *RerankStage) BuildMeta(ctx context.Context, registry *Registry, ws m.Workspace) (m.Path, error) {
	meta := ws.Meta()
	if r.fs.Exists(ctx, meta) {
		slog.Debug("Reusing metadata table", "path", meta)
		return meta, nil
	}

	ids, err := r.mergedIDs(ctx, registry, ws)
	if err != nil {
		return "", err
	}

	project := registry.Project()

	var b strings.Builder

	for _, id := range ids {
		line, err := registry.Line(id)
		if err != nil {
			return "", fmt.Errorf("failed to build metadata row: %w", err)
		}

		rel, err := registry.RelativeSourcePath(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to build metadata row: %w", err)
		}

		b.WriteString(MetaRow(id, project.ReplacePath(rel), line))
	}

	if err := r.fs.WriteFile(ctx, meta, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write metadata table: %w", err)
	}

	slog.Info("Wrote metadata table", "project", project.Name, "rows", len(ids))

	return meta, nil
}

func (r *RerankStage) mergedIDs(ctx context.Context, registry *Registry, ws m.Workspace) ([]m.MutantID, error) {
	manifest := ws.MergeManifest()
	if !r.fs.Exists(ctx, manifest) {
		slog.Warn("Merge manifest missing, describing every target mutant", "path", manifest)
		return registry.Targets(), nil
	}

	data, err := r.fs.ReadFile(ctx, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to read merge manifest: %w", err)
	}

	return parseManifest(data), nil
}

// Rerank produces the reranked-patches checkpoint and loads it. An existing
// checkpoint is loaded without invoking the reranker.
func (r *RerankStage) Rerank(ctx context.Context, registry *Registry, ws m.Workspace, backends []m.Backend) (m.RerankedPatches, error) {
	output := ws.Reranked()

	if !r.fs.NonEmpty(ctx, output) {
		meta, err := r.BuildMeta(ctx, registry, ws)
		if err != nil {
			return nil, err
		}

		streams := make([]m.Path, 0, len(backends))

		for _, backend := range backends {
			stream := ws.Merged(backend)
			if !r.fs.NonEmpty(ctx, stream) {
				return nil, fmt.Errorf("merged stream %s: %w", stream, ErrNotFound)
			}

			streams = append(streams, stream)
		}

		slog.Info("Reranking patches", "project", registry.Project().Name, "streams", len(streams))

		if err := r.reranker.Rerank(ctx, meta, streams, output); err != nil {
			return nil, fmt.Errorf("failed to rerank: %w", err)
		}
	}

	return LoadReranked(ctx, r.store, output)
}

// LoadReranked parses the checkpoint in file order.
func LoadReranked(ctx context.Context, store adapter.ReportStore, path m.Path) (m.RerankedPatches, error) {
	var entries m.RerankedPatches
	if err := store.LoadJSON(ctx, path, &entries); err != nil {
		return nil, fmt.Errorf("failed to load reranked patches: %w", err)
	}

	return entries, nil
}
