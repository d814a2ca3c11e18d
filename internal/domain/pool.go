package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/pmezard/go-difflib/difflib"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// Files written next to the artifacts of every pool entry.
const (
	CandidateFileName = "candidate.json"
	PatchDiffFileName = "patch.diff"
)

// PoolArtifacts are the files copied into a new pool entry.
type PoolArtifacts struct {
	Source   m.Path // patched source file, still in place in the checkout
	Class    m.Path // compiled class of the patched source
	Original []byte // mutant source before patching, for patch.diff
	Patched  []byte
}

// Pool is the append-only, numbered collection of compiled candidates of one
// project. It has a single writer.
type Pool struct {
	fs      adapter.SourceFSAdapter
	store   adapter.ReportStore
	project string
	ws      m.Workspace
	next    int
}

// OpenPool scans the pool directory and continues numbering after the
// highest existing id, so a restarted run never reuses an id.
func OpenPool(ctx context.Context, fs adapter.SourceFSAdapter, store adapter.ReportStore, project string, ws m.Workspace) (*Pool, error) {
	ids, err := poolIDs(ctx, fs, ws)
	if err != nil {
		return nil, err
	}

	next := 0
	if len(ids) > 0 {
		next = ids[len(ids)-1] + 1
	}

	if next > 0 {
		slog.Info("Resuming patch pool", "dir", ws.PoolDir(), "next", next)
	}

	return &Pool{fs: fs, store: store, project: project, ws: ws, next: next}, nil
}

func poolIDs(ctx context.Context, fs adapter.SourceFSAdapter, ws m.Workspace) ([]int, error) {
	dirs, err := fs.ListDirs(ctx, ws.PoolDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list patch pool: %w", err)
	}

	ids := make([]int, 0, len(dirs))

	for _, dir := range dirs {
		id, err := strconv.Atoi(dir)
		if err != nil || id < 0 {
			continue
		}

		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids, nil
}

// Next is the id the next Add will assign.
func (p *Pool) Next() int {
	return p.next
}

// Add stores a compiled candidate under the next id and advances the
// counter. On failure the partial entry is removed and the id stays free.
func (p *Pool) Add(ctx context.Context, entry m.PoolEntry, rel string, artifacts PoolArtifacts) (int, error) {
	id := p.next
	dir := p.ws.PoolEntryDir(id)

	entry.ID = id
	entry.SourceFile = rel
	entry.ClassFile = m.ClassName(rel)

	if err := p.write(ctx, dir, entry, artifacts); err != nil {
		if removeErr := p.fs.RemoveAll(ctx, dir); removeErr != nil {
			slog.Error("Failed to remove partial pool entry", "dir", dir, "error", removeErr)
		}

		return 0, err
	}

	p.next++
	poolEntriesTotal.WithLabelValues(p.project).Inc()

	return id, nil
}

func (p *Pool) write(ctx context.Context, dir m.Path, entry m.PoolEntry, artifacts PoolArtifacts) error {
	if err := p.fs.CopyFile(ctx, artifacts.Source, dir.Join(entry.SourceFile)); err != nil {
		return fmt.Errorf("failed to copy patched source: %w", err)
	}

	if err := p.fs.CopyFile(ctx, artifacts.Class, dir.Join(entry.ClassFile)); err != nil {
		return fmt.Errorf("failed to copy compiled class: %w", err)
	}

	diff, err := PatchDiff(entry.SourceFile, artifacts.Original, artifacts.Patched)
	if err != nil {
		return fmt.Errorf("failed to diff candidate: %w", err)
	}

	if err := p.fs.WriteFile(ctx, dir.Join(PatchDiffFileName), []byte(diff), 0o600); err != nil {
		return fmt.Errorf("failed to write patch diff: %w", err)
	}

	if err := p.store.SaveJSON(ctx, dir.Join(CandidateFileName), entry); err != nil {
		return fmt.Errorf("failed to write candidate metadata: %w", err)
	}

	return nil
}

// PatchDiff renders the unified diff between the mutant source and the
// patched source.
func PatchDiff(rel string, original, patched []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(patched)),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	})
}

// PooledCandidate is a pool entry read back from disk.
type PooledCandidate struct {
	Entry m.PoolEntry
	Dir   m.Path
}

// ReadPool lists the pool entries in id order. Directories without
// candidate metadata are skipped.
func ReadPool(ctx context.Context, fs adapter.SourceFSAdapter, store adapter.ReportStore, ws m.Workspace) ([]PooledCandidate, error) {
	ids, err := poolIDs(ctx, fs, ws)
	if err != nil {
		return nil, err
	}

	pooled := make([]PooledCandidate, 0, len(ids))

	for _, id := range ids {
		dir := ws.PoolEntryDir(id)
		metadata := dir.Join(CandidateFileName)

		if !fs.Exists(ctx, metadata) {
			slog.Warn("Pool entry without candidate metadata", "dir", dir)
			continue
		}

		var entry m.PoolEntry
		if err := store.LoadJSON(ctx, metadata, &entry); err != nil {
			return nil, err
		}

		pooled = append(pooled, PooledCandidate{Entry: entry, Dir: dir})
	}

	return pooled, nil
}
