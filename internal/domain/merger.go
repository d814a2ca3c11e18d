package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// MergePolicy decides which mutants enter the merged streams.
type MergePolicy string

const (
	// MergeAll merges a mutant only when every backend produced output.
	MergeAll MergePolicy = "all"
	// MergeAny merges a mutant when at least one backend produced output.
	MergeAny MergePolicy = "any"
)

// ordinalTag matches the per-mutant record tag, e.g. "H-0".
var ordinalTag = regexp.MustCompile(`(\w)-0`)

// MergeResult describes the rebuilt corpus streams.
type MergeResult struct {
	Streams []m.Path
	Merged  []m.MutantID // in ordinal order
	Skipped []m.MutantID
	Records int
}

// Merger concatenates per-mutant hypothesis files into corpus-wide streams.
type Merger struct {
	fs     adapter.SourceFSAdapter
	policy MergePolicy
}

// NewMerger constructs a Merger. An empty policy means MergeAll.
func NewMerger(fs adapter.SourceFSAdapter, policy MergePolicy) *Merger {
	if policy == "" {
		policy = MergeAll
	}

	return &Merger{fs: fs, policy: policy}
}

// RewriteOrdinal replaces the first "<word char>-0" tag of line with the
// given ordinal. Lines without a tag are returned unchanged.
func RewriteOrdinal(line string, ordinal int) string {
	loc := ordinalTag.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}

	// loc[3] is the end of the captured word character; the tag continues
	// with "-0".
	return line[:loc[3]] + "-" + strconv.Itoa(ordinal) + line[loc[1]:]
}

type streamWriter struct {
	path   m.Path
	file   io.WriteCloser
	buffer *bufio.Writer
}

// Merge truncates and rebuilds every backend stream. Mutants are visited in
// ids order; each merged mutant consumes one ordinal, starting at 0.
func (mg *Merger) Merge(ctx context.Context, project string, ws m.Workspace, ids []m.MutantID, backends []m.Backend) (MergeResult, error) {
	if len(backends) == 0 {
		return MergeResult{}, errors.New("no generation backends configured")
	}

	writers, err := mg.openStreams(ctx, ws, backends)
	if err != nil {
		return MergeResult{}, err
	}

	result := MergeResult{}

	mergeErr := func() error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}

			available := mg.available(ctx, ws, id, backends)
			if !mg.accepts(available, len(backends)) {
				slog.Info(fmt.Sprintf("Skipping Mutant-%s", id), "project", project, "reason", ErrMergeSkip)
				mergeSkippedTotal.WithLabelValues(project).Inc()

				result.Skipped = append(result.Skipped, id)

				continue
			}

			ordinal := len(result.Merged)
			slog.Debug("Combining hypotheses", "project", project, "mutant", id, "ordinal", ordinal)

			for i, backend := range backends {
				if !available[i] {
					continue
				}

				count, err := mg.appendRewritten(ctx, writers[i].buffer, m.Hypotheses(ws.MutantDir(id), backend), ordinal)
				if err != nil {
					return fmt.Errorf("failed to merge %s output of mutant %s: %w", backend, id, err)
				}

				result.Records += count
			}

			result.Merged = append(result.Merged, id)
		}

		return nil
	}()

	if err := closeStreams(writers); err != nil && mergeErr == nil {
		mergeErr = err
	}

	if mergeErr != nil {
		return MergeResult{}, mergeErr
	}

	for _, writer := range writers {
		result.Streams = append(result.Streams, writer.path)
	}

	if err := mg.writeManifest(ctx, ws.MergeManifest(), result.Merged); err != nil {
		return MergeResult{}, err
	}

	slog.Info("Merged hypothesis streams", "project", project, "merged", len(result.Merged), "skipped", len(result.Skipped), "records", result.Records)

	return result, nil
}

// MergeBatched publishes the all-in outputs as the corpus streams. Batched
// generation already numbers records by input row, so lines are copied as-is.
func (mg *Merger) MergeBatched(ctx context.Context, project string, ws m.Workspace, backends []m.Backend) (MergeResult, error) {
	manifest, err := mg.fs.ReadFile(ctx, ws.AllInManifest())
	if err != nil {
		return MergeResult{}, fmt.Errorf("failed to read batched manifest: %w", err)
	}

	result := MergeResult{Merged: parseManifest(manifest)}

	for _, backend := range backends {
		src := m.Hypotheses(ws.AllIn().Dir, backend)
		if !mg.fs.NonEmpty(ctx, src) {
			return MergeResult{}, &GenerationError{Backend: backend, Err: fmt.Errorf("batched output %s is missing or empty", src)}
		}

		dst := ws.Merged(backend)
		if err := mg.fs.CopyFile(ctx, src, dst); err != nil {
			return MergeResult{}, fmt.Errorf("failed to publish %s: %w", src, err)
		}

		result.Streams = append(result.Streams, dst)
	}

	if err := mg.writeManifest(ctx, ws.MergeManifest(), result.Merged); err != nil {
		return MergeResult{}, err
	}

	slog.Info("Published batched hypothesis streams", "project", project, "merged", len(result.Merged))

	return result, nil
}

func (mg *Merger) openStreams(ctx context.Context, ws m.Workspace, backends []m.Backend) ([]streamWriter, error) {
	writers := make([]streamWriter, 0, len(backends))

	for _, backend := range backends {
		path := ws.Merged(backend)

		file, err := mg.fs.Create(ctx, path)
		if err != nil {
			_ = closeStreams(writers)
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}

		writers = append(writers, streamWriter{path: path, file: file, buffer: bufio.NewWriter(file)})
	}

	return writers, nil
}

func closeStreams(writers []streamWriter) error {
	var errs []error

	for _, writer := range writers {
		if err := writer.buffer.Flush(); err != nil {
			errs = append(errs, err)
		}

		if err := writer.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (mg *Merger) available(ctx context.Context, ws m.Workspace, id m.MutantID, backends []m.Backend) []bool {
	available := make([]bool, len(backends))
	for i, backend := range backends {
		available[i] = mg.fs.NonEmpty(ctx, m.Hypotheses(ws.MutantDir(id), backend))
	}

	return available
}

func (mg *Merger) accepts(available []bool, backends int) bool {
	count := 0

	for _, ok := range available {
		if ok {
			count++
		}
	}

	if mg.policy == MergeAny {
		return count > 0
	}

	return count == backends
}

// appendRewritten copies src into dst line by line, rewriting each line's
// ordinal tag once.
func (mg *Merger) appendRewritten(ctx context.Context, dst *bufio.Writer, src m.Path, ordinal int) (int, error) {
	file, err := mg.fs.Open(ctx, src)
	if err != nil {
		return 0, err
	}

	defer func() { _ = file.Close() }()

	reader := bufio.NewReader(file)
	count := 0

	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}

			if _, err := dst.WriteString(RewriteOrdinal(line, ordinal)); err != nil {
				return count, err
			}

			count++
		}

		if errors.Is(readErr, io.EOF) {
			return count, nil
		}

		if readErr != nil {
			return count, readErr
		}
	}
}

func (mg *Merger) writeManifest(ctx context.Context, path m.Path, ids []m.MutantID) error {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(string(id))
		b.WriteByte('\n')
	}

	if err := mg.fs.WriteFile(ctx, path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write merge manifest: %w", err)
	}

	return nil
}

// parseManifest reads one id per line, ignoring blank lines.
func parseManifest(data []byte) []m.MutantID {
	var ids []m.MutantID

	for _, line := range strings.Split(string(data), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, m.MutantID(id))
		}
	}

	return ids
}
