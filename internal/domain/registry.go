package domain

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
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

// Names of the files the mutation tool leaves in a project checkout.
const (
	KillLogName    = "kill.csv"
	MutantsLogName = "mutants.log"
	MutantsDirName = "mutants"
)

// Outcomes in the kill log that make a mutant a target.
var targetOutcomes = map[string]struct{}{
	"FAIL": {},
	"EXC":  {},
}

// mutantLinePattern takes the last numeric field that is followed by exactly
// one trailing field.
var mutantLinePattern = regexp.MustCompile(`^.+:(\d+):[^:]+$`)

// RegistryOptions tunes how mutants are resolved.
type RegistryOptions struct {
	SourceExt  string
	SampleFile string // relative to the project root, optional
}

type mutantRow struct {
	line int
	kind string
}

// Registry is the typed table of one project's mutants, built once from the
// kill log and the mutants log. The first row of an id wins.
type Registry struct {
	fs        adapter.SourceFSAdapter
	project   m.ProjectContext
	sourceExt string
	targets   []m.MutantID
	rows      map[m.MutantID]mutantRow
}

// LoadRegistry reads the project's logs. Missing logs are a SetupError.
func LoadRegistry(ctx context.Context, fs adapter.SourceFSAdapter, project m.ProjectContext, opts RegistryOptions) (*Registry, error) {
	if opts.SourceExt == "" {
		opts.SourceExt = DefaultSourceExt
	}

	killLog := project.Root.Join(KillLogName)
	if !fs.Exists(ctx, killLog) {
		return nil, setupError(project.Name, "%s is missing", killLog)
	}

	mutantsLog := project.Root.Join(MutantsLogName)
	if !fs.Exists(ctx, mutantsLog) {
		return nil, setupError(project.Name, "%s is missing", mutantsLog)
	}

	killData, err := fs.ReadFile(ctx, killLog)
	if err != nil {
		return nil, setupError(project.Name, "read %s: %w", killLog, err)
	}

	targets, err := parseKillLog(killData)
	if err != nil {
		return nil, setupError(project.Name, "parse %s: %w", killLog, err)
	}

	mutantsData, err := fs.ReadFile(ctx, mutantsLog)
	if err != nil {
		return nil, setupError(project.Name, "read %s: %w", mutantsLog, err)
	}

	registry := &Registry{
		fs:        fs,
		project:   project,
		sourceExt: opts.SourceExt,
		targets:   targets,
		rows:      parseMutantsLog(mutantsData),
	}

	if opts.SampleFile != "" {
		if err := registry.restrictToSample(ctx, project.Root.Join(opts.SampleFile)); err != nil {
			return nil, setupError(project.Name, "read sample list: %w", err)
		}
	}

	slog.Info("Loaded mutant registry", "project", project.Name, "targets", len(registry.targets), "mutants", len(registry.rows))

	return registry, nil
}

// parseKillLog returns, in file order and without duplicates, the ids whose
// row carries a FAIL or EXC outcome.
func parseKillLog(data []byte) ([]m.MutantID, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var targets []m.MutantID

	seen := map[m.MutantID]struct{}{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if len(record) < 2 || !isTargetRow(record[1:]) {
			continue
		}

		id := m.MutantID(strings.TrimSpace(record[0]))
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		targets = append(targets, id)
	}

	return targets, nil
}

func isTargetRow(fields []string) bool {
	for _, field := range fields {
		if _, ok := targetOutcomes[strings.TrimSpace(field)]; ok {
			return true
		}
	}

	return false
}

func parseMutantsLog(data []byte) map[m.MutantID]mutantRow {
	rows := map[m.MutantID]mutantRow{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}

		id := m.MutantID(strings.TrimSpace(fields[0]))
		if _, ok := rows[id]; ok {
			continue
		}

		number, ok := sourceLineOf(line, fields)
		if !ok {
			slog.Debug("Ignoring mutants log row without a line number", "row", line)
			continue
		}

		rows[id] = mutantRow{line: number, kind: fields[1]}
	}

	return rows
}

// sourceLineOf extracts the line number. Rows whose trailing field contains
// ':' fall back to the right-most numeric field after the mutator kind.
func sourceLineOf(line string, fields []string) (int, bool) {
	if match := mutantLinePattern.FindStringSubmatch(line); match != nil {
		number, err := strconv.Atoi(match[1])
		if err == nil {
			return number, true
		}
	}

	for i := len(fields) - 2; i >= 2; i-- {
		if number, err := strconv.Atoi(fields[i]); err == nil {
			return number, true
		}
	}

	return 0, false
}

func (r *Registry) restrictToSample(ctx context.Context, path m.Path) error {
	if !r.fs.Exists(ctx, path) {
		return nil
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	targets := make(map[m.MutantID]struct{}, len(r.targets))
	for _, id := range r.targets {
		targets[id] = struct{}{}
	}

	var sampled []m.MutantID

	seen := map[m.MutantID]struct{}{}

	for _, line := range strings.Split(string(data), "\n") {
		id := m.MutantID(strings.TrimSpace(line))
		if id == "" {
			continue
		}

		if _, ok := targets[id]; !ok {
			slog.Warn("Sampled mutant is not a target, ignoring", "project", r.project.Name, "mutant", id)
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		sampled = append(sampled, id)
	}

	slog.Info("Restricted targets to sample", "project", r.project.Name, "sample", path, "targets", len(sampled))
	r.targets = sampled

	return nil
}

// Project returns the project the registry was loaded for.
func (r *Registry) Project() m.ProjectContext {
	return r.project
}

// Targets returns the target mutant ids in kill log order.
func (r *Registry) Targets() []m.MutantID {
	return append([]m.MutantID(nil), r.targets...)
}

// Line returns the 1-based source line of a mutant.
func (r *Registry) Line(id m.MutantID) (int, error) {
	row, ok := r.rows[id]
	if !ok {
		return 0, fmt.Errorf("mutant %s in %s: %w", id, MutantsLogName, ErrNotFound)
	}

	return row.line, nil
}

// MutatorKind returns the mutation operator of a mutant.
func (r *Registry) MutatorKind(id m.MutantID) (string, error) {
	row, ok := r.rows[id]
	if !ok {
		return "", fmt.Errorf("mutant %s in %s: %w", id, MutantsLogName, ErrNotFound)
	}

	return row.kind, nil
}

// SourcePath returns the isolated source copy of a mutant.
func (r *Registry) SourcePath(ctx context.Context, id m.MutantID) (m.Path, error) {
	dir := r.project.Root.Join(MutantsDirName, string(id))
	if !r.fs.Exists(ctx, dir) {
		return "", fmt.Errorf("mutant directory %s: %w", dir, ErrNotFound)
	}

	files, err := r.fs.FindFiles(ctx, dir, r.sourceExt)
	if err != nil {
		return "", err
	}

	if len(files) == 0 {
		return "", fmt.Errorf("%s source under %s: %w", r.sourceExt, dir, ErrNotFound)
	}

	if len(files) > 1 {
		slog.Warn("Mutant has several source files, using the first", "mutant", id, "files", len(files))
	}

	return files[0], nil
}

// RelativeSourcePath returns the mutant's source path relative to its
// directory, which mirrors the project's source class root.
func (r *Registry) RelativeSourcePath(ctx context.Context, id m.MutantID) (string, error) {
	source, err := r.SourcePath(ctx, id)
	if err != nil {
		return "", err
	}

	rel, err := r.fs.RelPath(ctx, r.project.Root.Join(MutantsDirName, string(id)), source)
	if err != nil {
		return "", err
	}

	return string(rel), nil
}

// Record assembles the full MutantRecord.
func (r *Registry) Record(ctx context.Context, id m.MutantID) (m.MutantRecord, error) {
	row, ok := r.rows[id]
	if !ok {
		return m.MutantRecord{}, fmt.Errorf("mutant %s in %s: %w", id, MutantsLogName, ErrNotFound)
	}

	source, err := r.SourcePath(ctx, id)
	if err != nil {
		return m.MutantRecord{}, err
	}

	rel, err := r.fs.RelPath(ctx, r.project.Root.Join(MutantsDirName, string(id)), source)
	if err != nil {
		return m.MutantRecord{}, err
	}

	return m.MutantRecord{
		ID:                 id,
		SourceLine:         row.line,
		MutatorKind:        row.kind,
		SourcePathAbsolute: source,
		SourcePathRelative: string(rel),
	}, nil
}
