package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"gooze.dev/pkg/mutfix/internal/adapter"
	"gooze.dev/pkg/mutfix/internal/controller"
	m "gooze.dev/pkg/mutfix/internal/model"
	"gooze.dev/pkg/mutfix/pkg"
)

// Stage names one step of the pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StagePrepare  Stage = "prepare"
	StageGenerate Stage = "generate"
	StageMerge    Stage = "merge"
	StageRerank   Stage = "rerank"
	StageValidate Stage = "validate"
	StageRecover  Stage = "recover"
	StageAudit    Stage = "audit"
)

// AllStages lists every stage in execution order.
var AllStages = []Stage{StagePrepare, StageGenerate, StageMerge, StageRerank, StageValidate, StageRecover, StageAudit}

// DefaultStages run when no stage is selected.
var DefaultStages = []Stage{StagePrepare, StageGenerate, StageMerge, StageRerank, StageValidate}

// ParseStages validates stage names and returns them in execution order.
func ParseStages(names []string) ([]Stage, error) {
	selected := map[Stage]bool{}

	for _, name := range names {
		stage := Stage(strings.ToLower(strings.TrimSpace(name)))
		if !isStage(stage) {
			return nil, fmt.Errorf("unknown stage %q", name)
		}

		selected[stage] = true
	}

	stages := make([]Stage, 0, len(selected))

	for _, stage := range AllStages {
		if selected[stage] {
			stages = append(stages, stage)
		}
	}

	return stages, nil
}

func isStage(stage Stage) bool {
	for _, known := range AllStages {
		if stage == known {
			return true
		}
	}

	return false
}

// AuditSource selects the candidates the auditor reads.
type AuditSource string

// Audit sources.
const (
	AuditSourcePool      AuditSource = "pool"
	AuditSourceRecovered AuditSource = "recovered"
)

// Report formats of the audit command.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AuditFileName is the audit report written by the audit stage of a run.
const AuditFileName = "audit.json"

// RunArgs contains the arguments of a pipeline run.
type RunArgs struct {
	Projects  []m.Path
	Workspace m.Path
	Stages    []Stage
	Batched   bool
	RunID     string
}

// ListArgs contains the arguments of the list command.
type ListArgs struct {
	Projects  []m.Path
	Workspace m.Path
}

// ViewArgs contains the arguments of the view command.
type ViewArgs struct {
	Projects  []m.Path
	Workspace m.Path
}

// AuditArgs contains the arguments of the audit command.
type AuditArgs struct {
	Projects  []m.Path
	Workspace m.Path
	Source    AuditSource
	Output    m.Path
	Format    string
}

// Workflow drives the pipeline over a list of projects.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Audit(ctx context.Context, args AuditArgs) error
}

// Pipeline holds the components of every stage.
type Pipeline struct {
	FS           adapter.SourceFSAdapter
	Store        adapter.ReportStore
	Build        adapter.BuildTool
	UI           controller.UI
	Batcher      *Batcher
	Generator    *Generator
	Merger       *Merger
	Reranker     *RerankStage
	Orchestrator Orchestrator
	Recoverer    *Recoverer
	Auditor      *Auditor
	ProjectLog   ProjectLogFactory
}

type workflow struct {
	Pipeline
	config Config
}

// NewWorkflow creates a Workflow over the given components.
func NewWorkflow(config Config, pipeline Pipeline) Workflow {
	return &workflow{Pipeline: pipeline, config: config}
}

// projectRun carries the state shared by the stages of one project.
type projectRun struct {
	args     RunArgs
	project  m.ProjectContext
	registry *Registry
	ws       m.Workspace
	entries  m.RerankedPatches
	loaded   bool
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if len(args.Stages) == 0 {
		args.Stages = DefaultStages
	}

	if err := w.UI.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(ctx)

	var setupErrs []error

	for _, root := range args.Projects {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := w.runProject(ctx, root, args)
		if err == nil {
			continue
		}

		if !errors.Is(err, ErrSetup) {
			return err
		}

		slog.Error("Skipping project", "root", root, "error", err)
		w.UI.DisplayError(ctx, projectName(root), err)

		setupErrs = append(setupErrs, err)
	}

	return errors.Join(setupErrs...)
}

func (w *workflow) runProject(ctx context.Context, root m.Path, args RunArgs) error {
	project, registry, err := w.openProject(ctx, root)
	if err != nil {
		return err
	}

	ws := m.NewWorkspace(args.Workspace, project.Name)
	if err := w.FS.MkdirAll(ctx, ws.Dir); err != nil {
		return setupError(project.Name, "failed to create workspace %s: %w", ws.Dir, err)
	}

	restoreLog := redirectProjectLog(w.ProjectLog, ws, project.Name)
	defer restoreLog()

	slog.Info("Processing project", "root", root, "targets", len(registry.Targets()), "stages", args.Stages, "batched", args.Batched)
	w.UI.DisplayProject(ctx, project.Name, len(registry.Targets()))

	run := &projectRun{args: args, project: project, registry: registry, ws: ws}

	for _, stage := range args.Stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := w.runStage(ctx, run, stage)
		if err == nil {
			continue
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if errors.Is(err, ErrSetup) {
			return err
		}

		slog.Error("Stage failed", "project", project.Name, "stage", stage, "error", err)
		w.UI.DisplayError(ctx, project.Name, fmt.Errorf("%s: %w", stage, err))
	}

	return nil
}

func (w *workflow) runStage(ctx context.Context, run *projectRun, stage Stage) error {
	w.UI.DisplayStage(ctx, run.project.Name, string(stage))

	ctx, span := startStageSpan(ctx, run.project.Name, stage)
	defer span.End()

	started := time.Now()

	var err error

	switch stage {
	case StagePrepare:
		err = w.prepare(ctx, run)
	case StageGenerate:
		err = w.generate(ctx, run)
	case StageMerge:
		err = w.merge(ctx, run)
	case StageRerank:
		err = w.rerank(ctx, run)
	case StageValidate:
		err = w.validate(ctx, run)
	case StageRecover:
		err = w.recoverCandidates(ctx, run)
	case StageAudit:
		err = w.auditStage(ctx, run)
	default:
		err = fmt.Errorf("unknown stage %q", stage)
	}

	elapsed := time.Since(started)
	stageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	slog.Info("Stage finished", "project", run.project.Name, "stage", stage, "elapsed", elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (w *workflow) prepare(ctx context.Context, run *projectRun) error {
	artifacts, err := w.Batcher.PrepareAll(ctx, run.registry, run.ws, run.registry.Targets())

	if run.args.Batched && ctx.Err() == nil {
		if _, batchErr := w.Batcher.PrepareBatched(ctx, run.ws, artifacts); batchErr != nil {
			err = errors.Join(err, batchErr)
		}
	}

	return err
}

func (w *workflow) generate(ctx context.Context, run *projectRun) error {
	if run.args.Batched {
		_, err := w.Generator.GenerateAllBatched(ctx, run.ws.AllIn())
		return err
	}

	var artifacts []m.InputArtifact

	for _, id := range run.registry.Targets() {
		artifact := run.ws.Artifact(id)
		if !w.FS.NonEmpty(ctx, artifact.Input) {
			slog.Warn("Mutant has no prepared input", "mutant", id)
			continue
		}

		artifacts = append(artifacts, artifact)
	}

	_, err := w.Generator.GenerateAll(ctx, artifacts)

	return err
}

func (w *workflow) merge(ctx context.Context, run *projectRun) error {
	if run.args.Batched {
		_, err := w.Merger.MergeBatched(ctx, run.project.Name, run.ws, w.Generator.Backends())
		return err
	}

	result, err := w.Merger.Merge(ctx, run.project.Name, run.ws, run.registry.Targets(), w.Generator.Backends())
	if err != nil {
		return err
	}

	for _, id := range result.Skipped {
		w.UI.DisplaySkip(ctx, run.project.Name, id)
	}

	return nil
}

func (w *workflow) rerank(ctx context.Context, run *projectRun) error {
	entries, err := w.Reranker.Rerank(ctx, run.registry, run.ws, w.Generator.Backends())
	if err != nil {
		return err
	}

	run.entries, run.loaded = entries, true

	return nil
}

// reranked returns the checkpoint, loading it when rerank did not run in
// this invocation.
func (w *workflow) reranked(ctx context.Context, run *projectRun) (m.RerankedPatches, error) {
	if run.loaded {
		return run.entries, nil
	}

	path := run.ws.Reranked()
	if !w.FS.NonEmpty(ctx, path) {
		return nil, fmt.Errorf("reranked patches %s: %w", path, ErrNotFound)
	}

	entries, err := LoadReranked(ctx, w.Store, path)
	if err != nil {
		return nil, err
	}

	run.entries, run.loaded = entries, true

	return entries, nil
}

func (w *workflow) validate(ctx context.Context, run *projectRun) error {
	entries, err := w.reranked(ctx, run)
	if err != nil {
		return err
	}

	spill, err := pkg.NewFileSpill[m.ValidationOutcome](run.ws.Dir.String())
	if err != nil {
		return fmt.Errorf("failed to create outcome spill: %w", err)
	}

	defer func() {
		if err := spill.Remove(); err != nil {
			slog.Warn("Failed to remove outcome spill", "path", spill.Path(), "error", err)
		}
	}()

	summary, validateErr := w.Orchestrator.Validate(ctx, ValidationArgs{
		Registry:  run.registry,
		Workspace: run.ws,
		Entries:   entries,
		RunID:     run.args.RunID,
		OnOutcome: func(outcome m.ValidationOutcome) {
			w.UI.DisplayCandidate(ctx, outcome)

			if err := spill.Append(outcome); err != nil {
				slog.Warn("Failed to spill validation outcome", "error", err)
			}
		},
	})

	mutants, err := breakdown(spill)
	if err != nil {
		slog.Warn("Failed to read validation outcomes", "error", err)
	}

	slog.Info("Validation finished", "project", run.project.Name, "mutants", summary.Mutants,
		"compiled", summary.Compiled, "failed", summary.Failed, "skipped", summary.Skipped, "elapsed", summary.Duration)
	w.UI.DisplayValidationSummary(ctx, summary, mutants)

	return validateErr
}

// breakdown groups spilled outcomes by mutant in first-seen order.
func breakdown(spill pkg.FileSpill[m.ValidationOutcome]) ([]controller.MutantValidation, error) {
	var mutants []controller.MutantValidation

	index := map[m.MutantID]int{}

	err := spill.Range(func(_ uint64, outcome m.ValidationOutcome) error {
		i, ok := index[outcome.MutantID]
		if !ok {
			i = len(mutants)
			index[outcome.MutantID] = i
			mutants = append(mutants, controller.MutantValidation{MutantID: outcome.MutantID})
		}

		switch outcome.Status {
		case m.Compiled:
			mutants[i].Compiled++
		case m.Failed:
			mutants[i].Failed++
		case m.Skipped:
			mutants[i].Skipped++
		}

		return nil
	})

	return mutants, err
}

func (w *workflow) recoverCandidates(ctx context.Context, run *projectRun) error {
	entries, err := w.reranked(ctx, run)
	if err != nil {
		return err
	}

	_, err = w.Recoverer.Recover(ctx, run.registry, run.ws, entries, w.config.Recover)

	return err
}

func (w *workflow) auditStage(ctx context.Context, run *projectRun) error {
	report, err := w.Auditor.AuditPool(ctx, run.registry, run.ws)
	if err != nil {
		return err
	}

	return w.Store.SaveJSON(ctx, run.ws.Dir.Join(AuditFileName), report)
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.UI.Start(ctx, controller.WithReportMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(ctx)

	var (
		rows []controller.TargetRow
		errs []error
	)

	for _, root := range args.Projects {
		projectRows, err := w.listProject(ctx, root, args.Workspace)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			w.UI.DisplayError(ctx, projectName(root), err)
			errs = append(errs, err)

			continue
		}

		rows = append(rows, projectRows...)
	}

	if err := w.UI.DisplayTargets(ctx, rows); err != nil {
		slog.Error("Failed to display targets", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	w.UI.Wait(ctx)

	return errors.Join(errs...)
}

func (w *workflow) listProject(ctx context.Context, root, workspace m.Path) ([]controller.TargetRow, error) {
	project, registry, err := w.openProject(ctx, root)
	if err != nil {
		return nil, err
	}

	ws := m.NewWorkspace(workspace, project.Name)

	pooled, err := ReadPool(ctx, w.FS, w.Store, ws)
	if err != nil {
		return nil, err
	}

	perMutant := map[m.MutantID]int{}
	for _, candidate := range pooled {
		perMutant[candidate.Entry.MutantID]++
	}

	rows := make([]controller.TargetRow, 0, len(registry.Targets()))

	for _, id := range registry.Targets() {
		row := controller.TargetRow{
			Project:  project.Name,
			MutantID: id,
			Prepared: w.FS.NonEmpty(ctx, ws.Artifact(id).Input),
			Pooled:   perMutant[id],
		}

		row.Line, _ = registry.Line(id)
		row.MutatorKind, _ = registry.MutatorKind(id)

		if rel, err := registry.RelativeSourcePath(ctx, id); err == nil {
			row.Source = project.ReplacePath(rel)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.UI.Start(ctx, controller.WithReportMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(ctx)

	var errs []error

	for _, root := range args.Projects {
		name := projectName(root)
		ws := m.NewWorkspace(args.Workspace, name)

		pooled, err := ReadPool(ctx, w.FS, w.Store, ws)
		if err != nil {
			w.UI.DisplayError(ctx, name, err)
			errs = append(errs, err)

			continue
		}

		entries := make([]m.PoolEntry, 0, len(pooled))
		for _, candidate := range pooled {
			entries = append(entries, candidate.Entry)
		}

		if err := w.UI.DisplayPool(ctx, name, entries); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	w.UI.Wait(ctx)

	return errors.Join(errs...)
}

func (w *workflow) Audit(ctx context.Context, args AuditArgs) error {
	if err := w.UI.Start(ctx, controller.WithReportMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.UI.Close(ctx)

	report := m.NewAuditReport()

	var errs []error

	for _, root := range args.Projects {
		projectReport, err := w.auditProject(ctx, root, args)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			w.UI.DisplayError(ctx, projectName(root), err)
			errs = append(errs, err)

			continue
		}

		report.Merge(projectReport)
	}

	if args.Output != "" {
		if err := w.saveReport(ctx, args.Output, args.Format, report); err != nil {
			return err
		}
	}

	if err := w.UI.DisplayAudit(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.UI.Wait(ctx)

	return errors.Join(errs...)
}

func (w *workflow) auditProject(ctx context.Context, root m.Path, args AuditArgs) (*m.AuditReport, error) {
	project, registry, err := w.openProject(ctx, root)
	if err != nil {
		return nil, err
	}

	ws := m.NewWorkspace(args.Workspace, project.Name)

	if args.Source == AuditSourceRecovered {
		return w.Auditor.AuditRecovered(ctx, registry, ws)
	}

	return w.Auditor.AuditPool(ctx, registry, ws)
}

func (w *workflow) saveReport(ctx context.Context, path m.Path, format string, report *m.AuditReport) error {
	switch format {
	case "", FormatJSON:
		return w.Store.SaveJSON(ctx, path, report)
	case FormatYAML:
		return w.Store.SaveYAML(ctx, path, report)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// openProject resolves the project roots and loads its registry. Every
// failure is a SetupError.
func (w *workflow) openProject(ctx context.Context, root m.Path) (m.ProjectContext, *Registry, error) {
	project, err := w.resolveProject(ctx, root)
	if err != nil {
		return m.ProjectContext{}, nil, err
	}

	registry, err := LoadRegistry(ctx, w.FS, project, RegistryOptions{
		SourceExt:  w.config.SourceExt,
		SampleFile: w.config.SampleFile,
	})
	if err != nil {
		if errors.Is(err, ErrSetup) {
			return m.ProjectContext{}, nil, err
		}

		return m.ProjectContext{}, nil, &SetupError{Project: project.Name, Err: err}
	}

	return project, registry, nil
}

func (w *workflow) resolveProject(ctx context.Context, root m.Path) (m.ProjectContext, error) {
	name := projectName(root)

	if !w.FS.Exists(ctx, root) {
		return m.ProjectContext{}, setupError(name, "project root %s: %w", root, ErrNotFound)
	}

	sourceRoot := w.config.SourceRoot
	if sourceRoot == "" {
		exported, err := w.Build.Export(ctx, root, adapter.PropertySourceClasses)
		if err != nil {
			return m.ProjectContext{}, setupError(name, "failed to export source class root: %w", err)
		}

		sourceRoot = exported
	}

	binRoot := w.config.BinRoot
	if binRoot == "" {
		exported, err := w.Build.Export(ctx, root, adapter.PropertyBinClasses)
		if err != nil {
			return m.ProjectContext{}, setupError(name, "failed to export binary class root: %w", err)
		}

		binRoot = exported
	}

	return m.ProjectContext{Root: root, Name: name, SourceClassRoot: sourceRoot, BinClassRoot: binRoot}, nil
}

func projectName(root m.Path) string {
	return filepath.Base(filepath.Clean(root.String()))
}
