package domain_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutfix/internal/adapter"
	adaptermocks "gooze.dev/pkg/mutfix/internal/adapter/mocks"
	"gooze.dev/pkg/mutfix/internal/controller"
	controllermocks "gooze.dev/pkg/mutfix/internal/controller/mocks"
	domain "gooze.dev/pkg/mutfix/internal/domain"
	domainmocks "gooze.dev/pkg/mutfix/internal/domain/mocks"
	m "gooze.dev/pkg/mutfix/internal/model"
)

const workflowSource = `package org.x;
public class Calc {
    int add(int a, int b) {
        return a + b;
    }
    boolean less(int a, int b) {
        return a < b;
    }
}
`

const workflowReranked = `{"Mutant-1-src/org/x/Calc.java-4-4": {"patches": [{"patch": "return a + b ;", "score": -0.1}]}}`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// newCalcProject lays out a project with two target mutants, 1 and 3.
func newCalcProject(t *testing.T) (m.Path, m.Path) {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "Calc")

	writeTree(t, root, map[string]string{
		"src/org/x/Calc.java":       workflowSource,
		"build/org/x/Calc.class":    "class",
		"kill.csv":                  "1,FAIL\n2,PASS\n3,EXC\n",
		"mutants.log":               "1:AOR:+:-:org.x.Calc@add:4:a + b |==> a - b\n3:ROR:<:<=:org.x.Calc@less:7:a < b |==> a <= b\n",
		"mutants/1/org/x/Calc.java": strings.Replace(workflowSource, "a + b", "a - b", 1),
		"mutants/3/org/x/Calc.java": strings.Replace(workflowSource, "a < b", "a <= b", 1),
	})

	return m.Path(root), m.Path(filepath.Join(base, "work"))
}

func testConfig() domain.Config {
	config := domain.DefaultConfig()
	config.SourceRoot = "src"
	config.BinRoot = "build"

	return config
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// pipelineMocks are the external services of a pipeline under test.
type pipelineMocks struct {
	ui           *controllermocks.MockUI
	build        *adaptermocks.MockBuildTool
	tokenizer    *adaptermocks.MockTokenizer
	backend      *adaptermocks.MockGenerationBackend
	reranker     *adaptermocks.MockReranker
	orchestrator *domainmocks.MockOrchestrator
	projectLog   *bytes.Buffer
	logClosed    bool
}

func newPipeline(t *testing.T, config domain.Config) (domain.Workflow, *pipelineMocks) {
	t.Helper()

	mocks := &pipelineMocks{
		ui:           controllermocks.NewMockUI(t),
		build:        adaptermocks.NewMockBuildTool(t),
		tokenizer:    adaptermocks.NewMockTokenizer(t),
		backend:      adaptermocks.NewMockGenerationBackend(t),
		reranker:     adaptermocks.NewMockReranker(t),
		orchestrator: domainmocks.NewMockOrchestrator(t),
		projectLog:   &bytes.Buffer{},
	}
	mocks.backend.EXPECT().Name().Return("fconv").Maybe()

	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore()
	literals := adaptermocks.NewMockLiteralExtractor(t)
	reconstructor := domain.NewReconstructor(fs, mocks.tokenizer, literals, 0, 1)

	var logMu sync.Mutex

	wf := domain.NewWorkflow(config, domain.Pipeline{
		FS:           fs,
		Store:        store,
		Build:        mocks.build,
		UI:           mocks.ui,
		Batcher:      domain.NewBatcher(fs, mocks.tokenizer, 2),
		Generator:    domain.NewGenerator(fs, []adapter.GenerationBackend{mocks.backend}, "", 10, 2),
		Merger:       domain.NewMerger(fs, domain.MergeAll),
		Reranker:     domain.NewRerankStage(fs, store, mocks.reranker),
		Orchestrator: mocks.orchestrator,
		Recoverer:    domain.NewRecoverer(fs, reconstructor),
		Auditor:      domain.NewAuditor(fs, store),
		ProjectLog: func(m.Workspace) (slog.Handler, io.Closer, error) {
			handler := slog.NewTextHandler(&lockedWriter{mu: &logMu, w: mocks.projectLog}, nil)

			return handler, closerFunc(func() error {
				mocks.logClosed = true
				return nil
			}), nil
		},
	})

	return wf, mocks
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}

func (p *pipelineMocks) expectSession(mode sessionMode) {
	p.ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	p.ui.EXPECT().Close(mock.Anything).Return().Once()

	if mode == reportSession {
		p.ui.EXPECT().Wait(mock.Anything).Return().Once()
	}
}

type sessionMode int

const (
	reportSession sessionMode = iota
	runSession
)

func TestWorkflow_Run(t *testing.T) {
	root, workspace := newCalcProject(t)
	wf, p := newPipeline(t, testConfig())
	ws := m.NewWorkspace(workspace, "Calc")

	p.expectSession(runSession)
	p.ui.EXPECT().DisplayProject(mock.Anything, "Calc", 2).Return().Once()
	p.ui.EXPECT().DisplayStage(mock.Anything, "Calc", mock.Anything).Return().Times(len(domain.DefaultStages))
	p.ui.EXPECT().DisplaySkip(mock.Anything, "Calc", m.MutantID("3")).Return().Once()
	p.ui.EXPECT().DisplayError(mock.Anything, "Calc", mock.MatchedBy(func(err error) bool {
		return strings.HasPrefix(err.Error(), "prepare:")
	})).Return().Once()

	p.tokenizer.EXPECT().
		Prepare(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req adapter.PrepareRequest) error {
			if req.StartLine == 7 {
				return errors.New("tokenizer crashed")
			}

			for _, name := range []string{"input.txt", "identifier.txt", "identifier.tokens"} {
				if err := os.WriteFile(req.OutputDir.Join(name).String(), []byte("tokens\n"), 0o600); err != nil {
					return err
				}
			}

			return nil
		}).
		Times(2)

	p.backend.EXPECT().
		Generate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req adapter.GenerationRequest) error {
			return os.WriteFile(req.Output.String(), []byte("H-0\t-0.1\treturn a + b ;\n"), 0o600)
		}).
		Once()

	p.reranker.EXPECT().
		Rerank(mock.Anything, ws.Meta(), []m.Path{ws.Merged("fconv")}, ws.Reranked()).
		RunAndReturn(func(_ context.Context, _ m.Path, _ []m.Path, output m.Path) error {
			return os.WriteFile(output.String(), []byte(workflowReranked), 0o600)
		}).
		Once()

	poolID := 0
	outcomes := []m.ValidationOutcome{
		{MutantID: "1", Status: m.Compiled, PoolID: &poolID},
		{MutantID: "1", Status: m.Failed},
		{MutantID: "1", Status: m.Skipped},
	}

	p.orchestrator.EXPECT().
		Validate(mock.Anything, mock.MatchedBy(func(args domain.ValidationArgs) bool {
			return args.RunID == "run-7" && len(args.Entries) == 1 && args.Entries[0].Key.BugID == "1"
		})).
		RunAndReturn(func(_ context.Context, args domain.ValidationArgs) (m.ValidationSummary, error) {
			summary := m.ValidationSummary{Project: "Calc", Mutants: 1}
			for _, outcome := range outcomes {
				summary.Add(outcome)
				args.OnOutcome(outcome)
			}

			return summary, nil
		}).
		Once()

	p.ui.EXPECT().DisplayCandidate(mock.Anything, mock.Anything).Return().Times(len(outcomes))
	p.ui.EXPECT().
		DisplayValidationSummary(mock.Anything, mock.MatchedBy(func(s m.ValidationSummary) bool {
			return s.Compiled == 1 && s.Failed == 1 && s.Skipped == 1
		}), []controller.MutantValidation{{MutantID: "1", Compiled: 1, Failed: 1, Skipped: 1}}).
		Return().
		Once()

	err := wf.Run(context.Background(), domain.RunArgs{
		Projects:  []m.Path{root},
		Workspace: workspace,
		RunID:     "run-7",
	})
	require.NoError(t, err)

	assert.FileExists(t, ws.Merged("fconv").String())
	assert.FileExists(t, ws.Meta().String())
	assert.Equal(t, "1\n", readString(t, ws.MergeManifest()))

	spills, err := filepath.Glob(filepath.Join(ws.Dir.String(), "spill-*.gob"))
	require.NoError(t, err)
	assert.Empty(t, spills)

	assert.Contains(t, p.projectLog.String(), "Processing project")
	assert.Contains(t, p.projectLog.String(), "project=Calc")
	assert.True(t, p.logClosed)
}

func readString(t *testing.T, path m.Path) string {
	t.Helper()

	data, err := os.ReadFile(path.String())
	require.NoError(t, err)

	return string(data)
}

func TestWorkflow_Run_SetupErrorSkipsProject(t *testing.T) {
	root, workspace := newCalcProject(t)
	missing := m.Path(filepath.Join(filepath.Dir(root.String()), "Gone"))

	wf, p := newPipeline(t, testConfig())

	p.expectSession(runSession)
	p.ui.EXPECT().DisplayError(mock.Anything, "Gone", mock.Anything).Return().Once()
	p.ui.EXPECT().DisplayProject(mock.Anything, "Calc", 2).Return().Once()
	p.ui.EXPECT().DisplayStage(mock.Anything, "Calc", "audit").Return().Once()

	err := wf.Run(context.Background(), domain.RunArgs{
		Projects:  []m.Path{missing, root},
		Workspace: workspace,
		Stages:    []domain.Stage{domain.StageAudit},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSetup)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.FileExists(t, m.NewWorkspace(workspace, "Calc").Dir.Join(domain.AuditFileName).String())
}

func TestWorkflow_Run_ExportsClassRoots(t *testing.T) {
	root, workspace := newCalcProject(t)
	wf, p := newPipeline(t, domain.DefaultConfig())

	p.build.EXPECT().Export(mock.Anything, root, adapter.PropertySourceClasses).Return("src", nil).Once()
	p.build.EXPECT().Export(mock.Anything, root, adapter.PropertyBinClasses).Return("build", nil).Once()

	p.expectSession(runSession)
	p.ui.EXPECT().DisplayProject(mock.Anything, "Calc", 2).Return().Once()
	p.ui.EXPECT().DisplayStage(mock.Anything, "Calc", "audit").Return().Once()

	err := wf.Run(context.Background(), domain.RunArgs{
		Projects:  []m.Path{root},
		Workspace: workspace,
		Stages:    []domain.Stage{domain.StageAudit},
	})
	require.NoError(t, err)
}

func TestWorkflow_Run_ExportFailureIsSetupError(t *testing.T) {
	root, workspace := newCalcProject(t)
	wf, p := newPipeline(t, domain.DefaultConfig())

	p.build.EXPECT().Export(mock.Anything, root, adapter.PropertySourceClasses).Return("", errors.New("no build.xml")).Once()

	p.expectSession(runSession)
	p.ui.EXPECT().DisplayError(mock.Anything, "Calc", mock.Anything).Return().Once()

	err := wf.Run(context.Background(), domain.RunArgs{Projects: []m.Path{root}, Workspace: workspace})
	assert.ErrorIs(t, err, domain.ErrSetup)
}

func TestWorkflow_Run_ValidateWithoutCheckpoint(t *testing.T) {
	root, workspace := newCalcProject(t)
	wf, p := newPipeline(t, testConfig())

	p.expectSession(runSession)
	p.ui.EXPECT().DisplayProject(mock.Anything, "Calc", 2).Return().Once()
	p.ui.EXPECT().DisplayStage(mock.Anything, "Calc", "validate").Return().Once()
	p.ui.EXPECT().DisplayError(mock.Anything, "Calc", mock.MatchedBy(func(err error) bool {
		return errors.Is(err, domain.ErrNotFound)
	})).Return().Once()

	err := wf.Run(context.Background(), domain.RunArgs{
		Projects:  []m.Path{root},
		Workspace: workspace,
		Stages:    []domain.Stage{domain.StageValidate},
	})
	require.NoError(t, err)
}

func savePoolEntry(t *testing.T, ws m.Workspace, entry m.PoolEntry) {
	t.Helper()

	path := ws.PoolEntryDir(entry.ID).Join(domain.CandidateFileName)
	require.NoError(t, adapter.NewReportStore().SaveJSON(context.Background(), path, entry))
}

func TestWorkflow_List(t *testing.T) {
	root, workspace := newCalcProject(t)
	ws := m.NewWorkspace(workspace, "Calc")
	wf, p := newPipeline(t, testConfig())

	savePoolEntry(t, ws, m.PoolEntry{ID: 0, MutantID: "1", Candidate: "return a + b;"})
	writeTree(t, ws.MutantDir("1").String(), map[string]string{"input.txt": "tokens\n"})

	p.expectSession(reportSession)
	p.ui.EXPECT().DisplayTargets(mock.Anything, []controller.TargetRow{
		{Project: "Calc", MutantID: "1", MutatorKind: "AOR", Line: 4, Source: "src/org/x/Calc.java", Prepared: true, Pooled: 1},
		{Project: "Calc", MutantID: "3", MutatorKind: "ROR", Line: 7, Source: "src/org/x/Calc.java"},
	}).Return(nil).Once()

	err := wf.List(context.Background(), domain.ListArgs{Projects: []m.Path{root}, Workspace: workspace})
	require.NoError(t, err)
}

func TestWorkflow_View(t *testing.T) {
	root, workspace := newCalcProject(t)
	ws := m.NewWorkspace(workspace, "Calc")
	wf, p := newPipeline(t, testConfig())

	entries := []m.PoolEntry{
		{ID: 0, MutantID: "1", Candidate: "return a + b;"},
		{ID: 1, MutantID: "3", Candidate: "return a < b;"},
	}
	for _, entry := range entries {
		savePoolEntry(t, ws, entry)
	}

	p.expectSession(reportSession)
	p.ui.EXPECT().DisplayPool(mock.Anything, "Calc", entries).Return(nil).Once()

	err := wf.View(context.Background(), domain.ViewArgs{Projects: []m.Path{root}, Workspace: workspace})
	require.NoError(t, err)
}

func TestWorkflow_Audit(t *testing.T) {
	root, workspace := newCalcProject(t)
	ws := m.NewWorkspace(workspace, "Calc")
	wf, p := newPipeline(t, testConfig())

	writeTree(t, ws.RecoveredDir().String(), map[string]string{"1.txt": "return b;\nreturn a+b;\n"})

	output := m.Path(filepath.Join(t.TempDir(), "audit.yaml"))

	p.expectSession(reportSession)
	p.ui.EXPECT().
		DisplayAudit(mock.Anything, mock.MatchedBy(func(report *m.AuditReport) bool {
			return report.Total == m.AuditCounts{Mutants: 2, Candidates: 2, Fixed: 1}
		})).
		Return(nil).
		Once()

	err := wf.Audit(context.Background(), domain.AuditArgs{
		Projects:  []m.Path{root},
		Workspace: workspace,
		Source:    domain.AuditSourceRecovered,
		Output:    output,
		Format:    domain.FormatYAML,
	})
	require.NoError(t, err)

	report := readString(t, output)
	assert.Contains(t, report, "matched_by: return a+b;")
	assert.Contains(t, report, "per_mutator:")
}

func TestWorkflow_AuditUnknownFormat(t *testing.T) {
	root, workspace := newCalcProject(t)
	wf, p := newPipeline(t, testConfig())

	p.ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	p.ui.EXPECT().Close(mock.Anything).Return().Once()

	err := wf.Audit(context.Background(), domain.AuditArgs{
		Projects:  []m.Path{root},
		Workspace: workspace,
		Output:    m.Path(filepath.Join(t.TempDir(), "audit.csv")),
		Format:    "csv",
	})
	assert.Error(t, err)
}

func TestParseStages(t *testing.T) {
	stages, err := domain.ParseStages([]string{"Validate", " prepare", "merge", "prepare"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Stage{domain.StagePrepare, domain.StageMerge, domain.StageValidate}, stages)

	_, err = domain.ParseStages([]string{"deploy"})
	assert.Error(t, err)
}

// hypothesisPatches reads the tokenized patches out of merged backend streams.
func hypothesisPatches(t *testing.T, streams []m.Path) []m.ScoredPatch {
	t.Helper()

	var patches []m.ScoredPatch

	for _, stream := range streams {
		for _, line := range strings.Split(readString(t, stream), "\n") {
			fields := strings.Split(line, "\t")
			if len(fields) != 3 || !strings.HasPrefix(fields[0], "H-") {
				continue
			}

			score, err := strconv.ParseFloat(fields[1], 64)
			require.NoError(t, err)

			patches = append(patches, m.ScoredPatch{Patch: fields[2], Score: score})
		}
	}

	sort.SliceStable(patches, func(i, j int) bool { return patches[i].Score > patches[j].Score })

	return patches
}

func TestWorkflow_Run_TwoBackendsPoolOneFixedCandidate(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	root := filepath.Join(base, "Calc")
	workspace := m.Path(filepath.Join(base, "work"))

	writeTree(t, root, map[string]string{
		"src/org/x/Calc.java":       workflowSource,
		"build/org/x/Calc.class":    "class",
		"kill.csv":                  "1,FAIL\n",
		"mutants.log":               "1:AOR:+:-:org.x.Calc@add:4:a + b |==> a - b\n",
		"mutants/1/org/x/Calc.java": strings.Replace(workflowSource, "a + b", "a - b", 1),
	})

	project := m.ProjectContext{Root: m.Path(root), Name: "Calc", SourceClassRoot: "src", BinClassRoot: "build"}
	ws := m.NewWorkspace(workspace, "Calc")

	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore()
	ui := controllermocks.NewMockUI(t)

	tokenizer := adaptermocks.NewMockTokenizer(t)
	tokenizer.EXPECT().
		Prepare(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req adapter.PrepareRequest) error {
			for _, name := range []string{"input.txt", "identifier.txt", "identifier.tokens"} {
				if err := os.WriteFile(req.OutputDir.Join(name).String(), []byte("tokens\n"), 0o600); err != nil {
					return err
				}
			}

			return nil
		}).
		Once()
	tokenizer.EXPECT().
		Detokenize(mock.Anything, []string{"return", "a", "+", "b", ";"}, mock.Anything, mock.Anything).
		Return([]string{"return a + b;"}, nil).
		Times(2)

	literals := adaptermocks.NewMockLiteralExtractor(t)
	literals.EXPECT().
		Extract(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(adapter.LiteralPool{}, nil).
		Maybe()

	var backends []adapter.GenerationBackend

	for name, score := range map[string]string{"conut": "-0.2", "fconv": "-0.1"} {
		backend := adaptermocks.NewMockGenerationBackend(t)
		backend.EXPECT().Name().Return(name).Maybe()
		backend.EXPECT().
			Generate(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, req adapter.GenerationRequest) error {
				return os.WriteFile(req.Output.String(), []byte("H-0\t"+score+"\treturn a + b ;\n"), 0o600)
			}).
			Once()

		backends = append(backends, backend)
	}

	sort.Slice(backends, func(i, j int) bool { return backends[i].Name() < backends[j].Name() })

	reranker := adaptermocks.NewMockReranker(t)
	reranker.EXPECT().
		Rerank(mock.Anything, ws.Meta(), []m.Path{ws.Merged("conut"), ws.Merged("fconv")}, ws.Reranked()).
		RunAndReturn(func(_ context.Context, _ m.Path, streams []m.Path, output m.Path) error {
			data, err := json.Marshal(map[string]any{
				"Mutant-1-src/org/x/Calc.java-4-4": map[string]any{"patches": hypothesisPatches(t, streams)},
			})
			if err != nil {
				return err
			}

			return os.WriteFile(output.String(), data, 0o600)
		}).
		Once()

	build := adaptermocks.NewMockBuildTool(t)
	build.EXPECT().
		Compile(mock.Anything, m.Path(root)).
		RunAndReturn(func(context.Context, m.Path) (adapter.BuildResult, error) {
			line := strings.Split(readString(t, m.Path(filepath.Join(root, "src/org/x/Calc.java"))), "\n")[3]
			if strings.TrimSpace(line) == "return a + b;" {
				return adapter.BuildResult{Succeeded: true}, nil
			}

			return adapter.BuildResult{ExitCode: 1, Output: "error: incompatible types"}, nil
		}).
		Once()

	reconstructor := domain.NewReconstructor(fs, tokenizer, literals, 0, 1)
	orchestrator := domain.NewOrchestrator(fs, store, adapter.NewLocalCheckoutProvider(), build, reconstructor, domain.NopJournalOpener,
		domain.ValidationLimits{MaxCandidates: domain.DefaultMaxCandidates, MaxDuration: domain.DefaultMaxDuration})

	wf := domain.NewWorkflow(testConfig(), domain.Pipeline{
		FS:           fs,
		Store:        store,
		Build:        build,
		UI:           ui,
		Batcher:      domain.NewBatcher(fs, tokenizer, 1),
		Generator:    domain.NewGenerator(fs, backends, "", 10, 2),
		Merger:       domain.NewMerger(fs, domain.MergeAll),
		Reranker:     domain.NewRerankStage(fs, store, reranker),
		Orchestrator: orchestrator,
		Recoverer:    domain.NewRecoverer(fs, reconstructor),
		Auditor:      domain.NewAuditor(fs, store),
		ProjectLog: func(m.Workspace) (slog.Handler, io.Closer, error) {
			return slog.DiscardHandler, closerFunc(func() error { return nil }), nil
		},
	})

	stages := append(append([]domain.Stage{}, domain.DefaultStages...), domain.StageAudit)

	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().Close(mock.Anything).Return().Once()
	ui.EXPECT().DisplayProject(mock.Anything, "Calc", 1).Return().Once()
	ui.EXPECT().DisplayStage(mock.Anything, "Calc", mock.Anything).Return().Times(len(stages))
	ui.EXPECT().DisplayCandidate(mock.Anything, mock.Anything).Return().Times(2)
	ui.EXPECT().
		DisplayValidationSummary(mock.Anything, mock.MatchedBy(func(s m.ValidationSummary) bool {
			return s.Compiled == 1 && s.Failed == 0 && s.Skipped == 1
		}), mock.Anything).
		Return().
		Once()

	err := wf.Run(ctx, domain.RunArgs{
		Projects:  []m.Path{m.Path(root)},
		Workspace: workspace,
		Stages:    stages,
		RunID:     "run-e2e",
	})
	require.NoError(t, err)

	assert.Equal(t, workflowSource, readString(t, m.Path(filepath.Join(root, "src/org/x/Calc.java"))))

	pool, err := domain.ReadPool(ctx, fs, store, ws)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, m.MutantID("1"), pool[0].Entry.MutantID)
	assert.True(t, domain.IsExactlySameCode(pool[0].Entry.Candidate, "        return a + b;"))

	registry, err := domain.LoadRegistry(ctx, fs, project, domain.RegistryOptions{})
	require.NoError(t, err)

	report, err := domain.NewAuditor(fs, store).AuditPool(ctx, registry, ws)
	require.NoError(t, err)
	assert.Equal(t, m.AuditCounts{Mutants: 1, Candidates: 1, Fixed: 1}, report.Total)

	var saved m.AuditReport
	require.NoError(t, store.LoadJSON(ctx, ws.Dir.Join(domain.AuditFileName), &saved))
	assert.Equal(t, 1, saved.Total.Fixed)
}
