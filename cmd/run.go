package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/mutfix/internal/domain"
	m "gooze.dev/pkg/mutfix/internal/model"
)

var runParallelFlag int
var runBatchedFlag bool
var runStageFlags []string

const runLongDescription = `Run the pipeline for the given projects. Without --stage the stages
prepare, generate, merge, rerank and validate run in order; recover and
audit run only when selected.

` + projectArgsHelp

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [projects...]",
		Short: "Run the repair candidate pipeline",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := domain.ParseStages(runStageFlags)
			if err != nil {
				return err
			}

			return runPipeline(cmd, args, stages)
		},
	}

	configureRunFlags(cmd)
	cmd.Flags().StringArrayVar(&runStageFlags, stageFlagName, nil, "stage to run (repeatable): prepare, generate, merge, rerank, validate, recover, audit")

	return cmd
}

// stageDescriptions documents the single-stage shortcuts.
var stageDescriptions = map[domain.Stage]string{
	domain.StagePrepare:  "Tokenize the mutated lines into generation inputs",
	domain.StageGenerate: "Run every configured generation backend",
	domain.StageMerge:    "Merge per-mutant hypotheses into one stream per backend",
	domain.StageRerank:   "Rerank the merged streams into reranked_patches.json",
	domain.StageValidate: "Compile reconstructed candidates and fill the patch pool",
	domain.StageRecover:  "Write budgeted candidate lists without compiling",
}

// newStageCmd runs exactly one stage.
func newStageCmd(stage domain.Stage) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(stage) + " [projects...]",
		Short: stageDescriptions[stage],
		Long:  stageDescriptions[stage] + ".\n\n" + projectArgsHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args, []domain.Stage{stage})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)

	for _, stage := range []domain.Stage{
		domain.StagePrepare,
		domain.StageGenerate,
		domain.StageMerge,
		domain.StageRerank,
		domain.StageValidate,
		domain.StageRecover,
	} {
		rootCmd.AddCommand(newStageCmd(stage))
	}
}

// configureRunFlags declares the flags shared by run and the stage commands.
// They are bound to viper when the command executes, since several commands
// share the same keys.
func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, parallelFlagName, "p", viper.GetInt(parallelKey), "number of parallel tokenizer, backend and reconstruction workers")
	cmd.Flags().BoolVar(&runBatchedFlag, batchedFlagName, viper.GetBool(batchedKey), "use one concatenated input for all mutants of a project")

	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelKey)
		bindFlagToConfig(cmd.Flags().Lookup(batchedFlagName), batchedKey)
	}
}

func needsBackends(stages []domain.Stage) bool {
	if len(stages) == 0 {
		return true
	}

	for _, stage := range stages {
		if stage == domain.StageGenerate || stage == domain.StageMerge || stage == domain.StageRerank {
			return true
		}
	}

	return false
}

// runPipeline is shared by run and the single-stage commands.
func runPipeline(cmd *cobra.Command, args []string, stages []domain.Stage) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if needsBackends(stages) && len(cfg.Backends) == 0 {
		return errNoBackends
	}

	runID := uuid.NewString()
	slog.SetDefault(slog.Default().With("run", runID))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flush, err := startTelemetry(telemetryConfig{
		ServiceName: viper.GetString(telemetryServiceKey),
		RunID:       runID,
		TraceFile:   viper.GetString(telemetryTraceFileKey),
		MetricsFile: viper.GetString(telemetryMetricsKey),
	})
	if err != nil {
		return fmt.Errorf("failed to start telemetry: %w", err)
	}

	defer func() { _ = flush(context.WithoutCancel(ctx)) }()

	slog.Info("Starting run", "projects", args, "stages", stages, "workspace", cfg.Workspace, "parallel", cfg.Parallel)

	return getWorkflow(cmd, cfg).Run(ctx, domain.RunArgs{
		Projects:  parseProjects(args),
		Workspace: m.Path(cfg.Workspace),
		Stages:    stages,
		Batched:   viper.GetBool(batchedKey),
		RunID:     runID,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
