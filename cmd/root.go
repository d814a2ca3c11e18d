// Package cmd provides the root command and CLI setup for mutfix.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gooze.dev/pkg/mutfix/internal/adapter"
	"gooze.dev/pkg/mutfix/internal/controller"
	"gooze.dev/pkg/mutfix/internal/domain"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// workflow and ui are built from the configuration on first use. Tests
// replace them with mocks.
var workflow domain.Workflow
var ui controller.UI

var configFileFlag string
var workspaceFlag string
var verboseFlag bool

const projectArgsHelp = `Each argument is the root of one project checkout containing kill.csv,
mutants.log and the mutants/ directory. Projects are processed in order.`

const rootLongDescription = `mutfix turns killed mutants into repair candidates: it prepares
model inputs for every killed mutant, runs the configured patch generation
backends, reranks their hypotheses and keeps the candidates that compile.

` + projectArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mutfix",
		Short:        "Mutant repair candidate pipeline",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfigFile(configFileFlag); err != nil {
				return err
			}

			configureLogger(viper.GetBool(verboseFlagName))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&workspaceFlag, workspaceFlagName, "w", viper.GetString(workspaceKey), "workspace directory for pipeline artifacts")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(workspaceFlagName), workspaceKey)

	cmd.PersistentFlags().StringVar(&configFileFlag, configFlagName, "", "config file (default ./"+configFileName+")")

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), verboseFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseProjects(args []string) []m.Path {
	projects := make([]m.Path, 0, len(args))
	for _, arg := range args {
		projects = append(projects, m.Path(arg))
	}

	return projects
}

func getUI(cmd *cobra.Command) controller.UI {
	if ui == nil {
		ui = controller.NewUI(cmd, controller.IsTTY(os.Stdout))
	}

	return ui
}

func getWorkflow(cmd *cobra.Command, cfg domain.Config) domain.Workflow {
	if workflow == nil {
		workflow = buildWorkflow(cfg, getUI(cmd), viper.GetBool(verboseFlagName))
	}

	return workflow
}

// buildWorkflow wires every adapter and stage from the configuration.
func buildWorkflow(cfg domain.Config, out controller.UI, verbose bool) domain.Workflow {
	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore()
	runner := adapter.NewExecRunner()

	build := adapter.NewLocalBuildTool(runner,
		viper.GetString(compileCommandKey),
		viper.GetString(exportCommandKey),
		viper.GetDuration(buildTimeoutKey),
	)
	tokenizer := adapter.NewCommandTokenizer(runner, viper.GetString(tokenizerCommandKey), viper.GetDuration(tokenizerTimeoutKey))
	reranker := adapter.NewCommandReranker(runner, viper.GetString(rerankerCommandKey), viper.GetDuration(rerankerTimeoutKey))

	backends := make([]adapter.GenerationBackend, 0, len(cfg.Backends))
	for _, backend := range cfg.Backends {
		backends = append(backends, adapter.NewCommandBackend(backend, runner, viper.GetDuration(generationTimeoutKey)))
	}

	reconstructor := domain.NewReconstructor(fs, tokenizer, adapter.NewJavaLiteralExtractor(), cfg.LiteralWindow, cfg.Parallel)

	openJournal := domain.NopJournalOpener
	if cfg.Journal {
		openJournal = domain.BadgerJournalOpener
	}

	orchestrator := domain.NewOrchestrator(fs, store, adapter.NewLocalCheckoutProvider(), build, reconstructor, openJournal,
		domain.ValidationLimits{MaxCandidates: cfg.MaxCandidates, MaxDuration: cfg.MaxDuration})

	return domain.NewWorkflow(cfg, domain.Pipeline{
		FS:           fs,
		Store:        store,
		Build:        build,
		UI:           out,
		Batcher:      domain.NewBatcher(fs, tokenizer, cfg.Parallel),
		Generator:    domain.NewGenerator(fs, backends, m.Path(cfg.Vocabulary), cfg.Beam, cfg.Parallel),
		Merger:       domain.NewMerger(fs, cfg.MergePolicy),
		Reranker:     domain.NewRerankStage(fs, store, reranker),
		Orchestrator: orchestrator,
		Recoverer:    domain.NewRecoverer(fs, reconstructor),
		Auditor:      domain.NewAuditor(fs, store),
		ProjectLog:   projectLogFactory(verbose),
	})
}
