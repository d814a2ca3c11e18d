package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"gooze.dev/pkg/mutfix/internal/adapter"
	"gooze.dev/pkg/mutfix/internal/domain"
	m "gooze.dev/pkg/mutfix/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "mutfix"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "MUTFIX"

	workspaceFlagName = "workspace"
	configFlagName    = "config"
	verboseFlagName   = "verbose"
	parallelFlagName  = "parallel"
	batchedFlagName   = "batched"
	stageFlagName     = "stage"

	workspaceKey           = "workspace"
	parallelKey            = "run.parallel"
	batchedKey             = "run.batched"
	mergePolicyKey         = "merge.policy"
	beamKey                = "generation.beam"
	generationTimeoutKey   = "generation.timeout"
	vocabularyKey          = "generation.vocabulary"
	backendsKey            = "generation.backends"
	tokenizerCommandKey    = "tokenizer.command"
	tokenizerTimeoutKey    = "tokenizer.timeout"
	rerankerCommandKey     = "reranker.command"
	rerankerTimeoutKey     = "reranker.timeout"
	compileCommandKey      = "build.compile_command"
	exportCommandKey       = "build.export_command"
	buildTimeoutKey        = "build.timeout"
	sourceRootKey          = "build.source_root"
	binRootKey             = "build.bin_root"
	literalWindowKey       = "reconstruct.literal_window"
	maxCandidatesKey       = "validate.max_candidates"
	maxDurationKey         = "validate.max_duration"
	journalKey             = "validate.journal"
	recoverCandidatesKey   = "recover.candidates"
	recoverEvenlyKey       = "recover.evenly"
	sourceExtKey           = "mutants.source_ext"
	sampleFileKey          = "mutants.sample_file"
	telemetryTraceFileKey  = "telemetry.trace_file"
	telemetryMetricsKey    = "telemetry.metrics_file"
	telemetryServiceKey    = "telemetry.service_name"
	defaultTelemetryName   = "mutfix"
	defaultTokenizerCmd    = "python3 tokenize_patch.py"
	defaultRerankerCmd     = "python3 rerank.py"
	defaultCompileCommand  = "defects4j compile"
	defaultExportCommand   = "defects4j export -p"
	defaultGenerationLimit = time.Hour
	defaultHelperTimeout   = 10 * time.Minute

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".mutfix.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults()

	// A missing config file leaves the defaults in place.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	defaults := domain.DefaultConfig()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(workspaceKey, defaults.Workspace)
	viper.SetDefault(parallelKey, defaults.Parallel)
	viper.SetDefault(batchedKey, false)
	viper.SetDefault(mergePolicyKey, string(defaults.MergePolicy))
	viper.SetDefault(beamKey, defaults.Beam)
	viper.SetDefault(generationTimeoutKey, defaultGenerationLimit)
	viper.SetDefault(vocabularyKey, "")
	viper.SetDefault(backendsKey, []map[string]string{})
	viper.SetDefault(tokenizerCommandKey, defaultTokenizerCmd)
	viper.SetDefault(tokenizerTimeoutKey, defaultHelperTimeout)
	viper.SetDefault(rerankerCommandKey, defaultRerankerCmd)
	viper.SetDefault(rerankerTimeoutKey, defaultHelperTimeout)
	viper.SetDefault(compileCommandKey, defaultCompileCommand)
	viper.SetDefault(exportCommandKey, defaultExportCommand)
	viper.SetDefault(buildTimeoutKey, adapter.DefaultBuildTimeout)
	viper.SetDefault(sourceRootKey, "")
	viper.SetDefault(binRootKey, "")
	viper.SetDefault(literalWindowKey, defaults.LiteralWindow)
	viper.SetDefault(maxCandidatesKey, defaults.MaxCandidates)
	viper.SetDefault(maxDurationKey, defaults.MaxDuration)
	viper.SetDefault(journalKey, defaults.Journal)
	viper.SetDefault(recoverCandidatesKey, defaults.Recover.Count)
	viper.SetDefault(recoverEvenlyKey, defaults.Recover.Evenly)
	viper.SetDefault(sourceExtKey, defaults.SourceExt)
	viper.SetDefault(sampleFileKey, defaults.SampleFile)

	viper.SetDefault(telemetryTraceFileKey, "")
	viper.SetDefault(telemetryMetricsKey, "")
	viper.SetDefault(telemetryServiceKey, defaultTelemetryName)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// readConfigFile switches viper to an explicit --config file.
func readConfigFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return nil
}

// loadConfig assembles the run configuration from viper and validates it.
func loadConfig() (domain.Config, error) {
	cfg := domain.Config{
		Workspace:     viper.GetString(workspaceKey),
		Parallel:      viper.GetInt(parallelKey),
		MergePolicy:   domain.MergePolicy(strings.ToLower(viper.GetString(mergePolicyKey))),
		Beam:          viper.GetInt(beamKey),
		Vocabulary:    viper.GetString(vocabularyKey),
		LiteralWindow: viper.GetInt(literalWindowKey),
		MaxCandidates: viper.GetInt(maxCandidatesKey),
		MaxDuration:   viper.GetDuration(maxDurationKey),
		Journal:       viper.GetBool(journalKey),
		SourceExt:     viper.GetString(sourceExtKey),
		SampleFile:    viper.GetString(sampleFileKey),
		SourceRoot:    viper.GetString(sourceRootKey),
		BinRoot:       viper.GetString(binRootKey),
		Recover: domain.Budget{
			Count:  viper.GetInt(recoverCandidatesKey),
			Evenly: viper.GetBool(recoverEvenlyKey),
		},
	}

	if err := viper.UnmarshalKey(backendsKey, &cfg.Backends); err != nil {
		return domain.Config{}, fmt.Errorf("failed to decode %s: %w", backendsKey, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

// errNoBackends is returned by generating stages without a configured backend.
var errNoBackends = errors.New("no generation backends configured (" + backendsKey + ")")

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	return parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
}

func rotatingWriter(filename string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(verbose bool) {
	logPath := strings.TrimSpace(viper.GetString(logFilenameKey))
	if logPath == "" {
		logPath = defaultLogFilename
	}

	handler := slog.NewTextHandler(rotatingWriter(logPath), &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel(verbose),
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// projectLogFactory opens the rotating log inside each project workspace.
func projectLogFactory(verbose bool) domain.ProjectLogFactory {
	return func(ws m.Workspace) (slog.Handler, io.Closer, error) {
		writer := rotatingWriter(ws.LogFile().String())

		handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel(verbose)})

		return handler, writer, nil
	}
}
