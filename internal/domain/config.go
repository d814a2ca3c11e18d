package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"gooze.dev/pkg/mutfix/internal/adapter"
)

// Defaults shared by the CLI and the workflow.
const (
	DefaultBeam          = 1000
	DefaultLiteralWindow = 25
	DefaultMaxCandidates = 5000
	DefaultMaxDuration   = 5 * time.Hour
	DefaultSourceExt     = ".java"
	DefaultSampleFile    = "sampledMutIds.txt"
)

// Config holds the settings of one pipeline run, decoded from viper.
type Config struct {
	Workspace     string                  `mapstructure:"workspace" validate:"required"`
	Parallel      int                     `mapstructure:"parallel" validate:"gte=1"`
	MergePolicy   MergePolicy             `mapstructure:"merge_policy" validate:"oneof=all any"`
	Beam          int                     `mapstructure:"beam" validate:"gte=1"`
	Vocabulary    string                  `mapstructure:"vocabulary"`
	Backends      []adapter.BackendConfig `mapstructure:"backends" validate:"dive"`
	LiteralWindow int                     `mapstructure:"literal_window" validate:"gte=0"`
	MaxCandidates int                     `mapstructure:"max_candidates" validate:"gt=0"`
	MaxDuration   time.Duration           `mapstructure:"max_duration" validate:"gt=0"`
	Journal       bool                    `mapstructure:"journal"`
	SourceExt     string                  `mapstructure:"source_ext" validate:"required,startswith=."`
	SampleFile    string                  `mapstructure:"sample_file"`
	SourceRoot    string                  `mapstructure:"source_root"`
	BinRoot       string                  `mapstructure:"bin_root"`
	Recover       Budget                  `mapstructure:"recover"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Workspace:     ".",
		Parallel:      1,
		MergePolicy:   MergeAll,
		Beam:          DefaultBeam,
		LiteralWindow: DefaultLiteralWindow,
		MaxCandidates: DefaultMaxCandidates,
		MaxDuration:   DefaultMaxDuration,
		Journal:       true,
		SourceExt:     DefaultSourceExt,
		SampleFile:    DefaultSampleFile,
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration before a run starts.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
