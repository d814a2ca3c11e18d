package domain

import (
	"errors"
	"fmt"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// Error taxonomy of the pipeline. Only ErrSetup aborts a project; the others
// are recovered where they happen.
var (
	ErrSetup      = errors.New("setup error")
	ErrGeneration = errors.New("generation failed")
	ErrCompile    = errors.New("compile failed")
	ErrMergeSkip  = errors.New("mutant skipped by merge")
	ErrNotFound   = errors.New("not found")
)

// SetupError reports a broken external environment for a project, such as a
// missing kill log.
type SetupError struct {
	Project string
	Err     error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup error in project %s: %v", e.Project, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Is matches ErrSetup.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetup
}

// GenerationError reports a backend that failed or produced no output for a
// mutant.
type GenerationError struct {
	MutantID m.MutantID
	Backend  m.Backend
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("backend %s failed for mutant %s: %v", e.Backend, e.MutantID, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches ErrGeneration.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

func setupError(project string, format string, args ...any) error {
	return &SetupError{Project: project, Err: fmt.Errorf(format, args...)}
}
