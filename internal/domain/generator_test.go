package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutfix/internal/adapter"
	"gooze.dev/pkg/mutfix/internal/adapter/mocks"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// writingBackend writes one hypothesis line per request unless the input
// dir belongs to a mutant in failFor.
func writingBackend(t *testing.T, name m.Backend, failFor ...m.MutantID) *mocks.MockGenerationBackend {
	t.Helper()

	backend := mocks.NewMockGenerationBackend(t)
	backend.EXPECT().Name().Return(name).Maybe()
	backend.EXPECT().
		Generate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req adapter.GenerationRequest) error {
			for _, id := range failFor {
				if filepath.Base(filepath.Dir(req.Input.String())) == string(id) {
					return errors.New("cuda out of memory")
				}
			}

			return os.WriteFile(req.Output.String(), []byte("H-0\t-0.1\t"+string(name)+"\n"), 0o600)
		}).
		Maybe()

	return backend
}

func prepared(t *testing.T, ws m.Workspace, ids ...m.MutantID) []m.InputArtifact {
	t.Helper()

	artifacts := make([]m.InputArtifact, 0, len(ids))

	for _, id := range ids {
		artifact := ws.Artifact(id)
		writeFile(t, artifact.Input, "tokens\n")
		writeFile(t, artifact.IdentifierText, "a\n")
		writeFile(t, artifact.IdentifierTokens, "a\n")
		artifacts = append(artifacts, artifact)
	}

	return artifacts
}

func TestGenerator_Generate(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()
	artifact := prepared(t, ws, "1")[0]

	backend := mocks.NewMockGenerationBackend(t)
	backend.EXPECT().Name().Return("fconv")
	backend.EXPECT().
		Generate(mock.Anything, adapter.GenerationRequest{
			Vocabulary:       "vocab",
			Input:            artifact.Input,
			IdentifierText:   artifact.IdentifierText,
			IdentifierTokens: artifact.IdentifierTokens,
			Output:           m.Hypotheses(artifact.Dir, "fconv"),
			Beam:             50,
		}).
		RunAndReturn(func(_ context.Context, req adapter.GenerationRequest) error {
			return os.WriteFile(req.Output.String(), []byte("H-0\tx\n"), 0o600)
		}).
		Once()

	generator := NewGenerator(f.fs, []adapter.GenerationBackend{backend}, "vocab", 1000, 1)

	hypotheses, err := generator.Generate(context.Background(), artifact, backend, 50)
	require.NoError(t, err)
	assert.Equal(t, m.HypothesisFile{MutantID: "1", Backend: "fconv", Path: m.Hypotheses(artifact.Dir, "fconv")}, hypotheses)

	again, err := generator.Generate(context.Background(), artifact, backend, 50)
	require.NoError(t, err)
	assert.Equal(t, hypotheses, again)
}

func TestGenerator_GenerateEmptyOutput(t *testing.T) {
	f := newProjectFixture(t)
	artifact := prepared(t, f.ws(), "1")[0]

	backend := mocks.NewMockGenerationBackend(t)
	backend.EXPECT().Name().Return("lstm")
	backend.EXPECT().Generate(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := NewGenerator(f.fs, nil, "", 10, 1).Generate(context.Background(), artifact, backend, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)

	var generationErr *GenerationError
	require.ErrorAs(t, err, &generationErr)
	assert.Equal(t, m.MutantID("1"), generationErr.MutantID)
	assert.Equal(t, m.Backend("lstm"), generationErr.Backend)
}

func TestGenerator_GenerateMissingInput(t *testing.T) {
	f := newProjectFixture(t)

	backend := mocks.NewMockGenerationBackend(t)
	backend.EXPECT().Name().Return("lstm")

	_, err := NewGenerator(f.fs, nil, "", 10, 1).Generate(context.Background(), f.ws().Artifact("1"), backend, 10)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerator_GenerateAll(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()
	artifacts := prepared(t, ws, "1", "2", "3")

	backends := []adapter.GenerationBackend{writingBackend(t, "fconv"), writingBackend(t, "lstm", "2")}
	generator := NewGenerator(f.fs, backends, "", 10, 3)

	assert.Equal(t, []m.Backend{"fconv", "lstm"}, generator.Backends())

	files, err := generator.GenerateAll(context.Background(), artifacts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)

	require.Len(t, files, 5)
	assert.Equal(t, m.MutantID("1"), files[0].MutantID)
	assert.Equal(t, m.Backend("fconv"), files[2].Backend)
	assert.Equal(t, m.MutantID("2"), files[2].MutantID)
	assert.Equal(t, m.MutantID("3"), files[3].MutantID)

	assert.FileExists(t, m.Hypotheses(ws.MutantDir("2"), "fconv").String())
	assert.NoFileExists(t, m.Hypotheses(ws.MutantDir("2"), "lstm").String())
}

func TestGenerator_GenerateAllBatched(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()

	allIn := ws.AllIn()
	writeFile(t, allIn.Input, "a\nb\n")
	writeFile(t, allIn.IdentifierText, "a\nb\n")
	writeFile(t, allIn.IdentifierTokens, "a\nb\n")

	failing := mocks.NewMockGenerationBackend(t)
	failing.EXPECT().Name().Return("lstm")
	failing.EXPECT().Generate(mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	generator := NewGenerator(f.fs, []adapter.GenerationBackend{failing, writingBackend(t, "fconv")}, "", 10, 1)

	files, err := generator.GenerateAllBatched(context.Background(), allIn)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)

	require.Len(t, files, 1)
	assert.Equal(t, m.Backend("fconv"), files[0].Backend)
	assert.Equal(t, m.Hypotheses(allIn.Dir, "fconv"), files[0].Path)
}
