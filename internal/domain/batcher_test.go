package domain

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutfix/internal/adapter"
	"gooze.dev/pkg/mutfix/internal/adapter/mocks"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// preparingTokenizer writes the three input files the way the tokenizer
// service does.
func preparingTokenizer(t *testing.T) *mocks.MockTokenizer {
	t.Helper()

	tokenizer := mocks.NewMockTokenizer(t)
	tokenizer.EXPECT().
		Prepare(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req adapter.PrepareRequest) error {
			if req.StartLine == 7 {
				return errors.New("tokenizer crashed")
			}

			files := map[string]string{
				"input.txt":         "tokens of " + req.SourceFile.String(),
				"identifier.txt":    "a b\n",
				"identifier.tokens": "a b\n",
			}

			for name, content := range files {
				if err := os.WriteFile(req.OutputDir.Join(name).String(), []byte(content), 0o600); err != nil {
					return err
				}
			}

			return nil
		}).
		Maybe()

	return tokenizer
}

func TestBatcher_PrepareInput(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()

	tokenizer := mocks.NewMockTokenizer(t)
	tokenizer.EXPECT().
		Prepare(mock.Anything, adapter.PrepareRequest{
			SourceFile: m.Path(f.path("mutants/1/" + calcRel)),
			StartLine:  4,
			EndLine:    5,
			OutputDir:  ws.MutantDir("1"),
		}).
		Return(nil).
		Once()

	artifact, err := NewBatcher(f.fs, tokenizer, 1).PrepareInput(context.Background(), f.registry(), ws, "1")
	require.NoError(t, err)

	assert.Equal(t, ws.Artifact("1"), artifact)
	assert.DirExists(t, ws.MutantDir("1").String())
}

func TestBatcher_PrepareInputReusesExisting(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()
	writeFile(t, ws.Artifact("1").Input, "prepared\n")

	artifact, err := NewBatcher(f.fs, mocks.NewMockTokenizer(t), 1).PrepareInput(context.Background(), f.registry(), ws, "1")
	require.NoError(t, err)
	assert.Equal(t, ws.Artifact("1").Input, artifact.Input)
}

func TestBatcher_PrepareAll(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()

	artifacts, err := NewBatcher(f.fs, preparingTokenizer(t), 4).PrepareAll(context.Background(), f.registry(), ws, []m.MutantID{"1", "3", "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokenizer crashed")

	require.Len(t, artifacts, 2)
	assert.Equal(t, m.MutantID("1"), artifacts[0].MutantID)
	assert.Equal(t, m.MutantID("2"), artifacts[1].MutantID)
}

func TestBatcher_PrepareBatched(t *testing.T) {
	f := newProjectFixture(t)
	ws := f.ws()

	for id, input := range map[m.MutantID]string{"1": "one", "2": "two\n"} {
		artifact := ws.Artifact(id)
		writeFile(t, artifact.Input, input)
		writeFile(t, artifact.IdentifierText, "text "+string(id))
		writeFile(t, artifact.IdentifierTokens, "")
	}

	allIn, err := NewBatcher(f.fs, mocks.NewMockTokenizer(t), 1).PrepareBatched(context.Background(), ws, []m.InputArtifact{ws.Artifact("1"), ws.Artifact("2")})
	require.NoError(t, err)

	assert.Equal(t, ws.AllIn(), allIn)
	assert.Equal(t, "one\ntwo\n", readFile(t, allIn.Input))
	assert.Equal(t, "text 1\ntext 2\n", readFile(t, allIn.IdentifierText))
	assert.Empty(t, readFile(t, allIn.IdentifierTokens))
	assert.Equal(t, "1\n2\n", readFile(t, ws.AllInManifest()))
}
