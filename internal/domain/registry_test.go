package domain

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/mutfix/internal/model"
)

func TestLoadRegistry_Targets(t *testing.T) {
	f := newProjectFixture(t)

	registry := f.registry()

	assert.Equal(t, []m.MutantID{"1", "3"}, registry.Targets())
	assert.Equal(t, f.project, registry.Project())
}

func TestLoadRegistry_FirstRowWins(t *testing.T) {
	f := newProjectFixture(t)

	line, err := f.registry().Line("3")
	require.NoError(t, err)
	assert.Equal(t, 7, line)
}

func TestLoadRegistry_LineFallback(t *testing.T) {
	f := newProjectFixture(t)
	f.write(MutantsLogName, "5:ROR:<:<=:org.x.Calc@add:12:a < b ? x : y\n6:COR:a:b\n")
	f.write(KillLogName, "5,FAIL\n6,FAIL\n")

	registry := f.registry()

	line, err := registry.Line("5")
	require.NoError(t, err)
	assert.Equal(t, 12, line)

	kind, err := registry.MutatorKind("5")
	require.NoError(t, err)
	assert.Equal(t, "ROR", kind)

	_, err = registry.Line("6")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRegistry_MissingLogs(t *testing.T) {
	for _, name := range []string{KillLogName, MutantsLogName} {
		t.Run(name, func(t *testing.T) {
			f := newProjectFixture(t)
			require.NoError(t, os.Remove(f.path(name)))

			_, err := LoadRegistry(context.Background(), f.fs, f.project, RegistryOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSetup)

			var setupErr *SetupError
			require.ErrorAs(t, err, &setupErr)
			assert.Equal(t, "Calc", setupErr.Project)
		})
	}
}

func TestLoadRegistry_Sample(t *testing.T) {
	f := newProjectFixture(t)
	f.write("sample.txt", "3\n2\n3\n\n")

	registry, err := LoadRegistry(context.Background(), f.fs, f.project, RegistryOptions{SampleFile: "sample.txt"})
	require.NoError(t, err)

	assert.Equal(t, []m.MutantID{"3"}, registry.Targets())
}

func TestLoadRegistry_MissingSampleKeepsTargets(t *testing.T) {
	f := newProjectFixture(t)

	registry, err := LoadRegistry(context.Background(), f.fs, f.project, RegistryOptions{SampleFile: "sample.txt"})
	require.NoError(t, err)

	assert.Equal(t, []m.MutantID{"1", "3"}, registry.Targets())
}

func TestRegistry_Record(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	registry := f.registry()

	record, err := registry.Record(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, m.MutantRecord{
		ID:                 "1",
		SourceLine:         4,
		MutatorKind:        "AOR",
		SourcePathAbsolute: m.Path(f.path("mutants/1/" + calcRel)),
		SourcePathRelative: calcRel,
	}, record)

	rel, err := registry.RelativeSourcePath(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, calcRel, rel)
}

func TestRegistry_RecordMissingMutantDir(t *testing.T) {
	f := newProjectFixture(t)
	require.NoError(t, os.RemoveAll(f.path("mutants/1")))

	_, err := f.registry().Record(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.registry().Record(context.Background(), "42")
	assert.ErrorIs(t, err, ErrNotFound)
}
