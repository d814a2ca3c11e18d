package domain

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutfix/internal/adapter"
	m "gooze.dev/pkg/mutfix/internal/model"
)

// poolCandidate adds text as a compiled candidate of mutant id at line.
func poolCandidate(t *testing.T, f *projectFixture, pool *Pool, id m.MutantID, line int, text string) int {
	t.Helper()

	ctx := context.Background()

	original, err := os.ReadFile(f.path("mutants/" + string(id) + "/" + calcRel))
	require.NoError(t, err)

	patched, err := ReplaceLine(original, line, text)
	require.NoError(t, err)

	poolID, err := pool.Add(ctx, m.PoolEntry{MutantID: id, Line: line, Candidate: text}, calcRel, PoolArtifacts{
		Source:   m.Path(f.path("src/" + calcRel)),
		Class:    m.Path(f.path("build/org/x/Calc.class")),
		Original: original,
		Patched:  patched,
	})
	require.NoError(t, err)

	return poolID
}

func TestPool_AddAndRead(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	store := adapter.NewReportStore()

	pool, err := OpenPool(ctx, f.fs, store, "Calc", f.ws())
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Next())

	assert.Equal(t, 0, poolCandidate(t, f, pool, "1", 4, "return a + b;"))
	assert.Equal(t, 1, poolCandidate(t, f, pool, "3", 7, "return a < b;"))
	assert.Equal(t, 2, pool.Next())

	pooled, err := ReadPool(ctx, f.fs, store, f.ws())
	require.NoError(t, err)
	require.Len(t, pooled, 2)

	assert.Equal(t, f.ws().PoolEntryDir(1), pooled[1].Dir)
	assert.Equal(t, m.MutantID("3"), pooled[1].Entry.MutantID)
	assert.Equal(t, 1, pooled[1].Entry.ID)
	assert.Equal(t, calcRel, pooled[1].Entry.SourceFile)
	assert.Equal(t, "org/x/Calc.class", pooled[1].Entry.ClassFile)

	reopened, err := OpenPool(ctx, f.fs, store, "Calc", f.ws())
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Next())
}

func TestPool_AddFailureKeepsID(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	pool, err := OpenPool(ctx, f.fs, adapter.NewReportStore(), "Calc", f.ws())
	require.NoError(t, err)

	_, err = pool.Add(ctx, m.PoolEntry{MutantID: "1"}, calcRel, PoolArtifacts{
		Source: m.Path(f.path("src/" + calcRel)),
		Class:  m.Path(f.path("build/org/x/Missing.class")),
	})
	require.Error(t, err)

	assert.Equal(t, 0, pool.Next())
	assert.NoDirExists(t, f.ws().PoolEntryDir(0).String())
}

func TestReadPool_SkipsForeignDirectories(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	ws := f.ws()

	require.NoError(t, os.MkdirAll(ws.PoolDir().Join("notes").String(), 0o755))
	require.NoError(t, os.MkdirAll(ws.PoolEntryDir(3).String(), 0o755))

	pooled, err := ReadPool(ctx, f.fs, adapter.NewReportStore(), ws)
	require.NoError(t, err)
	assert.Empty(t, pooled)

	pool, err := OpenPool(ctx, f.fs, adapter.NewReportStore(), "Calc", ws)
	require.NoError(t, err)
	assert.Equal(t, 4, pool.Next())
}

func TestPatchDiff(t *testing.T) {
	diff, err := PatchDiff(calcRel, []byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	require.NoError(t, err)

	assert.Contains(t, diff, "--- a/"+calcRel)
	assert.Contains(t, diff, "+++ b/"+calcRel)
	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+x\n")

	added, err := AddedLines([]byte(diff))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, added)
}
