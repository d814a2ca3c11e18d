package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutfix/internal/adapter"
	"gooze.dev/pkg/mutfix/internal/adapter/mocks"
	m "gooze.dev/pkg/mutfix/internal/model"
)

const (
	calcRel    = "org/x/Calc.java"
	calcSource = `package org.x;
public class Calc {
    int add(int a, int b) {
        return a + b;
    }
    boolean less(int a, int b) {
        return a < b;
    }
}
`
	killLog = `1,FAIL
2,PASS
3,EXC
1,FAIL
`
	mutantsLog = `1:AOR:+:-:org.x.Calc@add:4:a + b |==> a - b
2:AOR:+:*:org.x.Calc@add:4:a + b |==> a * b
3:ROR:<:<=:org.x.Calc@less:7:a < b |==> a <= b
3:ROR:<:>:org.x.Calc@less:9:a < b |==> a > b
`
)

// projectFixture is a project checkout with a kill log, a mutants log and
// one isolated source copy per mutant.
type projectFixture struct {
	t         *testing.T
	fs        *adapter.LocalSourceFSAdapter
	project   m.ProjectContext
	workspace m.Path
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "Calc")

	f := &projectFixture{
		t:  t,
		fs: adapter.NewLocalSourceFSAdapter(),
		project: m.ProjectContext{
			Root:            m.Path(root),
			Name:            "Calc",
			SourceClassRoot: "src",
			BinClassRoot:    "build",
		},
		workspace: m.Path(filepath.Join(base, "work")),
	}

	f.write("src/"+calcRel, calcSource)
	f.write("build/org/x/Calc.class", "\xca\xfe\xba\xbe")
	f.write(KillLogName, killLog)
	f.write(MutantsLogName, mutantsLog)
	f.mutant("1", 4, "        return a - b;")
	f.mutant("2", 4, "        return a * b;")
	f.mutant("3", 7, "        return a <= b;")

	return f
}

func (f *projectFixture) path(rel string) string {
	return filepath.Join(f.project.Root.String(), rel)
}

func (f *projectFixture) write(rel, content string) {
	f.t.Helper()

	path := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *projectFixture) read(rel string) string {
	f.t.Helper()

	data, err := os.ReadFile(f.path(rel))
	require.NoError(f.t, err)

	return string(data)
}

// mutant writes the source copy of id with line replaced.
func (f *projectFixture) mutant(id string, line int, text string) {
	f.t.Helper()

	lines := strings.Split(calcSource, "\n")
	lines[line-1] = text

	f.write(filepath.Join(MutantsDirName, id, calcRel), strings.Join(lines, "\n"))
}

func (f *projectFixture) registry() *Registry {
	f.t.Helper()

	registry, err := LoadRegistry(context.Background(), f.fs, f.project, RegistryOptions{})
	require.NoError(f.t, err)

	return registry
}

func (f *projectFixture) ws() m.Workspace {
	return m.NewWorkspace(f.workspace, f.project.Name)
}

func writeFile(t *testing.T, path m.Path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path.String()), 0o755))
	require.NoError(t, os.WriteFile(path.String(), []byte(content), 0o644))
}

func readFile(t *testing.T, path m.Path) string {
	t.Helper()

	data, err := os.ReadFile(path.String())
	require.NoError(t, err)

	return string(data)
}

func calcKey(id m.MutantID, line int) m.RerankKey {
	return m.RerankKey{Project: metaLabel, BugID: id, Path: "src/" + calcRel, Start: line, End: line}
}

// detokenizer answers Detokenize from a table keyed by the tokenized patch.
// Unknown patches fail.
func detokenizer(t *testing.T, table map[string][]string) *mocks.MockTokenizer {
	t.Helper()

	tokenizer := mocks.NewMockTokenizer(t)
	tokenizer.EXPECT().
		Detokenize(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, tokens, _, _ []string) ([]string, error) {
			statements, ok := table[strings.Join(tokens, " ")]
			if !ok {
				return nil, errors.New("unknown patch")
			}

			return statements, nil
		}).
		Maybe()

	return tokenizer
}

func fixedLiterals(t *testing.T, pool adapter.LiteralPool) *mocks.MockLiteralExtractor {
	t.Helper()

	literals := mocks.NewMockLiteralExtractor(t)
	literals.EXPECT().
		Extract(mock.Anything, mock.Anything, mock.Anything, mock.Anything, adapter.DefaultLiteralLimit).
		Return(pool, nil).
		Maybe()

	return literals
}
