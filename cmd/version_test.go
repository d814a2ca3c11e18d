package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	output, err := executeCmd(t, newVersionCmd())
	require.NoError(t, err)

	assert.Contains(t, output, "mutfix")
}

func TestInitCmd_WritesConfigOnce(t *testing.T) {
	t.Chdir(t.TempDir())

	output, err := executeCmd(t, newInitCmd())
	require.NoError(t, err)
	assert.Contains(t, output, configFileName)

	data, err := os.ReadFile(filepath.Join(".", configFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_candidates")
	assert.Contains(t, string(data), "compile_command")

	_, err = executeCmd(t, newInitCmd())
	assert.Error(t, err)
}
