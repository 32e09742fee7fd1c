package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvDir(t *testing.T, cueSrc string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "functions.cue"), []byte(cueSrc), 0644))
	return dir
}

func TestValidateCommand_Text(t *testing.T) {
	envDir := writeEnvDir(t, `package env

function: hist: {
	outputs: [{name: "hist", extents: [64]}]
}
function: sum: {}
`)

	out, err := runLoomc(t, "validate", "--env", envDir)
	require.NoError(t, err)
	assert.Contains(t, out, "hist: [hist[64]]")
	assert.Contains(t, out, "sum: no outputs")
}

func TestValidateCommand_JSON(t *testing.T) {
	envDir := writeEnvDir(t, `package env

function: f: {
	outputs: [
		{name: "out0", extents: [16, 8]},
		{name: "out1", extents: [16, "n"]},
	]
}
`)

	out, err := runLoomc(t, "--format", "json", "validate", "--env", envDir)
	require.NoError(t, err)

	var funcs []ValidatedFunc
	require.NoError(t, json.Unmarshal([]byte(out), &funcs))
	require.Len(t, funcs, 1)
	assert.Equal(t, "f", funcs[0].Name)
	assert.Equal(t, []string{"out0[16][8]", "out1[16][n]"}, funcs[0].Outputs)
}

func TestValidateCommand_SortedOutput(t *testing.T) {
	envDir := writeEnvDir(t, `package env

function: zeta: {}
function: alpha: {}
`)

	out, err := runLoomc(t, "--format", "json", "validate", "--env", envDir)
	require.NoError(t, err)

	var funcs []ValidatedFunc
	require.NoError(t, json.Unmarshal([]byte(out), &funcs))
	require.Len(t, funcs, 2)
	assert.Equal(t, "alpha", funcs[0].Name)
	assert.Equal(t, "zeta", funcs[1].Name)
}

func TestValidateCommand_NonExistentDirectory(t *testing.T) {
	_, err := runLoomc(t, "validate", "--env", "/nonexistent/directory/path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateCommand_EmptyDirectory(t *testing.T) {
	_, err := runLoomc(t, "validate", "--env", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no CUE files found")
}

func TestValidateCommand_NoFunctionDeclarations(t *testing.T) {
	envDir := writeEnvDir(t, "package env\n\nother: 1\n")

	_, err := runLoomc(t, "validate", "--env", envDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no function declarations found")
}
