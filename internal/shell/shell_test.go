package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitScriptKnownShells(t *testing.T) {
	for _, name := range []string{"bash", "zsh", "fish", "powershell", "BASH"} {
		script, err := InitScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, script, "qs", name)
		assert.Contains(t, script, "qshs", name)
	}
}

func TestInitScriptUnknownShell(t *testing.T) {
	_, err := InitScript("tcsh")
	assert.Error(t, err)
}

func TestWriteSelection(t *testing.T) {
	out := filepath.Join(t.TempDir(), "selection")
	dir := t.TempDir()

	require.NoError(t, WriteSelection(out, dir))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(string(data)))
}

func TestWriteSelectionEnvFallback(t *testing.T) {
	out := filepath.Join(t.TempDir(), "selection")
	t.Setenv("QS_SELECT_PATH", out)
	dir := t.TempDir()

	require.NoError(t, WriteSelection("", dir))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(string(data)))
}
