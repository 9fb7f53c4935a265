package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmdPrintsScript(t *testing.T) {
	cmd := NewInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"bash"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "qs()")
	assert.Contains(t, out.String(), "qshs()")
}

func TestInitCmdRejectsUnknownShell(t *testing.T) {
	cmd := NewInitCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"tcsh"})

	assert.Error(t, cmd.Execute())
}

func TestThemesCmdListsThemes(t *testing.T) {
	cmd := NewThemesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "default")
	assert.Contains(t, out.String(), "dark")
}

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "qs 1.2.3\n", out.String())
}
