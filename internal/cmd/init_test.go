package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juhahinkula/classroom-fix/pkg/config"
)

func newInitTestCommand(input string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(input))
	return cmd, &out
}

func TestRunInitCreatesDefaultConfig(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "nested", "config.yaml")

	cmd, out := newInitTestCommand("")
	require.NoError(t, runInit(cmd, nil))

	assert.Contains(t, out.String(), "Configuration file created at: "+configPath)

	loaded, err := config.LoadConfigFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRunInitKeepsExistingConfig(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("selector: fzf\n"), 0600))

	cmd, out := newInitTestCommand("n\n")
	require.NoError(t, runInit(cmd, nil))

	assert.Contains(t, out.String(), "Configuration file already exists")
	assert.Contains(t, out.String(), "Configuration initialization cancelled.")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "selector: fzf\n", string(data))
}

func TestRunInitOverwritesWhenConfirmed(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("selector: fzf\n"), 0600))

	cmd, _ := newInitTestCommand("y\n")
	require.NoError(t, runInit(cmd, nil))

	loaded, err := config.LoadConfigFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.SelectorNumbered, loaded.Selector)
}
