package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tessera version "))
}

func TestGraphCommand(t *testing.T) {
	script := filepath.Join(t.TempDir(), "cross.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - engage: {x: 0, y: 0, shape: box}\n"), 0644))

	out, err := run(t, "graph", script, "--highlight")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "class n_0_0 changed;")
	assert.Contains(t, out, "class n_0_1 changed;")
}

func TestSetupRejectsBadOverride(t *testing.T) {
	script := filepath.Join(t.TempDir(), "cross.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps: []\n"), 0644))

	_, err := run(t, "graph", script, "--set", "policy=sideways")
	assert.Error(t, err)

	_, err = run(t, "graph", script, "--set", "policy=direct", "--log-format", "xml")
	assert.Error(t, err)
}

func TestServeHelpDescribesLockScope(t *testing.T) {
	out, err := run(t, "serve", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "mutual exclusion per key")
	assert.NotContains(t, out, "across replicas")
}
