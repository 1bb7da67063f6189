package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/internal/config"
)

func execute(t *testing.T, g *helpers.Globals, args ...string) (string, error) {
	t.Helper()
	cmd := NewConfigCmd(g)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd(&helpers.Globals{})

	assert.Equal(t, "config", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"view", "path", "init", "schema"}, names)
}

func TestInitThenView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowcut", "config.yaml")
	g := &helpers.Globals{ConfigPath: path}

	out, err := execute(t, g, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, g, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, g, "init", "--force")
	require.NoError(t, err)

	out, err = execute(t, g, "view")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Config file: "+path))

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, *config.Default(), got)
}

func TestView_EnvOverride(t *testing.T) {
	t.Setenv("ROWCUT_SAMPLE_SIZE", "42")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  preview_rows: 9\n"), 0600))

	out, err := execute(t, &helpers.Globals{ConfigPath: path}, "view", "-r", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sample_size": 42`)
	assert.Contains(t, out, `"preview_rows": 9`)
}

func TestView_RejectsTableFormat(t *testing.T) {
	_, err := execute(t, &helpers.Globals{}, "view", "-r", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestPath(t *testing.T) {
	out, err := execute(t, &helpers.Globals{ConfigPath: "/etc/rowcut.yaml"}, "path")
	require.NoError(t, err)
	assert.Equal(t, "/etc/rowcut.yaml\n", out)
}

func TestSchema(t *testing.T) {
	out, err := execute(t, &helpers.Globals{}, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"properties"`)
	assert.Contains(t, out, `"candidates"`)
}
