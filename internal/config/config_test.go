package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simgraph/internal/generator"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
format = "json"

[generator]
root_name = "Scene"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "Scene", cfg.Generator.RootName)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `format = "json"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, Default().LogLevel, cfg.LogLevel)
	assert.Equal(t, generator.DefaultRootName, cfg.Generator.RootName)
}

func TestDefault_RootNameMatchesGenerator(t *testing.T) {
	assert.Equal(t, generator.DefaultRootName, Default().Generator.RootName)
}

func TestLoad_NoDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "colour = \"red\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_InvalidValues(t *testing.T) {
	for _, content := range []string{
		`format = "xml"`,
		`log_level = "loud"`,
		`format = 3`,
	} {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, content)
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}
