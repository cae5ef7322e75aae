package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "v1", c.Version)
	assert.Equal(t, "en-US", c.Baseline)
	assert.Equal(t, FormatText, c.Output.Format)
	assert.False(t, c.Output.GroupByLanguage)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".locheck.yaml", `
version: v1
baseline: de
output:
    format: json
    group_by_language: true
`)

	c, err := LoadConfig(filepath.Join(dir, ".locheck.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "de", c.Baseline)
	assert.Equal(t, FormatJSON, c.Output.Format)
	assert.True(t, c.Output.GroupByLanguage)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "locheck.yml", "baseline: fr\n")

	c, err := LoadConfig(filepath.Join(dir, "locheck.yml"))
	require.NoError(t, err)
	assert.Equal(t, "fr", c.Baseline)
	assert.Equal(t, "v1", c.Version)
	assert.Equal(t, FormatText, c.Output.Format)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "locheck.yaml", "output:\n    format: xml\n")

	_, err := LoadConfig(filepath.Join(dir, "locheck.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "locheck.yaml", "baseline: [unterminated\n")

	_, err := LoadConfig(filepath.Join(dir, "locheck.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".locheck.yml", "baseline: pl\n")

	c, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "pl", c.Baseline)
}

func TestLoadConfigFromDir_NoFileUsesDefaults(t *testing.T) {
	c, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestValidate_EmptyBaseline(t *testing.T) {
	c := DefaultConfig()
	c.Baseline = ""
	assert.Error(t, c.Validate())
}
