package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Exclude)
	assert.Empty(t, cfg.GrammarPaths)
	assert.Zero(t, cfg.Jobs)
	assert.Zero(t, cfg.ChunkSize)
}

func TestLoadConfig_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Zero(t, cfg.Jobs)
}

func TestLoadConfig_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `exclude:
  - "**/*_test.py"
  - "**/generated/**"
grammar_paths:
  - /opt/grammars
jobs: 4
chunk_size: 2048
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*_test.py", "**/generated/**"}, cfg.Exclude)
	assert.Equal(t, []string{"/opt/grammars"}, cfg.GrammarPaths)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, 2048, cfg.ChunkSize)
}

func TestLoadConfig_MalformedIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: [not a number\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".symq", "config.yaml"), DefaultConfigPath())
}
