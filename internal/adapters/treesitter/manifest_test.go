package treesitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinManifest_Catalog(t *testing.T) {
	m := BuiltinManifest()

	py, ok := m.Grammars["python"]
	require.True(t, ok)
	assert.Equal(t, "P1", py.Priority)
	assert.Contains(t, py.Extensions, ".py")

	// Every entry is self-consistent and in a known tier.
	tiers := map[string]bool{"P1": true, "P2": true, "P3": true, "P4": true}
	for name, info := range m.Grammars {
		assert.Equal(t, name, info.Name)
		assert.True(t, tiers[info.Priority], "%s has tier %s", name, info.Priority)
		assert.NotEmpty(t, info.RepoURL, name)
	}
}

func TestManifest_PackGrammars(t *testing.T) {
	m := BuiltinManifest()

	core := m.PackGrammars("core")
	assert.Contains(t, core, "python")
	assert.Contains(t, core, "go")
	assert.IsIncreasing(t, core)

	all := m.PackGrammars("all")
	assert.Len(t, all, len(m.Grammars))
	assert.IsIncreasing(t, all)

	assert.Nil(t, m.PackGrammars("nonsense"))
}

func TestManifest_GrammarsByPriorityDeterministic(t *testing.T) {
	m := BuiltinManifest()
	first := m.GrammarsByPriority("P2")
	second := m.GrammarsByPriority("P2")
	assert.Equal(t, first, second)
	assert.IsIncreasing(t, first)
}

func TestLoadManifest_RoundTrip(t *testing.T) {
	m := BuiltinManifest()
	data, err := json.Marshal(m)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.Version, loaded.Version)
	assert.Equal(t, m.BaseURL, loaded.BaseURL)
	assert.Len(t, loaded.Grammars, len(m.Grammars))
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o644))
	_, err = LoadManifest(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestFetcher_AssetURL(t *testing.T) {
	f := NewFetcher(BuiltinManifest())
	url := f.assetURL("python", "linux-amd64")
	assert.True(t, strings.HasPrefix(url, "https://"))
	assert.Contains(t, url, "/grammars-v1/")
	assert.Contains(t, url, "python-linux-amd64")
}

func TestPlatformString(t *testing.T) {
	p := PlatformString()
	assert.Contains(t, p, "-")
}
