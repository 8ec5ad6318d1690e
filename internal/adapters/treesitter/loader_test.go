package treesitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicLoader_Locate(t *testing.T) {
	dir := t.TempDir()
	loader := NewDynamicLoader(dir)

	assert.False(t, loader.Installed("cobol"))

	lib := filepath.Join(dir, "cobol"+grammarLibExt())
	require.NoError(t, os.WriteFile(lib, []byte("not a real library"), 0o644))

	assert.True(t, loader.Installed("cobol"))
	assert.Equal(t, []string{"cobol"}, loader.InstalledLanguages())
}

func TestDynamicLoader_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	loader := NewDynamicLoader(first)
	loader.AddPath(second)

	require.NoError(t, os.WriteFile(filepath.Join(second, "ada"+grammarLibExt()), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(second, "elm"+grammarLibExt()), []byte("x"), 0o644))

	assert.Equal(t, []string{"ada", "elm"}, loader.InstalledLanguages())
	assert.Equal(t, []string{first, second}, loader.SearchPaths())
}

func TestDynamicLoader_LoadMissing(t *testing.T) {
	loader := NewDynamicLoader(t.TempDir())
	_, err := loader.Load("fortran")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no grammar library")
}

func TestDynamicLoader_LoadInvalidLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fake"+grammarLibExt()), []byte("garbage"), 0o644))

	loader := NewDynamicLoader(dir)
	_, err := loader.Load("fake")
	require.Error(t, err, "dlopen of a non-library must fail cleanly")
}

func TestDynamicLoader_IgnoresDirectoriesAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"+grammarLibExt()), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	loader := NewDynamicLoader(dir)
	assert.Empty(t, loader.InstalledLanguages())
}
