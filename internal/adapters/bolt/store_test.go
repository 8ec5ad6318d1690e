package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marek/symq/internal/ports"
)

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symq.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func makeRecord(name string) *ports.FileRecord {
	return &ports.FileRecord{
		Size:     120,
		MTimeNS:  1724400000000000000,
		Language: "python",
		Symbols: []ports.Symbol{
			{Name: name, Kind: ports.KindFunction, StartLine: 1, EndLine: 4, Signature: "def " + name + "():", Docstring: "does things"},
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	rec := makeRecord("handler")
	require.NoError(t, store.SaveFile("/proj", "src/app.py", rec))

	got, err := store.LoadFile("/proj", "src/app.py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Size, got.Size)
	assert.Equal(t, rec.MTimeNS, got.MTimeNS)
	assert.Equal(t, "python", got.Language)
	require.Len(t, got.Symbols, 1)
	assert.Equal(t, "handler", got.Symbols[0].Name)
	assert.Equal(t, "does things", got.Symbols[0].Docstring)
}

func TestStore_LoadMissingReturnsNilNil(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.LoadFile("/proj", "nope.py")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SaveFile("/proj", "a.py", makeRecord("old")))
	require.NoError(t, store.SaveFile("/proj", "a.py", makeRecord("new")))

	got, err := store.LoadFile("/proj", "a.py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Symbols[0].Name)
}

func TestStore_SaveNilRecordRejected(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.SaveFile("/proj", "a.py", nil))
}

func TestStore_DeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SaveFile("/proj", "a.py", makeRecord("f")))
	require.NoError(t, store.DeleteFile("/proj", "a.py"))

	got, err := store.LoadFile("/proj", "a.py")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again, and deleting under an unknown root, are both no-ops.
	require.NoError(t, store.DeleteFile("/proj", "a.py"))
	require.NoError(t, store.DeleteFile("/other", "a.py"))
}

func TestStore_FilesSorted(t *testing.T) {
	store, _ := newTestStore(t)

	for _, rel := range []string{"src/z.py", "a.py", "src/b.py"} {
		require.NoError(t, store.SaveFile("/proj", rel, makeRecord("f")))
	}

	files, err := store.Files("/proj")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "src/b.py", "src/z.py"}, files)
}

func TestStore_FilesEmptyRoot(t *testing.T) {
	store, _ := newTestStore(t)
	files, err := store.Files("/proj")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStore_AllRecords(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SaveFile("/proj", "a.py", makeRecord("fa")))
	require.NoError(t, store.SaveFile("/proj", "b.py", makeRecord("fb")))

	recs, err := store.AllRecords("/proj")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "fa", recs["a.py"].Symbols[0].Name)
	assert.Equal(t, "fb", recs["b.py"].Symbols[0].Name)
}

func TestStore_RootsIsolated(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SaveFile("/proj1", "a.py", makeRecord("one")))
	require.NoError(t, store.SaveFile("/proj2", "a.py", makeRecord("two")))

	got1, err := store.LoadFile("/proj1", "a.py")
	require.NoError(t, err)
	got2, err := store.LoadFile("/proj2", "a.py")
	require.NoError(t, err)
	assert.Equal(t, "one", got1.Symbols[0].Name)
	assert.Equal(t, "two", got2.Symbols[0].Name)

	files1, err := store.Files("/proj1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, files1)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symq.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveFile("/proj", "a.py", makeRecord("kept")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadFile("/proj", "a.py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "kept", got.Symbols[0].Name)
}
