//go:build !lean

package treesitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marek/symq/internal/ports"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestQuery_FunctionNames(t *testing.T) {
	path := writeTempFile(t, "sample.go", `package p

func Alpha() {}

func Beta() {}
`)
	ex := newTestExtractor(t)
	caps, err := ex.Query(path, `(function_declaration name: (identifier) @fn)`, "")
	require.NoError(t, err)
	require.Len(t, caps, 2)

	assert.Equal(t, "fn", caps[0].CaptureName)
	assert.Equal(t, "identifier", caps[0].NodeKind)
	assert.Equal(t, "Alpha", caps[0].Text)
	assert.Equal(t, 3, caps[0].StartLine)
	assert.Equal(t, "Beta", caps[1].Text)
}

func TestQuery_MalformedPatternFailsFast(t *testing.T) {
	// The pattern is rejected before the file is ever opened, so even a
	// nonexistent path surfaces the pattern error.
	ex := newTestExtractor(t)
	_, err := ex.Query(filepath.Join(t.TempDir(), "missing.go"), `(function_declaration`, "")
	var qErr *ports.QueryError
	require.ErrorAs(t, err, &qErr)
}

func TestQuery_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.py", "")
	ex := newTestExtractor(t)
	caps, err := ex.Query(path, `(function_definition) @def`, "")
	require.NoError(t, err)
	assert.Empty(t, caps)
	assert.NotNil(t, caps, "empty capture set, not an error")
}

func TestQuery_MultipleCapturesPerMatch(t *testing.T) {
	path := writeTempFile(t, "pairs.py", `def one():
    pass

def two():
    pass
`)
	ex := newTestExtractor(t)
	caps, err := ex.Query(path, `(function_definition name: (identifier) @name body: (block) @body)`, "")
	require.NoError(t, err)
	require.Len(t, caps, 4)

	// Captures keep pattern order within each match.
	assert.Equal(t, "name", caps[0].CaptureName)
	assert.Equal(t, "body", caps[1].CaptureName)
	assert.Equal(t, "one", caps[0].Text)
	assert.Equal(t, "name", caps[2].CaptureName)
	assert.Equal(t, "two", caps[2].Text)
}

func TestQuery_BinaryFileRejected(t *testing.T) {
	path := writeTempFile(t, "junk.go", "package p\x00")
	ex := newTestExtractor(t)
	_, err := ex.Query(path, `(function_declaration) @f`, "")
	var binErr *ports.BinaryFileError
	require.ErrorAs(t, err, &binErr)
}

func TestQuery_UnknownExtension(t *testing.T) {
	path := writeTempFile(t, "data.qqq", "data")
	ex := newTestExtractor(t)
	_, err := ex.Query(path, `(function_declaration) @f`, "")
	var detErr *ports.DetectionError
	require.ErrorAs(t, err, &detErr)
}
