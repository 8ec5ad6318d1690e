//go:build !lean

package treesitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marek/symq/internal/ports"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(NewRegistry())
}

func extractSource(t *testing.T, language, source string, opts ports.ExtractOptions) []ports.Symbol {
	t.Helper()
	ex := newTestExtractor(t)
	syms, err := ex.SourceSymbols("test."+language, []byte(source), language, opts)
	require.NoError(t, err)
	return syms
}

func TestExtractor_GoSymbols(t *testing.T) {
	source := `package mathutil

// Counter tracks a running total.
type Counter struct {
	total int
}

// Add folds a value into the total.
func (c *Counter) Add(v int) {
	c.total += v
}

// Sum returns the sum of two integers.
func Sum(a, b int) int {
	return a + b
}
`
	syms := extractSource(t, "go", source, ports.ExtractOptions{})
	require.Len(t, syms, 3)

	assert.Equal(t, "Counter", syms[0].Name)
	assert.Equal(t, ports.KindClass, syms[0].Kind)
	assert.Equal(t, "Counter tracks a running total.", syms[0].Docstring)

	assert.Equal(t, "Add", syms[1].Name)
	assert.Equal(t, ports.KindMethod, syms[1].Kind)
	assert.Equal(t, "func (c *Counter) Add(v int)", syms[1].Signature)
	assert.Equal(t, "Add folds a value into the total.", syms[1].Docstring)

	assert.Equal(t, "Sum", syms[2].Name)
	assert.Equal(t, ports.KindFunction, syms[2].Kind)
	assert.Equal(t, "func Sum(a, b int) int", syms[2].Signature)
	assert.Equal(t, 14, syms[2].StartLine)
	assert.Equal(t, 16, syms[2].EndLine)
}

func TestExtractor_GoTypeAliasNotAClass(t *testing.T) {
	source := `package aliases

type Handler func(int) int

type Pair struct {
	A, B int
}
`
	syms := extractSource(t, "go", source, ports.ExtractOptions{})
	require.Len(t, syms, 1)
	assert.Equal(t, "Pair", syms[0].Name)
	assert.Equal(t, ports.KindClass, syms[0].Kind)
}

func TestExtractor_PythonDocstringAndMethods(t *testing.T) {
	source := `class Greeter:
    """Greets people."""

    def greet(self, name):
        """Say hello."""
        return "hi " + name

def shout(text):
    """Make it loud."""
    return text.upper()
`
	syms := extractSource(t, "python", source, ports.ExtractOptions{})
	require.Len(t, syms, 3)

	assert.Equal(t, "Greeter", syms[0].Name)
	assert.Equal(t, ports.KindClass, syms[0].Kind)
	assert.Equal(t, "Greets people.", syms[0].Docstring)

	assert.Equal(t, "greet", syms[1].Name)
	assert.Equal(t, ports.KindMethod, syms[1].Kind)
	assert.Equal(t, "Say hello.", syms[1].Docstring)
	assert.Equal(t, "def greet(self, name):", syms[1].Signature)

	assert.Equal(t, "shout", syms[2].Name)
	assert.Equal(t, ports.KindFunction, syms[2].Kind)
	assert.Equal(t, "Make it loud.", syms[2].Docstring)
}

func TestExtractor_PythonLeadingCommentFallback(t *testing.T) {
	source := `# computes sum
def add(a, b):
    return a + b
`
	syms := extractSource(t, "python", source, ports.ExtractOptions{})
	require.Len(t, syms, 1)
	assert.Equal(t, "add", syms[0].Name)
	assert.Equal(t, ports.KindFunction, syms[0].Kind)
	assert.Equal(t, "def add(a, b):", syms[0].Signature)
	assert.Equal(t, "computes sum", syms[0].Docstring)
	assert.Equal(t, 2, syms[0].StartLine)
	assert.Equal(t, 3, syms[0].EndLine)
}

func TestExtractor_PythonDecorated(t *testing.T) {
	source := `@cached
@traced
def lookup(key):
    """Fetch a value."""
    return table[key]
`
	syms := extractSource(t, "python", source, ports.ExtractOptions{IncludeContent: true})
	require.Len(t, syms, 1)

	sym := syms[0]
	assert.Equal(t, "lookup", sym.Name)
	assert.Equal(t, ports.KindFunction, sym.Kind)
	assert.Equal(t, "Fetch a value.", sym.Docstring)
	// Span covers the decorators, signature does not.
	assert.Equal(t, 1, sym.StartLine)
	assert.Equal(t, "def lookup(key):", sym.Signature)
	assert.Contains(t, sym.Content, "@cached")
}

func TestExtractor_NestedFunctionsNotDescended(t *testing.T) {
	source := `def outer():
    def inner():
        return 1
    return inner
`
	syms := extractSource(t, "python", source, ports.ExtractOptions{})
	require.Len(t, syms, 1)
	assert.Equal(t, "outer", syms[0].Name)
}

func TestExtractor_JavaScriptArrowBinding(t *testing.T) {
	source := `// doubles a value
const double = (x) => x * 2;

class Queue {
  push(item) {
    this.items.push(item);
  }
}
`
	syms := extractSource(t, "javascript", source, ports.ExtractOptions{})
	require.Len(t, syms, 3)

	assert.Equal(t, "double", syms[0].Name)
	assert.Equal(t, ports.KindFunction, syms[0].Kind)
	assert.Equal(t, "doubles a value", syms[0].Docstring)

	assert.Equal(t, "Queue", syms[1].Name)
	assert.Equal(t, ports.KindClass, syms[1].Kind)

	assert.Equal(t, "push", syms[2].Name)
	assert.Equal(t, ports.KindMethod, syms[2].Kind)
}

func TestExtractor_RustItems(t *testing.T) {
	source := `/// A point in the plane.
struct Point {
    x: f64,
    y: f64,
}

/// Euclidean norm.
fn norm(p: &Point) -> f64 {
    (p.x * p.x + p.y * p.y).sqrt()
}
`
	syms := extractSource(t, "rust", source, ports.ExtractOptions{})
	require.Len(t, syms, 2)

	assert.Equal(t, "Point", syms[0].Name)
	assert.Equal(t, ports.KindClass, syms[0].Kind)
	assert.Equal(t, "A point in the plane.", syms[0].Docstring)

	assert.Equal(t, "norm", syms[1].Name)
	assert.Equal(t, ports.KindFunction, syms[1].Kind)
	assert.Equal(t, "Euclidean norm.", syms[1].Docstring)
	assert.Equal(t, "fn norm(p: &Point) -> f64", syms[1].Signature)
}

func TestExtractor_BlankLineBreaksDocBlock(t *testing.T) {
	source := `package p

// stale note

func orphan() {}
`
	syms := extractSource(t, "go", source, ports.ExtractOptions{})
	require.Len(t, syms, 1)
	assert.Empty(t, syms[0].Docstring)
}

func TestExtractor_SignatureExcludesBody(t *testing.T) {
	source := `package p

func secret() string {
	return "body-marker"
}
`
	syms := extractSource(t, "go", source, ports.ExtractOptions{})
	require.Len(t, syms, 1)
	assert.NotContains(t, syms[0].Signature, "body-marker")
	assert.Empty(t, syms[0].Content)
}

func TestExtractor_EmptySource(t *testing.T) {
	syms := extractSource(t, "go", "", ports.ExtractOptions{})
	assert.Empty(t, syms)
}

func TestExtractor_BinaryContentRejected(t *testing.T) {
	ex := newTestExtractor(t)
	_, err := ex.SourceSymbols("bin.go", []byte("package p\x00func f() {}"), "go", ports.ExtractOptions{})
	var binErr *ports.BinaryFileError
	require.ErrorAs(t, err, &binErr)
	assert.Equal(t, "bin.go", binErr.Path)
}

func TestExtractor_ForceTextParsesBinary(t *testing.T) {
	ex := newTestExtractor(t)
	_, err := ex.SourceSymbols("bin.go", []byte("package p\x00"), "go", ports.ExtractOptions{ForceText: true})
	assert.NoError(t, err)
}

func TestExtractor_FileSymbols(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "util.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\n    pass\n"), 0o644))

	ex := newTestExtractor(t)
	syms, err := ex.FileSymbols(path, ports.ExtractOptions{})
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, "f", syms[0].Name)
}

func TestExtractor_FileSymbolsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xyz")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0o644))

	ex := newTestExtractor(t)
	_, err := ex.FileSymbols(path, ports.ExtractOptions{})
	var detErr *ports.DetectionError
	require.ErrorAs(t, err, &detErr)
	assert.Contains(t, err.Error(), "unknown extension")
}

func TestExtractor_LanguageOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.xyz")
	require.NoError(t, os.WriteFile(path, []byte("def g():\n    return 2\n"), 0o644))

	ex := newTestExtractor(t)
	syms, err := ex.FileSymbols(path, ports.ExtractOptions{Language: "python"})
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, "g", syms[0].Name)
}

func TestExtractor_ChunkedContent(t *testing.T) {
	source := "def big():\n"
	for i := 0; i < 40; i++ {
		source += "    x = 1\n"
	}
	syms := extractSource(t, "python", source, ports.ExtractOptions{IncludeContent: true, MaxChunkSize: 120})
	require.Greater(t, len(syms), 1)

	total := syms[0].ChunkCount
	var reassembled string
	for i, sym := range syms {
		require.NotNil(t, sym.ChunkIndex)
		assert.Equal(t, i, *sym.ChunkIndex)
		assert.Equal(t, total, sym.ChunkCount)
		assert.Equal(t, "big", sym.Name)
		assert.Equal(t, "big", sym.ParentSymbol)
		assert.True(t, sym.Overflow)
		assert.Equal(t, "def big():", sym.Signature)
		assert.LessOrEqual(t, len(sym.Content), 120)
		reassembled += sym.Content
	}
	// Chunks partition the original content exactly.
	assert.Contains(t, source, reassembled)

	// Line ranges follow the content split.
	assert.Equal(t, 1, syms[0].StartLine)
	for i := 1; i < len(syms); i++ {
		assert.Equal(t, syms[i-1].EndLine, syms[i].StartLine)
	}
}

func TestExtractor_DeterministicOutput(t *testing.T) {
	source := `package p

type A struct{ n int }

func (a *A) M() int { return a.n }

func F() {}
`
	ex := newTestExtractor(t)
	first, err := ex.SourceSymbols("p.go", []byte(source), "go", ports.ExtractOptions{IncludeContent: true})
	require.NoError(t, err)
	second, err := ex.SourceSymbols("p.go", []byte(source), "go", ports.ExtractOptions{IncludeContent: true})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestExtractor_OrderingNonDecreasing(t *testing.T) {
	source := `class A:
    def m1(self):
        pass

    def m2(self):
        pass

def after():
    pass
`
	syms := extractSource(t, "python", source, ports.ExtractOptions{})
	require.Len(t, syms, 4)
	for i := 1; i < len(syms); i++ {
		assert.GreaterOrEqual(t, syms[i].StartLine, syms[i-1].StartLine)
	}
}

func TestExtractor_UnavailableGrammar(t *testing.T) {
	ex := newTestExtractor(t)
	_, err := ex.SourceSymbols("x.swift", []byte("func f() {}"), "swift", ports.ExtractOptions{})
	var regErr *ports.RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "swift", regErr.Language)
}
