//go:build !lean

package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marek/symq/internal/ports"
)

func TestRegistry_ResolveCaches(t *testing.T) {
	r := NewRegistry()

	first, err := r.Resolve("python")
	require.NoError(t, err)
	require.NotNil(t, first.Language)
	require.NotNil(t, first.Table)

	second, err := r.Resolve("python")
	require.NoError(t, err)
	assert.Same(t, first, second, "second resolve returns the cached binding")
}

func TestRegistry_ResolveUnavailable(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("brainfuck")
	var regErr *ports.RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "brainfuck", regErr.Language)
	assert.Contains(t, err.Error(), "grammar unavailable")
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()

	first, err := r.Resolve("go")
	require.NoError(t, err)

	r.Reset()

	second, err := r.Resolve("go")
	require.NoError(t, err)
	require.NotNil(t, second.Language)
	assert.NotSame(t, first, second, "reset drops cached bindings")
}

func TestRegistry_Languages(t *testing.T) {
	r := NewRegistry()
	langs := r.Languages()

	assert.Contains(t, langs, "python")
	assert.Contains(t, langs, "go")
	assert.Contains(t, langs, "tsx")
	assert.Contains(t, langs, "ocaml_interface")
	assert.IsIncreasing(t, langs)
}

func TestRegistry_Known(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Known("python"), "builtin grammar")
	assert.True(t, r.Known("swift"), "detectable language without builtin grammar")
	assert.False(t, r.Known("klingon"))
}

func TestRegistry_ClassGuards(t *testing.T) {
	// Guards are wired through the table, not the registry cache.
	b, err := NewRegistry().Resolve("go")
	require.NoError(t, err)
	assert.NotNil(t, b.Table.classGuard)

	c, err := NewRegistry().Resolve("c")
	require.NoError(t, err)
	assert.NotNil(t, c.Table.classGuard)
}
