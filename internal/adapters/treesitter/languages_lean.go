//go:build lean

package treesitter

// Lean builds carry no compiled-in grammars; every language resolves
// through the dynamic loader.
func registerBuiltins(r *Registry) {}
