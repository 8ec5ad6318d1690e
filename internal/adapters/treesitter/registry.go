package treesitter

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/marek/symq/internal/ports"
)

// Binding pairs a compiled grammar with the classification table the walker
// uses for that language.
type Binding struct {
	Language *tree_sitter.Language
	Table    *ClassTable
}

// Registry resolves language identifiers to grammar bindings. Builtin
// grammars register lazy factories at construction; compiled grammar
// libraries on disk are picked up through the dynamic loader. Resolved
// bindings are cached for the life of the registry.
type Registry struct {
	mu        sync.Mutex
	factories map[string]func() *tree_sitter.Language
	cache     map[string]*Binding
	loader    *DynamicLoader
}

// NewRegistry builds a registry with every compiled-in grammar registered.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]func() *tree_sitter.Language),
		cache:     make(map[string]*Binding),
	}
	registerBuiltins(r)
	return r
}

func (r *Registry) register(name string, factory func() *tree_sitter.Language) {
	r.factories[name] = factory
}

// SetLoader attaches a dynamic grammar loader consulted when no builtin
// factory covers a language.
func (r *Registry) SetLoader(l *DynamicLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loader = l
}

// Resolve returns the binding for a language, loading and caching it on
// first use.
func (r *Registry) Resolve(language string) (*Binding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.cache[language]; ok {
		return b, nil
	}
	if factory, ok := r.factories[language]; ok {
		lang := factory()
		if lang == nil {
			return nil, &ports.RegistryError{Language: language, Reason: "builtin grammar failed to initialize"}
		}
		b := &Binding{Language: lang, Table: tableFor(language)}
		r.cache[language] = b
		return b, nil
	}
	if r.loader != nil {
		lang, err := r.loader.Load(language)
		if err != nil {
			log.Debug().Str("language", language).Err(err).Msg("treesitter: dynamic grammar load failed")
		} else if lang != nil {
			b := &Binding{Language: lang, Table: tableFor(language)}
			r.cache[language] = b
			return b, nil
		}
	}
	return nil, &ports.RegistryError{Language: language, Reason: "grammar unavailable"}
}

// Reset drops all cached bindings. Factories and the loader stay registered,
// so the next Resolve rebuilds from scratch.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*Binding)
}

// Known reports whether a language identifier is meaningful to this
// registry: a builtin factory, an installed dynamic grammar, or any entry in
// the detection tables.
func (r *Registry) Known(language string) bool {
	r.mu.Lock()
	_, builtin := r.factories[language]
	loader := r.loader
	r.mu.Unlock()

	if builtin || knownLanguage(language) {
		return true
	}
	return loader != nil && loader.Installed(language)
}

// Languages lists every language with a resolvable grammar, sorted.
func (r *Registry) Languages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(r.factories))
	for name := range r.factories {
		seen[name] = true
	}
	if r.loader != nil {
		for _, name := range r.loader.InstalledLanguages() {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
