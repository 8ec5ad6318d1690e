// Package treesitter extracts normalized symbol information from source
// files by parsing them with tree-sitter grammars. Per-language behavior is
// data (classification tables); the walker and builder are shared across all
// languages. Grammars compile in by default, with a purego-based loader for
// grammar libraries installed on disk.
package treesitter

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/marek/symq/internal/ports"
)

// Extractor implements ports.Extractor on top of a grammar registry.
type Extractor struct {
	registry *Registry
}

// NewExtractor builds an extractor over the given registry.
func NewExtractor(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Detect resolves the language for a path, honoring an explicit override.
func (e *Extractor) Detect(path, override string) (string, error) {
	return detectLanguage(path, override, e.registry.Known)
}

// Languages lists every language with a resolvable grammar.
func (e *Extractor) Languages() []string {
	return e.registry.Languages()
}

// FileSymbols reads a file and extracts its symbols.
func (e *Extractor) FileSymbols(path string, opts ports.ExtractOptions) ([]ports.Symbol, error) {
	language, err := e.Detect(path, opts.Language)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e.SourceSymbols(path, source, language, opts)
}

// SourceSymbols extracts symbols from source bytes already in hand. The
// returned symbols are ordered by start position; path is only used in
// errors and logs.
func (e *Extractor) SourceSymbols(path string, source []byte, language string, opts ports.ExtractOptions) ([]ports.Symbol, error) {
	if !opts.ForceText && isBinary(source) {
		return nil, &ports.BinaryFileError{Path: path}
	}
	binding, err := e.registry.Resolve(language)
	if err != nil {
		return nil, err
	}
	tree, err := parseSource(path, source, language, binding.Language)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	symbols := newSymbolWalker(path, source, binding.Table, opts).run(tree.RootNode())
	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].StartLine != symbols[j].StartLine {
			return symbols[i].StartLine < symbols[j].StartLine
		}
		return symbols[i].StartCol < symbols[j].StartCol
	})
	return symbols, nil
}

// Query compiles a structural pattern and runs it against a file's tree.
// The pattern is validated before the file is read, so a malformed pattern
// never produces partial results.
func (e *Extractor) Query(path, pattern, language string) ([]ports.Capture, error) {
	lang, err := e.Detect(path, language)
	if err != nil {
		return nil, err
	}
	binding, err := e.registry.Resolve(lang)
	if err != nil {
		return nil, err
	}
	q, err := compileQuery(binding.Language, pattern)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if isBinary(source) {
		return nil, &ports.BinaryFileError{Path: path}
	}
	tree, err := parseSource(path, source, lang, binding.Language)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return runQuery(q, tree.RootNode(), source), nil
}

// parseSource parses one buffer with a fresh parser. Parsers are cheap to
// construct and freeing them per call keeps the adapter free of shared
// mutable state.
func parseSource(path string, source []byte, language string, lang *tree_sitter.Language) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, &ports.RegistryError{Language: language, Reason: err.Error()}
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ports.ParseError{Path: path, Language: language, Reason: "parser produced no tree"}
	}
	return tree, nil
}

// isBinary reports whether content contains a NUL byte anywhere. Binary
// files are refused before any parser sees them.
func isBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}
