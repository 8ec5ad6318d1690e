package treesitter

import (
	"github.com/rs/zerolog/log"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/marek/symq/internal/ports"
)

// symbolWalker carries state for one traversal of a parsed tree. Traversal
// stops at function nodes (nested closures are interior detail, not symbols)
// and descends through class nodes so their members surface as methods.
type symbolWalker struct {
	path    string
	source  []byte
	table   *ClassTable
	opts    ports.ExtractOptions
	symbols []ports.Symbol
}

func newSymbolWalker(path string, source []byte, table *ClassTable, opts ports.ExtractOptions) *symbolWalker {
	// Non-nil so a symbol-free file serializes as [] rather than null.
	return &symbolWalker{path: path, source: source, table: table, opts: opts, symbols: []ports.Symbol{}}
}

// run walks the tree from root and returns the collected symbols in
// traversal order.
func (w *symbolWalker) run(root *tree_sitter.Node) []ports.Symbol {
	w.walk(root, false)
	return w.symbols
}

func (w *symbolWalker) walk(n *tree_sitter.Node, inClass bool) {
	switch w.table.Classify(n.Kind()) {
	case CatWrapper:
		w.walkWrapper(n, inClass)

	case CatFunction:
		kind := ports.KindFunction
		if inClass {
			kind = ports.KindMethod
		}
		w.emit(n, n, kind)

	case CatMethod:
		w.emit(n, n, ports.KindMethod)

	case CatClass:
		if !w.table.allows(n) {
			w.walkChildren(n, inClass)
			return
		}
		w.emit(n, n, ports.KindClass)
		w.walkChildren(n, true)

	default:
		// Skip and unmapped kinds recurse without emitting.
		w.walkChildren(n, inClass)
	}
}

// walkWrapper handles transparent wrappers like a decorated definition: the
// wrapper supplies the span and content, the inner definition supplies the
// name, signature and kind.
func (w *symbolWalker) walkWrapper(n *tree_sitter.Node, inClass bool) {
	if w.table.wrapperField == "" {
		w.walkChildren(n, inClass)
		return
	}
	inner := n.ChildByFieldName(w.table.wrapperField)
	if inner == nil {
		w.walkChildren(n, inClass)
		return
	}
	switch w.table.Classify(inner.Kind()) {
	case CatFunction:
		kind := ports.KindFunction
		if inClass {
			kind = ports.KindMethod
		}
		w.emit(n, inner, kind)
	case CatMethod:
		w.emit(n, inner, ports.KindMethod)
	case CatClass:
		if !w.table.allows(inner) {
			w.walkChildren(n, inClass)
			return
		}
		w.emit(n, inner, ports.KindClass)
		w.walkChildren(inner, true)
	default:
		w.walkChildren(n, inClass)
	}
}

func (w *symbolWalker) walkChildren(n *tree_sitter.Node, inClass bool) {
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil {
			w.walk(c, inClass)
		}
	}
}

// emit builds a symbol from span (full extent) and def (the defining node)
// and appends it, expanding oversized content into chunks when configured.
// Symbols with inconsistent positions are logged and dropped.
func (w *symbolWalker) emit(span, def *tree_sitter.Node, kind ports.SymbolKind) {
	sym, err := buildSymbol(w.path, w.source, w.table, span, def, kind, w.opts)
	if err != nil {
		log.Warn().Str("path", w.path).Err(err).Msg("treesitter: dropping symbol")
		return
	}
	if w.opts.IncludeContent && w.opts.MaxChunkSize > 0 && len(sym.Content) > w.opts.MaxChunkSize {
		w.symbols = append(w.symbols, splitContent(sym, w.opts.MaxChunkSize)...)
		return
	}
	w.symbols = append(w.symbols, sym)
}
