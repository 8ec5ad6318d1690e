package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/marek/symq/internal/ports"
)

// buildSymbol assembles one Symbol from a candidate node. span is the full
// extent (the wrapper for decorated definitions), def the defining node that
// supplies name, signature and docstring. Only position inconsistency is an
// error; a missing name just yields an anonymous symbol.
func buildSymbol(path string, source []byte, table *ClassTable, span, def *tree_sitter.Node, kind ports.SymbolKind, opts ports.ExtractOptions) (ports.Symbol, error) {
	var name string
	if def.Kind() == "arrow_function" {
		name = borrowedName(source, def)
	} else {
		name = extractName(source, def, table)
	}

	start := span.StartPosition()
	end := span.EndPosition()
	if end.Row < start.Row || (end.Row == start.Row && end.Column < start.Column) {
		return ports.Symbol{}, &ports.BuildError{Path: path, Name: name}
	}

	var doc string
	switch table.DocStyle() {
	case DocBodyString:
		doc = bodyDocstring(source, def, table)
		if doc == "" {
			doc = leadingComments(source, span, table)
		}
	case DocLeadingComment:
		doc = leadingComments(source, span, table)
	}

	sym := ports.Symbol{
		Name:      name,
		Kind:      kind,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
		Signature: signatureText(source, def, table),
		Docstring: doc,
	}
	if opts.IncludeContent {
		sym.Content = nodeText(source, span)
	}
	return sym, nil
}

// nodeText returns the verbatim source slice for a node, or "" when the
// node's byte range does not fit the buffer.
func nodeText(source []byte, n *tree_sitter.Node) string {
	s, e := n.StartByte(), n.EndByte()
	if s > e || e > uint(len(source)) {
		return ""
	}
	return string(source[s:e])
}

// extractName finds a symbol's name: the node's name field if present, the
// node itself if it is a name kind, otherwise the first name found among
// children. Bodies, comments, strings and parameter lists are never searched
// so a name is only ever taken from the declaration head.
func extractName(source []byte, n *tree_sitter.Node, table *ClassTable) string {
	if nn := n.ChildByFieldName("name"); nn != nil {
		return strings.TrimSpace(nodeText(source, nn))
	}
	if table.Classify(n.Kind()) == CatName {
		return strings.TrimSpace(nodeText(source, n))
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch table.Classify(c.Kind()) {
		case CatBody, CatComment, CatString:
			continue
		}
		if strings.Contains(c.Kind(), "parameter") {
			continue
		}
		if name := extractName(source, c, table); name != "" {
			return name
		}
	}
	return ""
}

// borrowedName resolves a name for anonymous function forms from the
// surrounding binding, so const handler = () => {} surfaces as "handler".
func borrowedName(source []byte, n *tree_sitter.Node) string {
	p := n.Parent()
	if p == nil {
		return ""
	}
	var nn *tree_sitter.Node
	switch p.Kind() {
	case "variable_declarator":
		nn = p.ChildByFieldName("name")
	case "field_definition", "public_field_definition":
		nn = p.ChildByFieldName("property")
	case "assignment_expression":
		nn = p.ChildByFieldName("left")
	case "pair":
		nn = p.ChildByFieldName("key")
	}
	if nn == nil {
		return ""
	}
	return strings.TrimSpace(nodeText(source, nn))
}

// bodyNode locates a node's body block: the "body" field when the grammar
// names one, else the first child with a body-classified kind.
func bodyNode(n *tree_sitter.Node, table *ClassTable) *tree_sitter.Node {
	if b := n.ChildByFieldName("body"); b != nil {
		return b
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && table.Classify(c.Kind()) == CatBody {
			return c
		}
	}
	return nil
}

// signatureText reconstructs the declaration head: source from the node
// start to the start of its body, whitespace-collapsed so formatting style
// does not leak into output. Nodes without an identifiable body fall back to
// their first line.
func signatureText(source []byte, def *tree_sitter.Node, table *ClassTable) string {
	if body := bodyNode(def, table); body != nil {
		s, b := def.StartByte(), body.StartByte()
		if b > s && b <= uint(len(source)) {
			return collapseSpace(string(source[s:b]))
		}
	}
	text := nodeText(source, def)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return collapseSpace(text)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// bodyDocstring implements the convention of languages where the docstring
// is a bare string literal as the body's first statement.
func bodyDocstring(source []byte, def *tree_sitter.Node, table *ClassTable) string {
	body := bodyNode(def, table)
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first == nil || first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	expr := first.Child(0)
	if expr == nil || table.Classify(expr.Kind()) != CatString {
		return ""
	}
	return strings.TrimSpace(strings.Trim(nodeText(source, expr), "\"' "))
}

// leadingComments collects the contiguous comment block directly above a
// node. A blank line breaks the block, and a comment trailing another
// statement on its own line is never claimed.
func leadingComments(source []byte, n *tree_sitter.Node, table *ClassTable) string {
	// Comments sit beside the outermost node starting on this row: the
	// type_spec inside a type declaration, or an arrow function inside a
	// const binding, never see them as siblings directly.
	for n.Parent() != nil && n.Parent().StartPosition().Row == n.StartPosition().Row {
		n = n.Parent()
	}

	var block []*tree_sitter.Node
	nextRow := int(n.StartPosition().Row)
	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if table.Classify(prev.Kind()) != CatComment {
			break
		}
		if nextRow-int(prev.EndPosition().Row) > 1 {
			break
		}
		if before := prev.PrevSibling(); before != nil &&
			int(before.EndPosition().Row) == int(prev.StartPosition().Row) &&
			table.Classify(before.Kind()) != CatComment {
			break
		}
		block = append(block, prev)
		nextRow = int(prev.StartPosition().Row)
	}
	if len(block) == 0 {
		return ""
	}
	var lines []string
	for i := len(block) - 1; i >= 0; i-- {
		lines = append(lines, cleanCommentLines(nodeText(source, block[i]))...)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// cleanCommentLines strips comment markers from a raw comment, one cleaned
// line per source line. Interior blank lines survive so paragraph breaks in
// doc blocks are preserved.
func cleanCommentLines(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/*") {
		raw = strings.TrimPrefix(raw, "/**")
		raw = strings.TrimPrefix(raw, "/*")
		raw = strings.TrimSuffix(raw, "*/")
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "///"):
			line = line[3:]
		case strings.HasPrefix(line, "//!"):
			line = line[3:]
		case strings.HasPrefix(line, "//"):
			line = line[2:]
		case strings.HasPrefix(line, "#"):
			line = line[1:]
		case strings.HasPrefix(line, "--"):
			line = line[2:]
		case strings.HasPrefix(line, "*"):
			line = line[1:]
		}
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

// splitContent slices an oversized symbol into newline-aligned chunks. Every
// chunk repeats the parent's name, kind, signature and docstring so each
// piece stands alone; indexes mark the sequence.
func splitContent(sym ports.Symbol, maxSize int) []ports.Symbol {
	content := sym.Content
	total := len(content)

	var bounds []int
	pos := 0
	for pos < total {
		end := pos + maxSize
		if end > total {
			end = total
		}
		if end < total {
			// Align to the last newline inside the window; hard split only
			// when the window has none.
			if nl := strings.LastIndexByte(content[pos:end], '\n'); nl > 0 {
				end = pos + nl + 1
			}
		}
		bounds = append(bounds, end)
		pos = end
	}

	count := len(bounds)
	out := make([]ports.Symbol, 0, count)
	start := 0
	lineOff := 0
	for i, end := range bounds {
		text := content[start:end]
		newlines := strings.Count(text, "\n")

		cs := sym
		cs.Content = text
		cs.StartLine = sym.StartLine + lineOff
		cs.EndLine = cs.StartLine + newlines
		cs.StartCol = 0
		cs.EndCol = 0
		if i == 0 {
			cs.StartCol = sym.StartCol
		}
		if i == count-1 {
			cs.EndCol = sym.EndCol
		}
		idx := i
		cs.ChunkIndex = &idx
		cs.ChunkCount = count
		cs.ParentSymbol = sym.Name
		cs.Overflow = true
		out = append(out, cs)

		start = end
		lineOff += newlines
	}
	return out
}
