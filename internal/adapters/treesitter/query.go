package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/marek/symq/internal/ports"
)

// compileQuery validates a pattern against a grammar. Malformed patterns
// fail here, before any file is read or parsed.
func compileQuery(lang *tree_sitter.Language, pattern string) (*tree_sitter.Query, error) {
	q, qerr := tree_sitter.NewQuery(lang, pattern)
	if qerr != nil {
		return nil, &ports.QueryError{
			Message: qerr.Message,
			Row:     int(qerr.Row),
			Column:  int(qerr.Column),
		}
	}
	return q, nil
}

// runQuery executes a compiled query over a tree and flattens the results
// into captures. Match order is the engine's; captures within a match keep
// their pattern order. Nothing is synthesized or reordered here.
func runQuery(q *tree_sitter.Query, root *tree_sitter.Node, source []byte) []ports.Capture {
	names := q.CaptureNames()
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	out := []ports.Capture{}
	matches := cursor.Matches(q, root, source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for _, c := range m.Captures {
			var name string
			if int(c.Index) < len(names) {
				name = names[c.Index]
			}
			node := c.Node
			start := node.StartPosition()
			end := node.EndPosition()
			out = append(out, ports.Capture{
				PatternIndex: int(m.PatternIndex),
				CaptureName:  name,
				NodeKind:     node.Kind(),
				StartLine:    int(start.Row) + 1,
				StartCol:     int(start.Column),
				EndLine:      int(end.Row) + 1,
				EndCol:       int(end.Column),
				Text:         node.Utf8Text(source),
			})
		}
	}
	return out
}
