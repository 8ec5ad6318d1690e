package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/marek/symq/internal/app"
	"github.com/marek/symq/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// palette resolves to real ANSI codes on a terminal and to empty strings
// when output is piped.
type palette struct {
	reset, bold, cyan, magenta, green, yellow, gray string
}

func newPalette() palette {
	if !isStdoutTTY() {
		return palette{}
	}
	return palette{
		reset:   colorReset,
		bold:    colorBold,
		cyan:    colorCyan,
		magenta: colorMagenta,
		green:   colorGreen,
		yellow:  colorYellow,
		gray:    colorGray,
	}
}

// emitJSON writes v as indented JSON to stdout, or to path when set.
func emitJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return emitBytes(append(data, '\n'), path)
}

// emitBytes writes rendered output to stdout, or to path when set.
func emitBytes(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// firstLine truncates s to its first line, capped at max bytes.
func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

// formatSymbols renders a symbol listing for terminal display.
//
//	⚡ 3 symbols │ python │ src/app.py
//	  function login [10-42]
//	      def login(user, password):
func formatSymbols(path, language string, symbols []ports.Symbol) string {
	c := newPalette()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d symbols%s │ %s%s%s │ %s%s%s\n",
		c.bold, len(symbols), c.reset, c.magenta, language, c.reset, c.cyan, path, c.reset))
	for _, sym := range symbols {
		name := sym.Name
		if name == "" {
			name = "<anonymous>"
		}
		sb.WriteString(fmt.Sprintf("  %s%s%s %s%s%s [%d-%d]",
			c.green, sym.Kind, c.reset, c.bold, name, c.reset, sym.StartLine, sym.EndLine))
		if sym.ChunkCount > 0 && sym.ChunkIndex != nil {
			sb.WriteString(fmt.Sprintf(" %s(chunk %d/%d)%s", c.yellow, *sym.ChunkIndex+1, sym.ChunkCount, c.reset))
		}
		sb.WriteString("\n")
		if sym.Signature != "" {
			sb.WriteString(fmt.Sprintf("      %s%s%s\n", c.gray, firstLine(sym.Signature, 100), c.reset))
		}
	}
	return sb.String()
}

// formatCaptures renders query captures for terminal display.
func formatCaptures(path string, captures []ports.Capture) string {
	c := newPalette()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d captures%s │ %s%s%s\n",
		c.bold, len(captures), c.reset, c.cyan, path, c.reset))
	for _, cpt := range captures {
		sb.WriteString(fmt.Sprintf("  %s@%s%s %s [%d:%d-%d:%d] %s%s%s\n",
			c.green, cpt.CaptureName, c.reset, cpt.NodeKind,
			cpt.StartLine, cpt.StartCol, cpt.EndLine, cpt.EndCol,
			c.gray, firstLine(cpt.Text, 80), c.reset))
	}
	return sb.String()
}

// formatScanSummary renders the per-file scan roll-up.
func formatScanSummary(result *ports.ScanResult) string {
	c := newPalette()
	total := 0
	for _, fr := range result.Results {
		total += len(fr.Symbols)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d files%s │ %d symbols │ %d errors\n",
		c.bold, len(result.Results), c.reset, total, len(result.Errors)))
	for _, path := range result.Paths() {
		fr := result.Results[path]
		sb.WriteString(fmt.Sprintf("  %s%s%s %s(%s)%s: %d symbols\n",
			c.cyan, path, c.reset, c.magenta, fr.Language, c.reset, len(fr.Symbols)))
	}
	if len(result.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("%sErrors:%s\n", c.yellow, c.reset))
		for _, path := range result.ErrorPaths() {
			sb.WriteString(fmt.Sprintf("  %s%s%s: %s\n", c.cyan, path, c.reset, result.Errors[path]))
		}
	}
	return sb.String()
}

// formatHits renders find results, one hit per line.
func formatHits(hits []app.FindHit) string {
	c := newPalette()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d hits%s\n", c.bold, len(hits), c.reset))
	for _, h := range hits {
		sb.WriteString(fmt.Sprintf("  %s%s%s:%s%s%s[%d-%d] %s%s%s\n",
			c.cyan, h.Path, c.reset, c.bold, h.Name, c.reset,
			h.StartLine, h.EndLine, c.green, h.Kind, c.reset))
	}
	return sb.String()
}
