// Package outline renders directory scan results as Markdown or JSON.
// Rendering order follows the result's sorted path order, so output is
// byte-identical across runs.
package outline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marek/symq/internal/ports"
)

// Markdown renders one heading per file with a bullet per symbol, then an
// Errors section when any file failed. Anonymous symbols render as
// "<anonymous>".
func Markdown(result *ports.ScanResult) string {
	var lines []string
	for _, path := range result.Paths() {
		fr := result.Results[path]
		lines = append(lines, fmt.Sprintf("## %s (%s)", path, fr.Language))
		if len(fr.Symbols) > 0 {
			lines = append(lines, "")
			for _, sym := range fr.Symbols {
				name := sym.Name
				if name == "" {
					name = "<anonymous>"
				}
				lines = append(lines, fmt.Sprintf("- %s: %s (lines %d-%d)", sym.Kind, name, sym.StartLine, sym.EndLine))
			}
		}
		lines = append(lines, "")
	}
	if len(result.Errors) > 0 {
		lines = append(lines, "## Errors", "")
		for _, path := range result.ErrorPaths() {
			lines = append(lines, fmt.Sprintf("- %s: %s", path, result.Errors[path]))
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// JSON renders the scan result with 2-space indentation. Go's encoder sorts
// map keys, so serialization is deterministic.
func JSON(result *ports.ScanResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
