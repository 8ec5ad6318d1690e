package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/adapters/treesitter"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List supported languages",
	Long: `List every language the current binary can parse, including grammars
loaded from grammar search directories. Use --verbose to show the file
extensions mapped to each language.`,
	Args: cobra.NoArgs,
	RunE: runLangs,
}

func runLangs(cmd *cobra.Command, args []string) error {
	a, err := newApp(projectRoot())
	if err != nil {
		return err
	}

	c := newPalette()
	languages := a.Registry.Languages()
	manifest := treesitter.BuiltinManifest()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d languages%s\n", c.bold, len(languages), c.reset))
	for _, lang := range languages {
		if flagVerbose {
			exts := "-"
			if info, ok := manifest.Grammars[lang]; ok && len(info.Extensions) > 0 {
				exts = strings.Join(info.Extensions, " ")
			}
			sb.WriteString(fmt.Sprintf("  %s%-16s%s %s%s%s\n", c.magenta, lang, c.reset, c.gray, exts, c.reset))
		} else {
			sb.WriteString(fmt.Sprintf("  %s%s%s\n", c.magenta, lang, c.reset))
		}
	}
	return emitBytes([]byte(sb.String()), "")
}
