package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/ports"
)

var (
	symbolsLanguage  string
	symbolsContent   bool
	symbolsChunkSize int
	symbolsJSON      bool
	symbolsOutput    string
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <file>",
	Short: "Extract symbols from a single file",
	Long: `Parse one source file and list its top-level symbols: functions,
classes, methods, and the per-language constructs that map onto them.

The language is detected from the file extension. Pass --language to
force one when the extension is ambiguous or missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

func init() {
	f := symbolsCmd.Flags()
	f.StringVarP(&symbolsLanguage, "language", "l", "", "force a language instead of detecting from the extension")
	f.BoolVar(&symbolsContent, "content", false, "include the verbatim source of each symbol")
	f.IntVar(&symbolsChunkSize, "chunk-size", 0, "split oversized symbol content into chunks of at most this many bytes")
	f.BoolVar(&symbolsJSON, "json", false, "emit JSON instead of the terminal listing")
	f.StringVarP(&symbolsOutput, "output", "o", "", "write output to a file instead of stdout")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	path := args[0]
	a, err := newApp(projectRoot())
	if err != nil {
		return err
	}

	opts := a.ExtractOptions(ports.ExtractOptions{
		Language:       symbolsLanguage,
		IncludeContent: symbolsContent,
		MaxChunkSize:   symbolsChunkSize,
	})
	symbols, err := a.Extractor.FileSymbols(path, opts)
	if err != nil {
		return err
	}

	if symbolsJSON || symbolsOutput != "" {
		return emitJSON(symbols, symbolsOutput)
	}

	language, err := a.Extractor.Detect(path, symbolsLanguage)
	if err != nil {
		return err
	}
	return emitBytes([]byte(formatSymbols(path, language, symbols)), "")
}
