package cmd

import (
	"github.com/spf13/cobra"
)

var (
	queryLanguage string
	queryJSON     bool
	queryOutput   string
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <pattern>",
	Short: "Run a tree-sitter query against a file",
	Long: `Compile a tree-sitter S-expression query and run it against one file,
printing every capture in match order.

Example:
  symq query src/app.py '(function_definition name: (identifier) @fn)'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringVarP(&queryLanguage, "language", "l", "", "force a language instead of detecting from the extension")
	f.BoolVar(&queryJSON, "json", false, "emit JSON instead of the terminal listing")
	f.StringVarP(&queryOutput, "output", "o", "", "write output to a file instead of stdout")
}

func runQuery(cmd *cobra.Command, args []string) error {
	path, pattern := args[0], args[1]
	a, err := newApp(projectRoot())
	if err != nil {
		return err
	}

	captures, err := a.Extractor.Query(path, pattern, queryLanguage)
	if err != nil {
		return err
	}

	if queryJSON || queryOutput != "" {
		return emitJSON(captures, queryOutput)
	}
	return emitBytes([]byte(formatCaptures(path, captures)), "")
}
