package cmd

import (
	"github.com/spf13/cobra"
)

var (
	findRoot   string
	findJSON   bool
	findOutput string
)

var findCmd = &cobra.Command{
	Use:   "find <pattern>...",
	Short: "Search cached symbols by name",
	Long: `Search the symbol cache for names containing any of the given
patterns. Matching is case-insensitive substring search across every
cached file at once.

The cache must exist first: run 'symq scan --cache <root>'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	f := findCmd.Flags()
	f.StringVar(&findRoot, "root", "", "project root holding the cache (default: current directory)")
	f.BoolVar(&findJSON, "json", false, "emit JSON instead of the terminal listing")
	f.StringVarP(&findOutput, "output", "o", "", "write output to a file instead of stdout")
}

func runFind(cmd *cobra.Command, args []string) error {
	root := findRoot
	if root == "" {
		root = projectRoot()
	}
	a, err := newApp(root)
	if err != nil {
		return err
	}

	hits, err := a.Find(root, args)
	if err != nil {
		return err
	}

	if findJSON || findOutput != "" {
		return emitJSON(hits, findOutput)
	}
	return emitBytes([]byte(formatHits(hits)), "")
}
