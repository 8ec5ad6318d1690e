package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/adapters/treesitter"
)

var grammarsDir string

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "Manage downloadable tree-sitter grammars",
	Long: `List, download, and verify tree-sitter grammar libraries. Grammars
compiled into the binary are always available; the rest are downloaded
as shared libraries into a grammar directory and loaded at runtime.`,
}

var grammarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known grammars and their install status",
	Args:  cobra.NoArgs,
	RunE:  runGrammarsList,
}

var grammarsFetchCmd = &cobra.Command{
	Use:   "fetch <grammar|pack>...",
	Short: "Download grammar libraries",
	Long: `Download one or more grammar libraries for the current platform.
Arguments are grammar names (python, rust, ...) or pack names:

  core        the P1 tier
  common      the P2 tier
  extended    the P3 tier
  specialist  the P4 tier
  all         every grammar in the catalog`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrammarsFetch,
}

var grammarsVerifyCmd = &cobra.Command{
	Use:   "verify [grammar]...",
	Short: "Check downloaded grammars against the catalog hashes",
	Args:  cobra.ArbitraryArgs,
	RunE:  runGrammarsVerify,
}

func init() {
	grammarsCmd.PersistentFlags().StringVar(&grammarsDir, "dir", treesitter.GlobalGrammarDir(),
		"grammar directory")
	grammarsCmd.AddCommand(grammarsListCmd)
	grammarsCmd.AddCommand(grammarsFetchCmd)
	grammarsCmd.AddCommand(grammarsVerifyCmd)
}

func runGrammarsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(projectRoot())
	if err != nil {
		return err
	}

	c := newPalette()
	manifest := treesitter.BuiltinManifest()
	loader := treesitter.NewDynamicLoader(grammarsDir)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ grammar catalog%s │ %s │ %s\n",
		c.bold, c.reset, treesitter.PlatformString(), grammarsDir))
	for _, tier := range treesitter.AllPriorities {
		names := manifest.GrammarsByPriority(tier.Code)
		sb.WriteString(fmt.Sprintf("\n%s%s (%s)%s\n", c.bold, tier.Name, tier.Code, c.reset))
		for _, name := range names {
			info := manifest.Grammars[name]
			switch {
			case a.Registry.Known(name):
				sb.WriteString(fmt.Sprintf("  %s✓%s %-16s %s%-8s builtin%s\n",
					c.green, c.reset, name, c.gray, info.Version, c.reset))
			case loader.Installed(name):
				sb.WriteString(fmt.Sprintf("  %s✓%s %-16s %s%-8s installed%s\n",
					c.green, c.reset, name, c.gray, info.Version, c.reset))
			default:
				sb.WriteString(fmt.Sprintf("  %s✗%s %-16s %s%-8s available%s\n",
					c.yellow, c.reset, name, c.gray, info.Version, c.reset))
			}
		}
	}
	return emitBytes([]byte(sb.String()), "")
}

// resolveGrammarArgs expands pack names into grammar names, keeping plain
// grammar names as-is. Unknown arguments are an error.
func resolveGrammarArgs(manifest *treesitter.Manifest, args []string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, arg := range args {
		if pack := manifest.PackGrammars(arg); pack != nil {
			for _, name := range pack {
				add(name)
			}
			continue
		}
		if _, ok := manifest.Grammars[arg]; !ok {
			return nil, fmt.Errorf("unknown grammar or pack %q (see: symq grammars list)", arg)
		}
		add(arg)
	}
	return names, nil
}

func runGrammarsFetch(cmd *cobra.Command, args []string) error {
	manifest := treesitter.BuiltinManifest()
	names, err := resolveGrammarArgs(manifest, args)
	if err != nil {
		return err
	}

	c := newPalette()
	fetcher := treesitter.NewFetcher(manifest)
	fmt.Printf("%s⚡ fetching %d grammars%s │ %s → %s\n",
		c.bold, len(names), c.reset, treesitter.PlatformString(), grammarsDir)
	failed := 0
	for _, name := range names {
		path, err := fetcher.Fetch(name, grammarsDir)
		if err != nil {
			failed++
			fmt.Printf("  %s✗%s %-16s %s\n", c.yellow, c.reset, name, err)
			continue
		}
		fmt.Printf("  %s✓%s %-16s %s%s%s\n", c.green, c.reset, name, c.gray, path, c.reset)
	}
	if failed > 0 {
		fmt.Printf("%s%d of %d grammars failed%s\n", c.yellow, failed, len(names), c.reset)
		return &exitError{code: 1}
	}
	return nil
}

func runGrammarsVerify(cmd *cobra.Command, args []string) error {
	manifest := treesitter.BuiltinManifest()
	names := args
	if len(names) == 0 {
		names = treesitter.NewDynamicLoader(grammarsDir).InstalledLanguages()
	}
	if len(names) == 0 {
		fmt.Printf("no grammars installed in %s\n", grammarsDir)
		return nil
	}

	c := newPalette()
	fetcher := treesitter.NewFetcher(manifest)
	failed := 0
	for _, name := range names {
		if err := fetcher.Verify(name, grammarsDir); err != nil {
			failed++
			fmt.Printf("  %s✗%s %-16s %s\n", c.yellow, c.reset, name, err)
			continue
		}
		fmt.Printf("  %s✓%s %s\n", c.green, c.reset, name)
	}
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}
