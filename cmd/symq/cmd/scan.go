package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/domain/outline"
	"github.com/marek/symq/internal/ports"
)

var (
	scanInclude   []string
	scanExclude   []string
	scanGitignore bool
	scanCache     bool
	scanContent   bool
	scanJobs      int
	scanOutline   bool
	scanJSON      bool
	scanOutput    string
	scanStrict    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Extract symbols from every file under a directory",
	Long: `Walk a directory tree, extract symbols from every recognized source
file, and print a per-file summary. Hidden directories, common vendor
and build directories, and unreadable files are skipped.

With --cache, results are persisted under <root>/.symq/ and unchanged
files are served from the cache on the next scan. With --outline, the
result is rendered as a Markdown code map instead of a summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringArrayVar(&scanInclude, "include", nil, "only scan files matching this glob (repeatable)")
	f.StringArrayVar(&scanExclude, "exclude", nil, "skip files matching this glob (repeatable)")
	f.BoolVar(&scanGitignore, "gitignore", false, "honor .gitignore at the scan root")
	f.BoolVar(&scanCache, "cache", false, "persist results and reuse them for unchanged files")
	f.BoolVar(&scanContent, "content", false, "include the verbatim source of each symbol")
	f.IntVarP(&scanJobs, "jobs", "j", 0, "parallel workers (default: one per CPU)")
	f.BoolVar(&scanOutline, "outline", false, "render a Markdown code map instead of a summary")
	f.BoolVar(&scanJSON, "json", false, "emit JSON instead of the terminal summary")
	f.StringVarP(&scanOutput, "output", "o", "", "write output to a file instead of stdout")
	f.BoolVar(&scanStrict, "strict", false, "exit non-zero when any file fails to parse")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	if len(args) > 0 {
		root = args[0]
	}
	a, err := newApp(root)
	if err != nil {
		return err
	}

	result, err := a.Scan(root, ports.ScanOptions{
		Include:        scanInclude,
		Exclude:        scanExclude,
		UseGitignore:   scanGitignore,
		IncludeContent: scanContent,
		Jobs:           scanJobs,
	}, scanCache)
	if err != nil {
		return err
	}

	switch {
	case scanOutline:
		err = emitBytes([]byte(outline.Markdown(result)), scanOutput)
	case scanJSON || scanOutput != "":
		var doc string
		doc, err = outline.JSON(result)
		if err == nil {
			err = emitBytes([]byte(doc), scanOutput)
		}
	default:
		err = emitBytes([]byte(formatScanSummary(result)), "")
	}
	if err != nil {
		return err
	}

	if scanStrict && len(result.Errors) > 0 {
		return &exitError{code: 1}
	}
	return nil
}
