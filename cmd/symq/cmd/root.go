package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/app"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "symq",
	Short: "Symbol extraction over tree-sitter",
	Long: "Extract functions, classes and methods from source trees using\n" +
		"tree-sitter grammars. Scan directories, run structural queries,\n" +
		"cache results, and serve them over HTTP.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

// projectRoot returns the directory commands operate on (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// loadConfig resolves the active configuration. An explicit --config must
// exist; the default location is load-if-present.
func loadConfig() (*app.Config, error) {
	if flagConfig != "" {
		if _, err := os.Stat(flagConfig); err != nil {
			return nil, fmt.Errorf("config %s: %w", flagConfig, err)
		}
		return app.LoadConfig(flagConfig)
	}
	return app.LoadConfig(app.DefaultConfigPath())
}

// newApp builds the application stack rooted at root.
func newApp(root string) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewApp(cfg, root), nil
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// Execute runs the root command, rendering typed errors with hints.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && ExitCode(err) < 0 {
		fmt.Fprintf(os.Stderr, "error: %s\n", renderError(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.symq/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(langsCmd)
	rootCmd.AddCommand(grammarsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
