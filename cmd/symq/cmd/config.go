package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Shows the config file in use, the cache location, and the grammar search order for the current directory.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = app.DefaultConfigPath()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := newPalette()
	status := fmt.Sprintf("%s✗ not found, using defaults%s", c.yellow, c.reset)
	if _, err := os.Stat(cfgPath); err == nil {
		status = fmt.Sprintf("%s✓ loaded%s", c.green, c.reset)
	}

	excludes := "none"
	if len(cfg.Exclude) > 0 {
		excludes = strings.Join(cfg.Exclude, ", ")
	}

	fmt.Printf("%s⚡ symq config%s\n", c.bold, c.reset)
	fmt.Printf("  Config:      %s  %s\n", cfgPath, status)
	fmt.Printf("  Root:        %s\n", root)
	fmt.Printf("  Cache:       %s\n", app.NewPaths(root).DB)
	fmt.Printf("  Jobs:        %s\n", orDefault(cfg.Jobs, "one per CPU"))
	fmt.Printf("  Chunk size:  %s\n", orDefault(cfg.ChunkSize, "off"))
	fmt.Printf("  Excludes:    %s\n", excludes)
	fmt.Printf("  Grammars:\n")
	for _, dir := range app.GrammarSearchPaths(cfg, root) {
		fmt.Printf("    %s%s%s\n", c.gray, dir, c.reset)
	}
	return nil
}

func orDefault(n int, fallback string) string {
	if n <= 0 {
		return fallback
	}
	return strconv.Itoa(n)
}
