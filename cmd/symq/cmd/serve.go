package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/ports"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <root>",
	Short: "Serve the live symbol index over HTTP",
	Long: `Run watch mode and expose the index as read-only JSON on localhost:

  GET /v1/files            scanned file paths
  GET /v1/symbols?path=P   symbols for one file
  GET /v1/outline          the full scan result
  GET /v1/langs            supported languages
  GET /v1/healthz          liveness and index freshness

The default address derives a stable port from the root path, so each
project gets its own. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1 with a per-project port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(args[0])
	if err != nil {
		return err
	}
	if !flagVerbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	svc, err := a.Serve(args[0], serveAddr, ports.ScanOptions{UseGitignore: true}, 0)
	if err != nil {
		return err
	}

	c := newPalette()
	fmt.Printf("%s⚡ serving%s %s%s%s at %s%s%s\n",
		c.bold, c.reset, c.cyan, svc.Root, c.reset, c.green, svc.Server.URL(), c.reset)
	waitForInterrupt()
	fmt.Printf("\n%s⚡ shutting down...%s\n", c.bold, c.reset)
	svc.Stop()
	return nil
}
