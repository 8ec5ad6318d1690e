package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marek/symq/internal/ports"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Watch a directory and keep the symbol cache fresh",
	Long: `Run a cached scan, then watch the tree for changes and reparse files
as they are created, modified, or removed. The cache under
<root>/.symq/ stays current for 'symq find' and future scans.

Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.DurationVar(&watchInterval, "interval", 0, "also rescan the whole tree at this interval (0 disables)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(args[0])
	if err != nil {
		return err
	}
	if !flagVerbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	svc, err := a.Watch(args[0], ports.ScanOptions{UseGitignore: true}, watchInterval)
	if err != nil {
		return err
	}

	c := newPalette()
	fmt.Printf("%s⚡ watching%s %s%s%s\n", c.bold, c.reset, c.cyan, svc.Root, c.reset)
	waitForInterrupt()
	fmt.Printf("\n%s⚡ shutting down...%s\n", c.bold, c.reset)
	svc.Stop()
	return nil
}

// waitForInterrupt blocks until SIGINT or SIGTERM.
func waitForInterrupt() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
