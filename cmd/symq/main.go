// symq extracts symbols from source code using tree-sitter grammars.
// One binary: single-file extraction, structural queries, directory scans,
// a persistent symbol cache, and a local HTTP API over the live index.
package main

import (
	"os"

	"github.com/marek/symq/cmd/symq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
