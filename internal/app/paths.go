package app

import (
	"os"
	"path/filepath"
)

// Paths holds the resolved filesystem paths for a root's .symq/ directory.
// All fields are pre-computed at construction.
type Paths struct {
	Root        string // .symq/
	DB          string // .symq/symq.db
	GrammarsDir string // .symq/grammars/
}

// NewPaths resolves the .symq/ layout under a scan root.
func NewPaths(scanRoot string) *Paths {
	root := filepath.Join(scanRoot, ".symq")
	return &Paths{
		Root:        root,
		DB:          filepath.Join(root, "symq.db"),
		GrammarsDir: filepath.Join(root, "grammars"),
	}
}

// EnsureDirs creates the .symq/ subdirectories. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.GrammarsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// GlobalDir returns ~/.symq, the per-user home for the config file and
// shared grammars. Empty when the home directory cannot be resolved.
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".symq")
}
