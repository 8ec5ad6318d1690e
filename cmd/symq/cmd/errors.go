package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marek/symq/internal/ports"
)

// exitError carries a bare exit code for flows that already reported their
// outcome, like --strict scans and failed verifies.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

// ExitCode extracts an explicit exit code from an error chain, -1 when
// there is none.
func ExitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

// renderError decorates typed extraction errors with an actionable hint.
func renderError(err error) string {
	var det *ports.DetectionError
	if errors.As(err, &det) {
		return det.Error() + "\n  → pass --language to force one (see: symq langs)"
	}
	var reg *ports.RegistryError
	if errors.As(err, &reg) {
		return reg.Error() + "\n  → install it with: symq grammars fetch " + reg.Language
	}
	if strings.Contains(err.Error(), "no symbol cache") {
		return err.Error() + "\n  → build it first: symq scan --cache <root>"
	}
	if isDBLockError(err) {
		return err.Error() + "\n  → the cache is locked, stop a running symq watch or serve first"
	}
	return err.Error()
}

// isDBLockError reports a bbolt lock timeout anywhere in the chain. bbolt
// renders lock contention as the string "timeout".
func isDBLockError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "timeout")
}
