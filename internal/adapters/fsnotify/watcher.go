// Package fsnotify implements the ports.Watcher interface using
// github.com/fsnotify/fsnotify. It recursively watches a scan root, filters
// out noise locations, and debounces rapid events (editors fire several
// writes per save; a cache refresh only needs the last one).
package fsnotify

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval suppresses repeat events for the same path.
const debounceInterval = 50 * time.Millisecond

// ignoreDirs lists directories whose contents never trigger a refresh.
// Matches the scanner's skip set.
var ignoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".idea":        true,
	".vscode":      true,
	".symq":        true,
}

// ignoreFiles lists file names and suffixes that never trigger a refresh.
var ignoreFiles = map[string]bool{
	".DS_Store": true,
	".swp":      true,
	".swx":      true,
	".pyc":      true,
	".o":        true,
	".so":       true,
	".dylib":    true,
	".tmp":      true,
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring root recursively. onChange is called with the
// absolute path of each changed file and may run on the watcher goroutine.
func (w *Watcher) Watch(root string, onChange func(path string)) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	// Register every directory under root; fsnotify has no recursive mode.
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if path != absRoot && ignoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Last event time per path, for debouncing.
	seen := make(map[string]time.Time)
	var seenMu sync.Mutex

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name

				// Newly created directories join the watch list.
				if event.Has(fsnotify.Create) {
					if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
						if !ignoreDirs[info.Name()] {
							_ = w.fw.Add(path)
						}
						continue
					}
				}

				if ignoredPath(path) {
					continue
				}

				seenMu.Lock()
				last, exists := seen[path]
				now := time.Now()
				if exists && now.Sub(last) < debounceInterval {
					seenMu.Unlock()
					continue
				}
				seen[path] = now
				seenMu.Unlock()

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					onChange(path)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify recovers on its own; nothing useful to do here.

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources. Safe to call multiple
// times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// ignoredPath reports whether a change at path should be dropped.
func ignoredPath(path string) bool {
	base := filepath.Base(path)
	if ignoreFiles[base] {
		return true
	}
	for suffix := range ignoreFiles {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return false
}
