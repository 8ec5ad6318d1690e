package web

import (
	"sync"
	"time"

	"github.com/marek/symq/internal/ports"
)

// Index holds the latest scan result for serving. Writers swap in a fresh
// result (or a copy with one file changed); readers receive the current
// pointer and must treat it as read-only. Handlers therefore never see a
// result mutating underneath them.
type Index struct {
	mu      sync.RWMutex
	root    string
	result  *ports.ScanResult
	updated time.Time
}

// NewIndex creates an empty index for the given scan root.
func NewIndex(root string) *Index {
	return &Index{root: root, result: ports.NewScanResult()}
}

// Root returns the scan root this index serves.
func (ix *Index) Root() string {
	return ix.root
}

// Update replaces the whole result.
func (ix *Index) Update(result *ports.ScanResult) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.result = result
	ix.updated = time.Now()
}

// UpdateFile records one file's extraction in a copy of the current result
// and swaps the copy in.
func (ix *Index) UpdateFile(rel string, fr ports.FileResult) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	next := cloneResult(ix.result)
	next.Results[rel] = fr
	delete(next.Errors, rel)
	ix.result = next
	ix.updated = time.Now()
}

// SetFileError records a per-file failure, displacing any prior result for
// that file.
func (ix *Index) SetFileError(rel, msg string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	next := cloneResult(ix.result)
	next.Errors[rel] = msg
	delete(next.Results, rel)
	ix.result = next
	ix.updated = time.Now()
}

// RemoveFile drops a file from both maps.
func (ix *Index) RemoveFile(rel string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	next := cloneResult(ix.result)
	delete(next.Results, rel)
	delete(next.Errors, rel)
	ix.result = next
	ix.updated = time.Now()
}

// Snapshot returns the current result. Callers must not mutate it.
func (ix *Index) Snapshot() *ports.ScanResult {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.result
}

// UpdatedAt returns when the index last changed.
func (ix *Index) UpdatedAt() time.Time {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.updated
}

func cloneResult(r *ports.ScanResult) *ports.ScanResult {
	next := ports.NewScanResult()
	for k, v := range r.Results {
		next.Results[k] = v
	}
	for k, v := range r.Errors {
		next.Errors[k] = v
	}
	return next
}
