// Package scan aggregates per-file symbol extraction across a directory
// tree. File enumeration is deterministic (lexicographic by relative path)
// regardless of worker count; per-file failures are recorded in the result
// and never abort the scan.
package scan

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/marek/symq/internal/ports"
)

// DefaultMaxFileSize caps how large a file the scanner will parse when
// ScanOptions.MaxFileSize is zero.
const DefaultMaxFileSize = 5 << 20 // 5 MB

// skipDirs lists directories never descended into. Exclude globs add to
// this set; nothing removes from it.
var skipDirs = map[string]bool{
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

// Scanner walks a directory tree and extracts symbols from every included
// file. With a store attached, unchanged files (same size and mtime) are
// served from cached records instead of being reparsed.
type Scanner struct {
	ex    ports.Extractor
	store ports.SymbolStore
}

// New builds a scanner over the given extractor.
func New(ex ports.Extractor) *Scanner {
	return &Scanner{ex: ex}
}

// NewCached builds a scanner that reads unchanged files from store and
// writes fresh extractions back to it.
func NewCached(ex ports.Extractor, store ports.SymbolStore) *Scanner {
	return &Scanner{ex: ex, store: store}
}

// candidate is one file selected by the walk, carrying the fingerprint
// fields the cache keys on.
type candidate struct {
	rel     string
	abs     string
	size    int64
	mtimeNS int64
}

// outcome is the per-file extraction result, filled in by a worker.
type outcome struct {
	language string
	symbols  []ports.Symbol
	err      error
}

// Scan enumerates files under root, extracts symbols from each, and merges
// everything into one result. Every included file lands in exactly one of
// Results or Errors. Only caller-level problems (bad root, bad glob) return
// an error; per-file failures do not.
func (s *Scanner) Scan(root string, opts ports.ScanOptions) (*ports.ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}
	if err := validatePatterns("include", opts.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns("exclude", opts.Exclude); err != nil {
		return nil, err
	}

	var gi *ignore.GitIgnore
	if opts.UseGitignore {
		gi = loadGitignore(absRoot)
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	result := ports.NewScanResult()
	var work []candidate

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			rel, relErr := relPath(absRoot, path)
			if relErr != nil || rel == "." {
				return walkErr
			}
			result.Errors[rel] = walkErr.Error()
			return nil
		}
		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if gi != nil {
				if rel, relErr := relPath(absRoot, path); relErr == nil && gi.MatchesPath(rel+"/") {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := relPath(absRoot, path)
		if relErr != nil {
			return nil
		}
		if !Included(rel, opts.Include, opts.Exclude) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		fi, infoErr := d.Info()
		if infoErr != nil {
			result.Errors[rel] = infoErr.Error()
			return nil
		}
		if fi.Size() > maxSize {
			result.Errors[rel] = "file too large"
			return nil
		}
		work = append(work, candidate{
			rel:     rel,
			abs:     path,
			size:    fi.Size(),
			mtimeNS: fi.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Slice(work, func(i, j int) bool { return work[i].rel < work[j].rel })

	outcomes := make([]outcome, len(work))
	if len(work) > 0 {
		jobs := opts.Jobs
		if jobs <= 0 {
			jobs = runtime.NumCPU()
		}
		if jobs > len(work) {
			jobs = len(work)
		}
		g := new(errgroup.Group)
		g.SetLimit(jobs)
		for i, c := range work {
			g.Go(func() error {
				outcomes[i] = s.processFile(absRoot, c, opts)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i, c := range work {
		o := outcomes[i]
		if o.err != nil {
			result.Errors[c.rel] = ErrorMessage(o.err)
			continue
		}
		result.Results[c.rel] = ports.FileResult{Language: o.language, Symbols: o.symbols}
	}

	// Only an unfiltered scan sees the whole tree, so only it may evict
	// records for files that no longer exist.
	unfiltered := len(opts.Include) == 0 && len(opts.Exclude) == 0 && !opts.UseGitignore
	if s.store != nil && !opts.IncludeContent && unfiltered {
		s.pruneCache(absRoot, result)
	}
	return result, nil
}

// pruneCache drops records for files absent from this scan's result.
func (s *Scanner) pruneCache(root string, result *ports.ScanResult) {
	files, err := s.store.Files(root)
	if err != nil {
		return
	}
	for _, rel := range files {
		if _, ok := result.Results[rel]; ok {
			continue
		}
		if _, ok := result.Errors[rel]; ok {
			continue
		}
		_ = s.store.DeleteFile(root, rel)
	}
}

// processFile extracts one file, consulting the cache first when one is
// attached. Content-bearing scans bypass the cache; records hold the lean
// symbol shape.
func (s *Scanner) processFile(root string, c candidate, opts ports.ScanOptions) outcome {
	useCache := s.store != nil && !opts.IncludeContent
	if useCache {
		rec, err := s.store.LoadFile(root, c.rel)
		if err == nil && rec != nil && rec.Size == c.size && rec.MTimeNS == c.mtimeNS {
			return outcome{language: rec.Language, symbols: rec.Symbols}
		}
	}

	fr, err := s.ExtractFile(c.abs, c.rel, opts)
	if err != nil {
		return outcome{err: err}
	}

	if useCache {
		rec := &ports.FileRecord{Size: c.size, MTimeNS: c.mtimeNS, Language: fr.Language, Symbols: fr.Symbols}
		// Cache write is best effort.
		_ = s.store.SaveFile(root, c.rel, rec)
	}
	return outcome{language: fr.Language, symbols: fr.Symbols}
}

// ExtractFile runs the per-file pipeline for one file: read, binary check,
// language detection, extraction. rel is the slash-separated path reported
// in errors; absPath is where the bytes live. The cache is not consulted.
func (s *Scanner) ExtractFile(absPath, rel string, opts ports.ScanOptions) (ports.FileResult, error) {
	source, err := os.ReadFile(absPath)
	if err != nil {
		return ports.FileResult{}, err
	}
	if !opts.ForceText && bytes.IndexByte(source, 0) >= 0 {
		return ports.FileResult{}, &ports.BinaryFileError{Path: rel}
	}
	language, err := s.ex.Detect(rel, "")
	if err != nil {
		return ports.FileResult{}, err
	}
	symbols, err := s.ex.SourceSymbols(rel, source, language, ports.ExtractOptions{
		IncludeContent: opts.IncludeContent,
		MaxChunkSize:   opts.MaxChunkSize,
		ForceText:      opts.ForceText,
	})
	if err != nil {
		return ports.FileResult{}, err
	}
	return ports.FileResult{Language: language, Symbols: symbols}, nil
}

// ErrorMessage renders a per-file error without repeating the path the
// result map already keys on.
func ErrorMessage(err error) string {
	var det *ports.DetectionError
	if errors.As(err, &det) {
		return det.Reason
	}
	var bin *ports.BinaryFileError
	if errors.As(err, &bin) {
		return "binary file"
	}
	var parse *ports.ParseError
	if errors.As(err, &parse) {
		return fmt.Sprintf("parse error (%s): %s", parse.Language, parse.Reason)
	}
	return err.Error()
}

// Included applies include then exclude globs to a slash-separated relative
// path. No include patterns means every file is a candidate.
func Included(rel string, include, exclude []string) bool {
	if len(include) > 0 && !matchAny(include, rel) {
		return false
	}
	return !matchAny(exclude, rel)
}

// matchAny reports whether rel matches any pattern. Patterns use doublestar
// syntax; a leading "**/" also matches entries at the root.
func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
		if strings.HasPrefix(p, "**/") {
			if ok, err := doublestar.Match(p[3:], rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func validatePatterns(kind string, patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return fmt.Errorf("bad %s pattern %q", kind, p)
		}
	}
	return nil
}

// loadGitignore compiles <root>/.gitignore when present.
func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func relPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
