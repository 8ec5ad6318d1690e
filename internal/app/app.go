// Package app wires the adapters and domain logic into the operations the
// CLI exposes: one-shot scans, cached scans, name search over the cache,
// and the watch and serve loops.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/rs/zerolog/log"

	"github.com/marek/symq/internal/adapters/ahocorasick"
	"github.com/marek/symq/internal/adapters/bolt"
	"github.com/marek/symq/internal/adapters/fsnotify"
	"github.com/marek/symq/internal/adapters/treesitter"
	"github.com/marek/symq/internal/adapters/web"
	"github.com/marek/symq/internal/domain/scan"
	"github.com/marek/symq/internal/ports"
)

// App owns the extractor stack for one invocation. Commands construct an
// App with the root they operate on so grammar lookup can include the
// root-local .symq/grammars directory.
type App struct {
	Config    *Config
	Registry  *treesitter.Registry
	Extractor ports.Extractor
}

// NewApp builds the registry and extractor for one invocation. root is the
// directory the command operates on; an empty root skips the root-local
// grammar search entry.
func NewApp(cfg *Config, root string) *App {
	if cfg == nil {
		cfg = &Config{}
	}
	reg := treesitter.NewRegistry()
	reg.SetLoader(treesitter.NewDynamicLoader(GrammarSearchPaths(cfg, root)...))
	return &App{
		Config:    cfg,
		Registry:  reg,
		Extractor: treesitter.NewExtractor(reg),
	}
}

// GrammarSearchPaths resolves the dynamic grammar lookup order: config
// paths first, then $SYMQ_GRAMMAR_DIR, the root-local .symq/grammars, and
// finally the per-user ~/.symq/grammars.
func GrammarSearchPaths(cfg *Config, root string) []string {
	var paths []string
	if cfg != nil {
		paths = append(paths, cfg.GrammarPaths...)
	}
	if env := os.Getenv("SYMQ_GRAMMAR_DIR"); env != "" {
		paths = append(paths, env)
	}
	if root != "" {
		paths = append(paths, NewPaths(root).GrammarsDir)
	}
	if global := treesitter.GlobalGrammarDir(); global != "" {
		paths = append(paths, global)
	}
	return paths
}

// ScanOptions fills config defaults into flag-provided options. Config
// excludes append to the flag excludes; jobs and chunk size apply only
// when the flags left them zero.
func (a *App) ScanOptions(opts ports.ScanOptions) ports.ScanOptions {
	if len(a.Config.Exclude) > 0 {
		merged := make([]string, 0, len(opts.Exclude)+len(a.Config.Exclude))
		merged = append(merged, opts.Exclude...)
		merged = append(merged, a.Config.Exclude...)
		opts.Exclude = merged
	}
	if opts.Jobs == 0 {
		opts.Jobs = a.Config.Jobs
	}
	if opts.MaxChunkSize == 0 {
		opts.MaxChunkSize = a.Config.ChunkSize
	}
	return opts
}

// ExtractOptions fills the config chunk-size default for single-file
// commands.
func (a *App) ExtractOptions(opts ports.ExtractOptions) ports.ExtractOptions {
	if opts.MaxChunkSize == 0 {
		opts.MaxChunkSize = a.Config.ChunkSize
	}
	return opts
}

// OpenStore opens the symbol cache for root, creating .symq/ if needed.
func (a *App) OpenStore(root string) (ports.SymbolStore, error) {
	p := NewPaths(root)
	if err := p.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create %s: %w", p.Root, err)
	}
	return bolt.NewStore(p.DB)
}

// Scan runs a directory scan. With useCache the bolt store under
// <root>/.symq/ fingerprints unchanged files so only changed ones reparse.
func (a *App) Scan(root string, opts ports.ScanOptions, useCache bool) (*ports.ScanResult, error) {
	opts = a.ScanOptions(opts)
	if !useCache {
		return scan.New(a.Extractor).Scan(root, opts)
	}
	store, err := a.OpenStore(root)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return scan.NewCached(a.Extractor, store).Scan(root, opts)
}

// FindHit is one cache entry whose symbol name matched a find pattern.
type FindHit struct {
	Path      string
	Name      string
	Kind      ports.SymbolKind
	StartLine int
	EndLine   int
}

// String renders a hit as path:name[start-end] kind.
func (h FindHit) String() string {
	return fmt.Sprintf("%s:%s[%d-%d] %s", h.Path, h.Name, h.StartLine, h.EndLine, h.Kind)
}

// Find matches symbol names in root's cache against the patterns with
// case-insensitive substring matching. Find never parses sources; the
// cache must already exist.
func (a *App) Find(root string, patterns []string) ([]FindHit, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	p := NewPaths(absRoot)
	if _, err := os.Stat(p.DB); err != nil {
		return nil, fmt.Errorf("no symbol cache at %s", p.DB)
	}
	store, err := bolt.NewStore(p.DB)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	matcher := ahocorasick.NewNameMatcher(patterns)
	records, err := store.AllRecords(absRoot)
	if err != nil {
		return nil, err
	}
	var hits []FindHit
	for rel, rec := range records {
		for _, sym := range rec.Symbols {
			if matcher.Matches(sym.Name) {
				hits = append(hits, FindHit{
					Path:      rel,
					Name:      sym.Name,
					Kind:      sym.Kind,
					StartLine: sym.StartLine,
					EndLine:   sym.EndLine,
				})
			}
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Path != hits[j].Path {
			return hits[i].Path < hits[j].Path
		}
		if hits[i].StartLine != hits[j].StartLine {
			return hits[i].StartLine < hits[j].StartLine
		}
		return hits[i].Name < hits[j].Name
	})
	return hits, nil
}

// Service is a running watch or serve session: an initial cached scan, a
// filesystem watcher refreshing single files, and in serve mode an HTTP
// server over the live index.
type Service struct {
	Root   string
	Index  *web.Index
	Server *web.Server

	scanner  *scan.Scanner
	store    ports.SymbolStore
	watcher  ports.Watcher
	opts     ports.ScanOptions
	gi       *ignore.GitIgnore
	done     chan struct{}
	stopOnce sync.Once
}

// Watch starts a watch session: an initial cached scan, then incremental
// refreshes as files change. interval > 0 adds a periodic full rescan as
// a safety net for missed events.
func (a *App) Watch(root string, opts ports.ScanOptions, interval time.Duration) (*Service, error) {
	return a.startService(root, opts, interval, "", false)
}

// Serve starts a watch session plus the HTTP API. An empty addr picks the
// root-derived default address.
func (a *App) Serve(root, addr string, opts ports.ScanOptions, interval time.Duration) (*Service, error) {
	return a.startService(root, opts, interval, addr, true)
}

func (a *App) startService(root string, opts ports.ScanOptions, interval time.Duration, addr string, serve bool) (*Service, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	opts = a.ScanOptions(opts)
	// The index serves the lean shape; content never belongs in it.
	opts.IncludeContent = false

	store, err := a.OpenStore(absRoot)
	if err != nil {
		return nil, err
	}
	scanner := scan.NewCached(a.Extractor, store)

	result, err := scanner.Scan(absRoot, opts)
	if err != nil {
		store.Close()
		return nil, err
	}
	log.Info().
		Str("root", absRoot).
		Int("files", len(result.Results)).
		Int("errors", len(result.Errors)).
		Msg("app: initial scan complete")

	ix := web.NewIndex(absRoot)
	ix.Update(result)

	svc := &Service{
		Root:    absRoot,
		Index:   ix,
		scanner: scanner,
		store:   store,
		opts:    opts,
		done:    make(chan struct{}),
	}
	if opts.UseGitignore {
		if gi, gerr := ignore.CompileIgnoreFile(filepath.Join(absRoot, ".gitignore")); gerr == nil {
			svc.gi = gi
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := w.Watch(absRoot, svc.refresh); err != nil {
		_ = w.Stop()
		store.Close()
		return nil, err
	}
	svc.watcher = w

	if interval > 0 {
		go svc.rescanLoop(interval)
	}

	if serve {
		srv := web.NewServer(ix, a.Extractor.Languages())
		if addr == "" {
			addr = web.DefaultAddr(absRoot)
		}
		if err := srv.Start(addr); err != nil {
			svc.Stop()
			return nil, err
		}
		svc.Server = srv
		log.Info().Str("url", srv.URL()).Msg("app: serving")
	}
	return svc, nil
}

// Stop tears the session down: HTTP first so no handler races a closing
// store, then the watcher and the rescan loop, then the store.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if s.Server != nil {
			s.Server.Stop()
		}
		if s.watcher != nil {
			_ = s.watcher.Stop()
		}
		close(s.done)
		_ = s.store.Close()
	})
}

// refresh re-extracts one changed path and applies the outcome to the
// store and index. Deleted paths drop their entries, including children
// when a whole directory went away.
func (s *Service) refresh(absPath string) {
	rel, err := filepath.Rel(s.Root, absPath)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || strings.HasPrefix(rel, "../") {
		return
	}

	info, err := os.Stat(absPath)
	if err != nil {
		s.dropPath(rel)
		return
	}
	if !info.Mode().IsRegular() {
		return
	}
	if !scan.Included(rel, s.opts.Include, s.opts.Exclude) {
		return
	}
	if s.gi != nil && s.gi.MatchesPath(rel) {
		return
	}
	maxSize := s.opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = scan.DefaultMaxFileSize
	}
	if info.Size() > maxSize {
		_ = s.store.DeleteFile(s.Root, rel)
		s.Index.SetFileError(rel, "file too large")
		return
	}

	fr, err := s.scanner.ExtractFile(absPath, rel, s.opts)
	if err != nil {
		_ = s.store.DeleteFile(s.Root, rel)
		s.Index.SetFileError(rel, scan.ErrorMessage(err))
		log.Debug().Str("file", rel).Str("reason", scan.ErrorMessage(err)).Msg("app: refresh failed")
		return
	}
	rec := &ports.FileRecord{
		Size:     info.Size(),
		MTimeNS:  info.ModTime().UnixNano(),
		Language: fr.Language,
		Symbols:  fr.Symbols,
	}
	_ = s.store.SaveFile(s.Root, rel, rec)
	s.Index.UpdateFile(rel, fr)
	log.Info().
		Str("file", rel).
		Str("language", fr.Language).
		Int("symbols", len(fr.Symbols)).
		Msg("app: refreshed")
}

// dropPath removes rel and anything under rel/ from the store and index.
// A deleted directory reports only its own removal, not its children's.
func (s *Service) dropPath(rel string) {
	_ = s.store.DeleteFile(s.Root, rel)
	s.Index.RemoveFile(rel)

	prefix := rel + "/"
	if files, err := s.store.Files(s.Root); err == nil {
		for _, f := range files {
			if strings.HasPrefix(f, prefix) {
				_ = s.store.DeleteFile(s.Root, f)
			}
		}
	}
	snap := s.Index.Snapshot()
	for _, f := range snap.Paths() {
		if strings.HasPrefix(f, prefix) {
			s.Index.RemoveFile(f)
		}
	}
	for _, f := range snap.ErrorPaths() {
		if strings.HasPrefix(f, prefix) {
			s.Index.RemoveFile(f)
		}
	}
	log.Info().Str("path", rel).Msg("app: removed")
}

// rescanLoop periodically re-runs the full cached scan and swaps the
// index wholesale.
func (s *Service) rescanLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			result, err := s.scanner.Scan(s.Root, s.opts)
			if err != nil {
				log.Warn().Err(err).Msg("app: rescan failed")
				continue
			}
			s.Index.Update(result)
			log.Debug().Int("files", len(result.Results)).Msg("app: rescan complete")
		}
	}
}
