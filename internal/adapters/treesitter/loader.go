package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/rs/zerolog/log"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// grammarLibExt is the shared-library suffix for the current platform.
func grammarLibExt() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// DynamicLoader loads compiled tree-sitter grammars from shared libraries on
// disk. A grammar for language X lives at <dir>/X.so (or .dylib) in one of
// the search paths and exports the C symbol tree_sitter_X. Loaded handles
// are never released; dlclose during parsing is a crash waiting to happen.
type DynamicLoader struct {
	mu          sync.Mutex
	searchPaths []string
	loaded      map[string]*tree_sitter.Language
}

// NewDynamicLoader builds a loader over the given grammar directories,
// searched in order. Nonexistent directories are skipped at load time.
func NewDynamicLoader(paths ...string) *DynamicLoader {
	return &DynamicLoader{
		searchPaths: paths,
		loaded:      make(map[string]*tree_sitter.Language),
	}
}

// AddPath appends a grammar directory to the search list.
func (l *DynamicLoader) AddPath(dir string) {
	if dir == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchPaths = append(l.searchPaths, dir)
}

// SearchPaths returns a copy of the configured grammar directories.
func (l *DynamicLoader) SearchPaths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.searchPaths))
	copy(out, l.searchPaths)
	return out
}

// Load opens the grammar library for a language and resolves its language
// function. Results are cached for the life of the loader.
func (l *DynamicLoader) Load(name string) (*tree_sitter.Language, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lang, ok := l.loaded[name]; ok {
		return lang, nil
	}
	libPath := l.locate(name)
	if libPath == "" {
		return nil, fmt.Errorf("no grammar library for %q in %d search paths", name, len(l.searchPaths))
	}

	handle, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", libPath, err)
	}

	var langFn func() uintptr
	purego.RegisterLibFunc(&langFn, handle, "tree_sitter_"+name)
	ptr := langFn()
	if ptr == 0 {
		return nil, fmt.Errorf("tree_sitter_%s returned null", name)
	}
	lang := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))
	if lang == nil {
		return nil, fmt.Errorf("grammar %s: language construction failed", name)
	}

	l.loaded[name] = lang
	log.Debug().Str("language", name).Str("path", libPath).Msg("treesitter: loaded dynamic grammar")
	return lang, nil
}

// Installed reports whether a grammar library for the language exists in any
// search path.
func (l *DynamicLoader) Installed(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locate(name) != ""
}

// InstalledLanguages scans the search paths and lists every language with a
// grammar library on disk, sorted.
func (l *DynamicLoader) InstalledLanguages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ext := grammarLibExt()
	seen := make(map[string]bool)
	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// locate returns the first existing library path for a language. Caller
// holds the lock.
func (l *DynamicLoader) locate(name string) string {
	file := name + grammarLibExt()
	for _, dir := range l.searchPaths {
		p := filepath.Join(dir, file)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
