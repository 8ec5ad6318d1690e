// Package ports defines the interfaces (contracts) that adapters must implement,
// plus the value types that cross those boundaries. Domain logic depends only
// on this package, never on concrete implementations.
package ports

import "sort"

// SymbolKind is the normalized, language-independent classification of an
// extracted symbol.
type SymbolKind string

const (
	KindFunction SymbolKind = "function"
	KindClass    SymbolKind = "class"
	KindMethod   SymbolKind = "method"
	KindOther    SymbolKind = "other"
)

// Symbol is one extracted function/class/method. Lines are 1-based, columns
// 0-based. Field order matters: it is the serialized schema.
//
// The chunk fields are populated only when content extraction splits an
// oversized symbol; ChunkIndex is a pointer so index 0 still serializes.
type Symbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	StartLine int        `json:"start_line"`
	StartCol  int        `json:"start_col"`
	EndLine   int        `json:"end_line"`
	EndCol    int        `json:"end_col"`
	Signature string     `json:"signature"`
	Docstring string     `json:"docstring,omitempty"`
	Content   string     `json:"content,omitempty"`

	ChunkIndex   *int   `json:"chunk_index,omitempty"`
	ChunkCount   int    `json:"chunk_count,omitempty"`
	ParentSymbol string `json:"parent_symbol,omitempty"`
	Overflow     bool   `json:"overflow,omitempty"`
}

// Capture is one named match from a structural query. Captures are ordered by
// match order, then capture index within the match.
type Capture struct {
	PatternIndex int    `json:"pattern_index"`
	CaptureName  string `json:"capture_name"`
	NodeKind     string `json:"node_kind"`
	StartLine    int    `json:"start_line"`
	StartCol     int    `json:"start_col"`
	EndLine      int    `json:"end_line"`
	EndCol       int    `json:"end_col"`
	Text         string `json:"text"`
}

// FileResult holds the extraction output for one scanned file.
type FileResult struct {
	Language string   `json:"language"`
	Symbols  []Symbol `json:"symbols"`
}

// ScanResult maps relative, slash-separated file paths to their extraction
// output. Every included file appears in exactly one of Results or Errors.
// Go's JSON encoder sorts map keys, so serialization is deterministic.
type ScanResult struct {
	Results map[string]FileResult `json:"results"`
	Errors  map[string]string     `json:"errors"`
}

// NewScanResult returns an empty result with both maps allocated.
func NewScanResult() *ScanResult {
	return &ScanResult{
		Results: make(map[string]FileResult),
		Errors:  make(map[string]string),
	}
}

// Paths returns the result file paths in lexicographic order.
func (r *ScanResult) Paths() []string {
	paths := make([]string, 0, len(r.Results))
	for p := range r.Results {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ErrorPaths returns the failed file paths in lexicographic order.
func (r *ScanResult) ErrorPaths() []string {
	paths := make([]string, 0, len(r.Errors))
	for p := range r.Errors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ExtractOptions controls single-file symbol extraction.
type ExtractOptions struct {
	Language       string // explicit language override; empty means detect from path
	IncludeContent bool   // populate Symbol.Content with the verbatim source slice
	MaxChunkSize   int    // when >0 and content is included, split oversized content
	ForceText      bool   // parse even when the content looks binary
}

// ScanOptions controls directory aggregation.
type ScanOptions struct {
	Include        []string // include globs; empty means all files
	Exclude        []string // exclude globs, additive to the built-in skip set
	UseGitignore   bool     // honor .gitignore at the scan root
	IncludeContent bool
	MaxChunkSize   int
	Jobs           int   // parallel workers; <=0 means runtime.NumCPU
	ForceText      bool  // parse files even when they look binary
	MaxFileSize    int64 // bytes; 0 means the default cap
}
