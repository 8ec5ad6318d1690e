package ports

// Extractor turns source files into normalized symbol lists and runs
// structural queries. The concrete implementation (tree-sitter) lives in
// internal/adapters/treesitter.
type Extractor interface {
	// FileSymbols reads and parses one file, returning its symbols in source
	// order. Fails with DetectionError, RegistryError, BinaryFileError or
	// ParseError; no partial output.
	FileSymbols(path string, opts ExtractOptions) ([]Symbol, error)

	// SourceSymbols parses an in-memory buffer as the given language.
	// The path is used only for error reporting.
	SourceSymbols(path string, source []byte, language string, opts ExtractOptions) ([]Symbol, error)

	// Query compiles pattern and runs it against the parsed file. Malformed
	// patterns fail with QueryError before the file is parsed.
	Query(path, pattern, language string) ([]Capture, error)

	// Detect resolves the language for a path. An explicit non-empty override
	// wins unconditionally when known.
	Detect(path, override string) (string, error)

	// Languages returns all registered language identifiers, sorted.
	Languages() []string
}
