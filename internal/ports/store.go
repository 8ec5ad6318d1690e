package ports

// FileRecord is one cached extraction: the file fingerprint it was computed
// from plus the symbols found. A record is stale when size or mtime moved.
type FileRecord struct {
	Size     int64    `json:"size"`
	MTimeNS  int64    `json:"mtime_ns"`
	Language string   `json:"language"`
	Symbols  []Symbol `json:"symbols"`
}

// SymbolStore persists per-file extraction records, namespaced by scan root.
// The backing store (bbolt) serializes writes; concurrent reads are safe.
type SymbolStore interface {
	// SaveFile stores the record for relPath under root, overwriting any
	// prior record.
	SaveFile(root, relPath string, rec *FileRecord) error

	// LoadFile retrieves the record for relPath. Returns nil, nil when no
	// record exists.
	LoadFile(root, relPath string) (*FileRecord, error)

	// DeleteFile removes the record for relPath. Idempotent.
	DeleteFile(root, relPath string) error

	// Files lists the relative paths with records under root, sorted.
	Files(root string) ([]string, error)

	// AllRecords loads every record under root, keyed by relative path.
	AllRecords(root string) (map[string]*FileRecord, error)

	// Close releases the underlying database.
	Close() error
}
