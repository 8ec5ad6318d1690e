// Package bolt implements ports.SymbolStore using bbolt (embedded B+ tree).
// Each scan root gets its own top-level bucket; within it, file records are
// keyed by relative path with JSON values. Writes are transactional, so a
// crash mid-write cannot corrupt previously committed records.
package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/marek/symq/internal/ports"
)

// Store implements ports.SymbolStore backed by bbolt.
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveFile persists the record for relPath under root, replacing any prior
// record.
func (s *Store) SaveFile(root, relPath string, rec *ports.FileRecord) error {
	if rec == nil {
		return fmt.Errorf("nil record")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(root))
		if err != nil {
			return err
		}
		return b.Put([]byte(relPath), data)
	})
}

// LoadFile retrieves the record for relPath. Returns nil, nil when no record
// exists.
func (s *Store) LoadFile(root, relPath string) (*ports.FileRecord, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(root))
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx).
		if v := b.Get([]byte(relPath)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var rec ports.FileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", relPath, err)
	}
	return &rec, nil
}

// DeleteFile removes the record for relPath. Idempotent: deleting a missing
// record (or a missing root) is not an error.
func (s *Store) DeleteFile(root, relPath string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(root))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(relPath))
	})
}

// Files lists the relative paths with records under root. bbolt iterates keys
// in byte order, so the result is already sorted.
func (s *Store) Files(root string) ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(root))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllRecords loads every record under root, keyed by relative path.
func (s *Store) AllRecords(root string) (map[string]*ports.FileRecord, error) {
	out := make(map[string]*ports.FileRecord)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(root))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec ports.FileRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal record %s: %w", k, err)
			}
			out[string(k)] = &rec
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
