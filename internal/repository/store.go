// Package repository persists marketplace collections as flat JSON
// document files, one file per collection. Every write replaces the whole
// collection; there is no record-level update or delete.
//
// In-process access is serialized with a mutex. Concurrent writers in
// other processes can still lose updates (last write wins) — known
// operational caveat of whole-file replacement.
package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection file names (without extension).
const (
	CollectionOffers      = "offers"
	CollectionBids        = "bids"
	CollectionMsmeProfile = "msme_profile"
	CollectionRfps        = "rfps"
	CollectionMsmes       = "msmes"
	CollectionUsers       = "users"
)

// Store provides collection reads and writes over a data directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore initializes a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// ReadCollection returns the raw bytes of a collection file. A missing
// file reads as nil with no error.
func (s *Store) ReadCollection(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	return data, nil
}

// WriteCollection replaces a collection file with the pretty-printed
// encoding of v. Non-ASCII text (₹ and friends) is written unescaped.
func (s *Store) WriteCollection(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encodeDocument(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	return nil
}

func encodeDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
