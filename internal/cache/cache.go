// Package cache stores parsed pages on disk, zstd-compressed, keyed by a
// hash of the source document.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

// schema is mixed into every key so pages cached by an older layout of
// rustdoc.Page are never read back.
const schema = "page/v1"

// ErrMiss is returned by Load when no page is cached under the key.
var ErrMiss = errors.New("cache miss")

// Key returns the cache key of a source document.
func Key(src []byte) string {
	d := xxhash.New()
	d.WriteString(schema)
	d.Write([]byte{0})
	d.Write(src)
	return fmt.Sprintf("%016x", d.Sum64())
}

// Store is a directory of cached pages.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Default returns the store under the user cache directory.
func Default() *Store {
	return New(config.CacheDir())
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// path returns the sharded file path for a key: <dir>/<first2>/<rest>.json.zst
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key[:2], key[2:]+".json.zst")
}

// Save compresses and writes page under key, replacing any previous entry.
func (s *Store) Save(key string, page *rustdoc.Page) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	// Entries are renamed into place once complete.
	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w, err := zstd.NewWriter(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := json.NewEncoder(w).Encode(page); err != nil {
		w.Close()
		tmp.Close()
		return fmt.Errorf("encoding page: %w", err)
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Load reads the page cached under key. It returns ErrMiss when there is none.
func (s *Store) Load(key string) (*rustdoc.Page, error) {
	f, err := os.Open(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMiss, key)
	}
	if err != nil {
		return nil, fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	var page rustdoc.Page
	if err := json.NewDecoder(r).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding cached page %s: %w", key, err)
	}
	return &page, nil
}

// Has checks whether a page is cached under key.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Clear removes every cached page.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing %s: %w", s.dir, err)
	}
	return nil
}
