// Package resources stores the resource collection as a single JSON array file.
package resources

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

// ErrExists is returned when a resource with the same URL is already stored.
var ErrExists = errors.New("already exists")

// Store is the JSON file backed resource collection.
//
// Writes go through Update, which holds an in-process mutex and an advisory
// file lock, then replaces the file with a rename. The lock file lives in the
// system temp directory so nothing but the JSON file lands in the content tree.
type Store struct {
	path     string
	lockPath string
	mu       sync.Mutex
}

// NewStore creates a store for the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path, lockPath: lockPathFor(path)}
}

// lockPathFor names the lock file after the absolute store path, so every
// process working on the same file shares one lock.
func lockPathFor(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(os.TempDir(), "bm-resources-"+hex.EncodeToString(sum[:8])+".lock")
}

// Path returns the JSON file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole collection. A missing file is an empty collection.
func (s *Store) Load() ([]domain.Resource, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Resource{}, nil
		}
		return nil, fmt.Errorf("failed to read resources file: %w", err)
	}
	return Decode(data)
}

// Update loads the collection, hands it to fn and saves the result when fn
// reports a change. fn runs while the store is locked. The parent directory
// is only created when something is written.
func (s *Store) Update(fn func(current []domain.Resource) (next []domain.Resource, changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl := flock.New(s.lockPath)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("failed to lock resources: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	current, err := s.Load()
	if err != nil {
		return err
	}

	next, changed, err := fn(current)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create resources directory: %w", err)
	}
	return s.save(next)
}

// save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a partial file.
func (s *Store) save(resources []domain.Resource) error {
	data, err := Encode(resources)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write resources: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync resources: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod resources: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace resources file: %w", err)
	}
	return nil
}
