// Package links stores bookmarked links as one front matter document per
// link, named after the slug of the link title.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

var (
	// ErrExists is returned when the target document is already on disk.
	ErrExists = errors.New("already exists")
	// ErrNoStore is returned when the links directory does not exist.
	ErrNoStore = errors.New("no links directory")
)

// Store is a directory of link documents.
type Store struct {
	dir string
	ext string
}

// NewStore creates a store rooted at dir, using ext (with its leading dot)
// for document names.
func NewStore(dir, ext string) *Store {
	return &Store{dir: dir, ext: ext}
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// FileName derives the document name of a link from its title, falling back
// to the URL host when the title has no usable characters.
func (s *Store) FileName(link domain.Link) (string, error) {
	slug := domain.Slugify(link.Title)
	if slug == "" {
		if u, err := url.Parse(link.URL); err == nil {
			slug = domain.Slugify(u.Hostname())
		}
	}
	if slug == "" {
		return "", fmt.Errorf("cannot derive a file name from title %q", link.Title)
	}
	return slug + s.ext, nil
}

// Create writes a new document for link. The returned link carries its file
// name, also when the error is ErrExists.
func (s *Store) Create(link domain.Link) (domain.Link, error) {
	name, err := s.FileName(link)
	if err != nil {
		return link, err
	}
	link.File = name

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return link, fmt.Errorf("failed to create links directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return link, fmt.Errorf("%s %w", name, ErrExists)
		}
		return link, fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := f.Write(Encode(link)); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return link, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return link, fmt.Errorf("failed to close %s: %w", name, err)
	}
	return link, nil
}

// Exists reports whether the store directory is present.
func (s *Store) Exists() (bool, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat links directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", s.dir)
	}
	return true, nil
}

// List reads every document of the store, sorted by file name. A missing
// directory yields no links. Links whose title cannot be read are listed
// under their file name.
func (s *Store) List() ([]domain.Link, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Link{}, nil
		}
		return nil, fmt.Errorf("failed to read links directory: %w", err)
	}

	links := make([]domain.Link, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		link := Decode(content)
		link.File = e.Name()
		if link.Title == "" {
			link.Title = e.Name()
		}
		links = append(links, link)
	}

	sort.Slice(links, func(i, j int) bool { return links[i].File < links[j].File })
	return links, nil
}

// Matches reports whether target selects link for removal: the exact file
// name, the slug (file name without extension), or the exact URL.
func (s *Store) Matches(link domain.Link, target string) bool {
	if strings.HasSuffix(target, s.ext) && link.File == target {
		return true
	}
	if link.File == target+s.ext {
		return true
	}
	return link.URL == target
}

// Delete removes the document with the given file name.
func (s *Store) Delete(name string) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
