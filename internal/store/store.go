package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/stufflog/internal/journal"
)

// Extension is the storage unit file extension.
const Extension = ".yml"

// CategoryStore owns one category's persisted entry collection for the
// duration of an operation. It is loaded fresh per invocation and written
// back at most once; there is no cross-invocation cache.
//
// The store is the sole authority for title uniqueness: Insert and Replace
// enforce it, and Load rejects storage units that already violate it.
type CategoryStore struct {
	name    string
	entries []journal.Entry
}

// Load reads the storage unit at path.
//
// An absent file is CATEGORY_NOT_FOUND - a distinct condition from a category
// that exists and is empty. Parse failures and records missing required
// fields are CORRUPT_STORE identifying the offending record.
func Load(path string) (*CategoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, journal.NewCategoryNotFound(CategoryName(path))
		}
		return nil, journal.NewIOError(path, err)
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return nil, err
	}

	name := doc.Name
	if name == "" {
		name = CategoryName(path)
	}
	return &CategoryStore{name: name, entries: doc.toEntries()}, nil
}

// Create initializes an empty, validly-formed storage unit at path.
// Fails with CATEGORY_EXISTS if a unit is already there.
func Create(path, name string) (*CategoryStore, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, journal.NewCategoryExists(name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, journal.NewIOError(path, err)
	}

	s := &CategoryStore{name: name}
	if err := s.Save(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Save serializes the full collection back to path.
//
// The write is atomic from a reader's perspective: the document is written to
// a temporary file in the destination directory and renamed into place, so a
// failure mid-write leaves the previous valid unit untouched.
func (s *CategoryStore) Save(path string) error {
	data, err := encodeDocument(fromEntries(s.name, s.entries))
	if err != nil {
		return journal.NewIOError(path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return journal.NewIOError(path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return journal.NewIOError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return journal.NewIOError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return journal.NewIOError(path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return journal.NewIOError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return journal.NewIOError(path, err)
	}
	return nil
}

// Name returns the category name recorded in the storage unit.
func (s *CategoryStore) Name() string {
	return s.name
}

// Len returns the number of entries.
func (s *CategoryStore) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the collection in insertion order.
func (s *CategoryStore) Entries() []journal.Entry {
	out := make([]journal.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Find looks up an entry by exact (normalized) title.
func (s *CategoryStore) Find(title string) (journal.Entry, bool) {
	title = journal.NormalizeTitle(title)
	for _, e := range s.entries {
		if e.Title == title {
			return e, true
		}
	}
	return journal.Entry{}, false
}

// Insert appends an entry. Fails with DUPLICATE_TITLE if one with the same
// title already exists.
func (s *CategoryStore) Insert(e journal.Entry) error {
	if _, ok := s.Find(e.Title); ok {
		return journal.NewDuplicateTitle(e.Title)
	}
	s.entries = append(s.entries, e)
	return nil
}

// Replace applies a partial update to the entry with the given title,
// keeping its position in the collection.
//
// Fails with ENTRY_NOT_FOUND if no entry has that title, and with
// DUPLICATE_TITLE if a rename collides with a different existing entry.
// Renaming an entry to its own title is allowed.
func (s *CategoryStore) Replace(title string, updates journal.FieldUpdates) (journal.Entry, error) {
	title = journal.NormalizeTitle(title)
	idx := -1
	for i, e := range s.entries {
		if e.Title == title {
			idx = i
			break
		}
	}
	if idx < 0 {
		return journal.Entry{}, journal.NewEntryNotFound(title)
	}

	updated, err := updates.Apply(s.entries[idx])
	if err != nil {
		return journal.Entry{}, err
	}

	if updated.Title != title {
		if _, ok := s.Find(updated.Title); ok {
			return journal.Entry{}, journal.NewDuplicateTitle(updated.Title)
		}
	}

	s.entries[idx] = updated
	return updated, nil
}

// Remove deletes the entry with the given title.
// Fails with ENTRY_NOT_FOUND if no entry has that title.
func (s *CategoryStore) Remove(title string) error {
	title = journal.NormalizeTitle(title)
	for i, e := range s.entries {
		if e.Title == title {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return journal.NewEntryNotFound(title)
}

// CategoryName derives the category name from a storage unit path.
func CategoryName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Extension)
}

// PathFor returns the storage unit path for a category under root.
func PathFor(root, name string) string {
	return filepath.Join(root, name+Extension)
}

// ListCategories returns the names of all storage units under root, sorted.
// A missing root directory is an empty list, not an error.
func ListCategories(root string) ([]string, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, journal.NewIOError(root, fmt.Errorf("list categories: %w", err))
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(de.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}
