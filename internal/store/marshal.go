package store

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stufflog/internal/journal"
)

// document is the on-disk shape of one storage unit.
//
// Entries are a sequence, not a map keyed by title: YAML maps do not preserve
// order reliably across tools, and insertion order must survive a load/save
// round-trip.
type document struct {
	Name    string        `yaml:"name"`
	Entries []entryRecord `yaml:"entries"`
}

// entryRecord is one persisted entry. Required fields are pointers so that
// "absent" is distinguishable from a zero value during validation.
type entryRecord struct {
	Title    *string        `yaml:"title"`
	Datetime *journal.Stamp `yaml:"datetime"`
	Rating   *int           `yaml:"rating"`
	Comment  *string        `yaml:"comment,omitempty"`
}

// decodeDocument parses a storage unit with strict field validation
// (unknown fields are rejected, which catches hand-edit typos like
// "commnet:"). Record-level validation reports the first offending record
// by index, and by title where one is available.
func decodeDocument(path string, data []byte) (*document, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, journal.NewCorruptStore(path, fmt.Sprintf("parse: %v", err))
	}

	seen := make(map[string]bool, len(doc.Entries))
	for i, rec := range doc.Entries {
		if rec.Title == nil || journal.NormalizeTitle(*rec.Title) == "" {
			return nil, journal.NewCorruptStore(path, fmt.Sprintf("entry %d: missing title", i))
		}
		title := journal.NormalizeTitle(*rec.Title)
		if rec.Rating == nil {
			return nil, journal.NewCorruptStore(path, fmt.Sprintf("entry %d (%q): missing rating", i, title))
		}
		if rec.Datetime == nil {
			return nil, journal.NewCorruptStore(path, fmt.Sprintf("entry %d (%q): missing datetime", i, title))
		}
		if seen[title] {
			return nil, journal.NewCorruptStore(path, fmt.Sprintf("entry %d: duplicate title %q", i, title))
		}
		seen[title] = true
	}

	return &doc, nil
}

// encodeDocument serializes a storage unit. Output is stable: field order
// follows the struct, entry order is insertion order.
func encodeDocument(doc *document) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode storage unit: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode storage unit: %w", err)
	}
	return buf.Bytes(), nil
}

// toEntries converts validated records into domain entries.
// Assumes decodeDocument has already run.
func (d *document) toEntries() []journal.Entry {
	entries := make([]journal.Entry, 0, len(d.Entries))
	for _, rec := range d.Entries {
		entries = append(entries, journal.Entry{
			Title:   journal.NormalizeTitle(*rec.Title),
			At:      *rec.Datetime,
			Rating:  *rec.Rating,
			Comment: rec.Comment,
		})
	}
	return entries
}

// fromEntries builds the persistable document for a category.
func fromEntries(name string, entries []journal.Entry) *document {
	records := make([]entryRecord, 0, len(entries))
	for i := range entries {
		e := entries[i]
		records = append(records, entryRecord{
			Title:    &e.Title,
			Datetime: &e.At,
			Rating:   &e.Rating,
			Comment:  e.Comment,
		})
	}
	return &document{Name: name, Entries: records}
}
