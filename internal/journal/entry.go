// Package journal defines the journalling domain model: entries, their
// timestamps, partial field updates, and the error taxonomy shared by the
// store and the operations layered on top of it.
package journal

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry is one journal record.
//
// Title is the identity: within a category no two entries share one
// (case-sensitive, exact match over the NFC normal form). Rating is an
// arbitrary integer; the 1-5 scale is a documentation convention the store
// does not enforce. A nil Comment means "no comment", which is distinct from
// an entry whose comment is the empty string.
type Entry struct {
	Title   string
	At      Stamp
	Rating  int
	Comment *string
}

// NewEntry validates and constructs an Entry.
//
// The title is whitespace-trimmed and NFC-normalized so that uniqueness
// checks compare a single normal form. An empty or whitespace-only title is
// rejected with an INVALID_ENTRY error.
func NewEntry(title string, rating int, comment *string, at Stamp) (Entry, error) {
	title = NormalizeTitle(title)
	if title == "" {
		return Entry{}, NewInvalidEntry("title", "must not be empty or whitespace-only")
	}
	return Entry{Title: title, At: at, Rating: rating, Comment: comment}, nil
}

// NormalizeTitle trims whitespace and applies NFC normalization, producing
// the canonical form used for uniqueness comparison and storage.
func NormalizeTitle(title string) string {
	return norm.NFC.String(strings.TrimSpace(title))
}

// Less defines the display/query order: ascending by instant, ties broken by
// title. The persisted order is insertion order and is not affected.
func (e Entry) Less(other Entry) bool {
	if !e.At.Equal(other.At) {
		return e.At.Before(other.At)
	}
	return e.Title < other.Title
}

// FieldUpdates is a partial update for one entry. Each slot is optional; a
// nil slot leaves the prior value untouched. Comment is a double pointer so
// that "clear the comment" (outer non-nil, inner nil) is expressible and
// distinct from "leave it alone" (outer nil).
type FieldUpdates struct {
	Title   *string
	Rating  *int
	Comment **string
	At      *Stamp
}

// IsZero reports whether the update changes nothing.
func (u FieldUpdates) IsZero() bool {
	return u.Title == nil && u.Rating == nil && u.Comment == nil && u.At == nil
}

// Apply returns a copy of e with the populated slots applied. The new title,
// if any, is validated the same way as at construction.
func (u FieldUpdates) Apply(e Entry) (Entry, error) {
	if u.Title != nil {
		title := NormalizeTitle(*u.Title)
		if title == "" {
			return Entry{}, NewInvalidEntry("title", "must not be empty or whitespace-only")
		}
		e.Title = title
	}
	if u.Rating != nil {
		e.Rating = *u.Rating
	}
	if u.Comment != nil {
		e.Comment = *u.Comment
	}
	if u.At != nil {
		e.At = *u.At
	}
	return e, nil
}
