// Package query evaluates filter predicates against a category's entries.
//
// Filters compose with logical AND and both rating and date bounds are
// strict. A bare date bound normalizes to midnight UTC, so "after 2023-10-01"
// admits entries from that day with a time-of-day later than midnight and
// rejects an entry stamped exactly at midnight.
package query

import (
	"sort"

	"github.com/roach88/stufflog/internal/journal"
)

// Filter holds the optional predicates for one query. A nil slot imposes no
// constraint on that dimension.
type Filter struct {
	// GreaterThan keeps entries with rating strictly above this value.
	GreaterThan *int

	// LessThan keeps entries with rating strictly below this value.
	LessThan *int

	// After keeps entries stamped strictly later than this instant.
	After *journal.Stamp

	// Before keeps entries stamped strictly earlier than this instant.
	Before *journal.Stamp
}

// IsZero reports whether the filter imposes no constraints.
func (f Filter) IsZero() bool {
	return f.GreaterThan == nil && f.LessThan == nil && f.After == nil && f.Before == nil
}

// Matches reports whether e satisfies every supplied predicate.
func (f Filter) Matches(e journal.Entry) bool {
	if f.GreaterThan != nil && e.Rating <= *f.GreaterThan {
		return false
	}
	if f.LessThan != nil && e.Rating >= *f.LessThan {
		return false
	}
	if f.After != nil && !e.At.After(*f.After) {
		return false
	}
	if f.Before != nil && !e.At.Before(*f.Before) {
		return false
	}
	return true
}

// Run evaluates the filter over entries with a linear scan and returns the
// matches sorted ascending by instant, ties broken by title. The input slice
// is not modified; an empty result is not an error.
func Run(entries []journal.Entry, f Filter) []journal.Entry {
	matched := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Less(matched[j])
	})
	return matched
}
