// Package app orchestrates journal operations over category stores.
//
// Every mutating operation follows the same transactional shape:
// load the storage unit, mutate the in-memory collection, persist. A failure
// during the in-memory step leaves the on-disk state untouched; persistence
// itself is atomic at the store layer.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/stufflog/internal/journal"
	"github.com/roach88/stufflog/internal/query"
	"github.com/roach88/stufflog/internal/store"
)

// Clock supplies the current instant for entries added without an explicit
// timestamp. Injected so tests can pin time.
type Clock func() time.Time

// Hook observes mutating operations. The dispatcher may install one to run
// external side effects (e.g. syncing a working copy) around mutations; the
// core itself has no awareness of what a hook does and works without one.
type Hook interface {
	// Before runs prior to loading the storage unit. An error aborts the
	// operation before anything is read or written.
	Before(op string) error

	// After runs once the mutation has been persisted. Errors are returned
	// to the caller but the completed save is not undone.
	After(op string) error
}

// NopHook is the default Hook: it does nothing.
type NopHook struct{}

func (NopHook) Before(string) error { return nil }
func (NopHook) After(string) error  { return nil }

// Operation names passed to hooks.
const (
	OpInit   = "init"
	OpAdd    = "add"
	OpEdit   = "edit"
	OpDelete = "delete"
)

// App exposes the journal operations the CLI dispatcher consumes. Paths are
// threaded explicitly through every call; the App holds no per-category
// state and reads no environment.
type App struct {
	clock Clock
	hook  Hook
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the default wall clock.
func WithClock(c Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithHook installs a hook around mutating operations.
func WithHook(h Hook) Option {
	return func(a *App) { a.hook = h }
}

// New creates an App. The default clock is the wall clock truncated to whole
// seconds so stamps round-trip cleanly through RFC 3339.
func New(opts ...Option) *App {
	a := &App{
		clock: func() time.Time { return time.Now().Truncate(time.Second) },
		hook:  NopHook{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InitCategory creates an empty category at path.
func (a *App) InitCategory(path, name string) error {
	if err := a.hook.Before(OpInit); err != nil {
		return fmt.Errorf("init hook: %w", err)
	}
	if _, err := store.Create(path, name); err != nil {
		return err
	}
	return a.hook.After(OpInit)
}

// AddEntry constructs a new entry and appends it to the category at path.
//
// When at is nil the entry is stamped with the current instant. A duplicate
// title fails with DUPLICATE_TITLE carrying a hint to use edit instead; the
// storage unit is left unchanged.
func (a *App) AddEntry(path, title string, rating int, comment *string, at *journal.Stamp) (journal.Entry, error) {
	if err := a.hook.Before(OpAdd); err != nil {
		return journal.Entry{}, fmt.Errorf("add hook: %w", err)
	}

	s, err := store.Load(path)
	if err != nil {
		return journal.Entry{}, err
	}

	stamp := journal.NewStamp(a.clock())
	if at != nil {
		stamp = *at
	}

	entry, err := journal.NewEntry(title, rating, comment, stamp)
	if err != nil {
		return journal.Entry{}, err
	}

	if err := s.Insert(entry); err != nil {
		if dup, ok := asDuplicate(err); ok {
			dup.Detail = fmt.Sprintf("use 'stufflog edit %s %q' to update the existing entry", s.Name(), dup.Title)
			return journal.Entry{}, dup
		}
		return journal.Entry{}, err
	}

	if err := s.Save(path); err != nil {
		return journal.Entry{}, err
	}
	return entry, a.hook.After(OpAdd)
}

// EditEntry applies a partial field update to the entry with the given title.
func (a *App) EditEntry(path, title string, updates journal.FieldUpdates) (journal.Entry, error) {
	if err := a.hook.Before(OpEdit); err != nil {
		return journal.Entry{}, fmt.Errorf("edit hook: %w", err)
	}

	s, err := store.Load(path)
	if err != nil {
		return journal.Entry{}, err
	}

	updated, err := s.Replace(title, updates)
	if err != nil {
		return journal.Entry{}, err
	}

	if err := s.Save(path); err != nil {
		return journal.Entry{}, err
	}
	return updated, a.hook.After(OpEdit)
}

// DeleteEntry removes the entry with the given title.
func (a *App) DeleteEntry(path, title string) error {
	if err := a.hook.Before(OpDelete); err != nil {
		return fmt.Errorf("delete hook: %w", err)
	}

	s, err := store.Load(path)
	if err != nil {
		return err
	}

	if err := s.Remove(title); err != nil {
		return err
	}

	if err := s.Save(path); err != nil {
		return err
	}
	return a.hook.After(OpDelete)
}

// Query returns the entries at path matching the filter, sorted ascending by
// instant with title tie-breaks.
func (a *App) Query(path string, f query.Filter) ([]journal.Entry, error) {
	s, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	return query.Run(s.Entries(), f), nil
}

// Entries returns every entry at path in the query sort order.
func (a *App) Entries(path string) ([]journal.Entry, error) {
	return a.Query(path, query.Filter{})
}

func asDuplicate(err error) (*journal.Error, bool) {
	var je *journal.Error
	if errors.As(err, &je) && je.Code == journal.CodeDuplicateTitle {
		return je, true
	}
	return nil, false
}
