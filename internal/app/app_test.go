package app

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stufflog/internal/journal"
	"github.com/roach88/stufflog/internal/query"
	"github.com/roach88/stufflog/internal/store"
	"github.com/roach88/stufflog/internal/testutil"
)

func fixedClock(s string) Clock {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return testutil.NewFixedClock(t).Now
}

func newTestApp(t *testing.T, opts ...Option) (*App, string) {
	t.Helper()
	if len(opts) == 0 {
		opts = []Option{WithClock(fixedClock("2023-10-05T14:30:00Z"))}
	}
	a := New(opts...)
	path := store.PathFor(t.TempDir(), "books")
	require.NoError(t, a.InitCategory(path, "books"))
	return a, path
}

func strptr(s string) *string { return &s }

// Scenario: init on fresh storage succeeds; a second init fails.
func TestApp_Init_ThenInitAgain(t *testing.T) {
	_, path := newTestApp(t)

	a := New()
	err := a.InitCategory(path, "books")
	require.Error(t, err)
	assert.True(t, journal.IsCode(err, journal.CodeCategoryExists))

	var je *journal.Error
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "books", je.Category)
}

// Scenario: a second add with the same title fails and the store keeps
// exactly one entry with the original rating.
func TestApp_Add_DuplicateTitle(t *testing.T) {
	a, path := newTestApp(t)

	_, err := a.AddEntry(path, "Dune", 5, strptr("Amazing sci-fi book"), nil)
	require.NoError(t, err)

	_, err = a.AddEntry(path, "Dune", 3, nil, nil)
	require.Error(t, err)
	assert.True(t, journal.IsCode(err, journal.CodeDuplicateTitle))

	var je *journal.Error
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "Dune", je.Title)
	assert.Contains(t, je.Detail, "edit", "the duplicate error suggests the edit operation")

	entries, err := a.Entries(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Rating)
}

// Scenario: greater-than is strict, so rating 4 does not match > 4.
func TestApp_Query_StrictGreaterThan(t *testing.T) {
	a, path := newTestApp(t)
	_, err := a.AddEntry(path, "Catcher in the Rye", 4, nil, nil)
	require.NoError(t, err)

	gt := 4
	got, err := a.Query(path, query.Filter{GreaterThan: &gt})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Scenario: query returns exactly the matching entries.
func TestApp_Query_Matching(t *testing.T) {
	a, path := newTestApp(t)
	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)
	_, err = a.AddEntry(path, "Catcher in the Rye", 3, nil, nil)
	require.NoError(t, err)

	gt := 4
	got, err := a.Query(path, query.Filter{GreaterThan: &gt})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

// Scenario: deleting a nonexistent entry fails and changes nothing.
func TestApp_Delete_Nonexistent(t *testing.T) {
	a, path := newTestApp(t)
	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = a.DeleteEntry(path, "Nonexistent")
	require.Error(t, err)
	assert.True(t, journal.IsCode(err, journal.CodeEntryNotFound))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed delete leaves the storage unit untouched")
}

// Scenario: edit changes only the given field and queries see the new value.
func TestApp_Edit_PartialThenQuery(t *testing.T) {
	a, path := newTestApp(t)
	_, err := a.AddEntry(path, "Dune", 5, strptr("Amazing sci-fi book"), nil)
	require.NoError(t, err)

	rating := 4
	updated, err := a.EditEntry(path, "Dune", journal.FieldUpdates{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Dune", updated.Title)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, "Amazing sci-fi book", *updated.Comment)

	gt := 4
	got, err := a.Query(path, query.Filter{GreaterThan: &gt})
	require.NoError(t, err)
	assert.Empty(t, got, "the edited rating no longer matches > 4")
}

func TestApp_Add_UsesClock(t *testing.T) {
	a, path := newTestApp(t, WithClock(fixedClock("2023-10-05T14:30:00Z")))

	e, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2023-10-05T14:30:00Z", e.At.String())
	assert.False(t, e.At.DateOnly)
}

func TestApp_Add_SuccessiveEntriesKeepClockOrder(t *testing.T) {
	clk := testutil.NewFixedClock(time.Date(2023, 10, 5, 14, 30, 0, 0, time.UTC))
	a := New(WithClock(clk.Now))
	path := store.PathFor(t.TempDir(), "books")
	require.NoError(t, a.InitCategory(path, "books"))

	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = a.AddEntry(path, "Hyperion", 3, nil, nil)
	require.NoError(t, err)

	entries, err := a.Entries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dune", entries[0].Title)
	assert.True(t, entries[0].At.Before(entries[1].At))
}

func TestApp_Add_ExplicitStamp(t *testing.T) {
	a, path := newTestApp(t)

	at, err := journal.ParseStamp("2023-10-01")
	require.NoError(t, err)
	e, err := a.AddEntry(path, "Dune", 5, nil, &at)
	require.NoError(t, err)
	assert.True(t, e.At.DateOnly)

	entries, err := a.Entries(path)
	require.NoError(t, err)
	assert.Equal(t, "2023-10-01", entries[0].At.String(), "supplied precision persists")
}

func TestApp_Add_InvalidTitleLeavesDiskUntouched(t *testing.T) {
	a, path := newTestApp(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = a.AddEntry(path, "   ", 5, nil, nil)
	require.Error(t, err)
	assert.True(t, journal.IsCode(err, journal.CodeInvalidEntry))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApp_Add_MissingCategory(t *testing.T) {
	a := New()
	path := store.PathFor(t.TempDir(), "ghosts")

	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.Error(t, err)
	assert.True(t, journal.IsCode(err, journal.CodeCategoryNotFound),
		"add never auto-creates a category")
}

func TestApp_Edit_RenameCollision(t *testing.T) {
	a, path := newTestApp(t)
	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)
	_, err = a.AddEntry(path, "Hyperion", 4, nil, nil)
	require.NoError(t, err)

	_, err = a.EditEntry(path, "Hyperion", journal.FieldUpdates{Title: strptr("Dune")})
	require.Error(t, err)
	assert.True(t, journal.IsCode(err, journal.CodeDuplicateTitle))

	entries, err := a.Entries(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "failed rename persists nothing")
}

// recordingHook captures hook invocations for assertions.
type recordingHook struct {
	calls     []string
	beforeErr error
	afterErr  error
}

func (h *recordingHook) Before(op string) error {
	h.calls = append(h.calls, "before:"+op)
	return h.beforeErr
}

func (h *recordingHook) After(op string) error {
	h.calls = append(h.calls, "after:"+op)
	return h.afterErr
}

func TestApp_Hook_WrapsMutations(t *testing.T) {
	hook := &recordingHook{}
	a, path := newTestApp(t, WithClock(fixedClock("2023-10-05T14:30:00Z")), WithHook(hook))

	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"before:init", "after:init", "before:add", "after:add"}, hook.calls)
}

func TestApp_Hook_QueriesDoNotFire(t *testing.T) {
	hook := &recordingHook{}
	a, path := newTestApp(t, WithClock(fixedClock("2023-10-05T14:30:00Z")), WithHook(hook))
	hook.calls = nil

	_, err := a.Query(path, query.Filter{})
	require.NoError(t, err)
	assert.Empty(t, hook.calls, "read-only operations bypass the hook")
}

func TestApp_Hook_BeforeErrorAborts(t *testing.T) {
	hook := &recordingHook{}
	a, path := newTestApp(t, WithClock(fixedClock("2023-10-05T14:30:00Z")), WithHook(hook))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	hook.beforeErr = errors.New("sync unavailable")
	_, err = a.AddEntry(path, "Dune", 5, nil, nil)
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "an aborted operation writes nothing")
}

func TestApp_Hook_AfterErrorKeepsSave(t *testing.T) {
	hook := &recordingHook{afterErr: errors.New("push failed")}
	a := New(WithClock(fixedClock("2023-10-05T14:30:00Z")), WithHook(hook))
	path := store.PathFor(t.TempDir(), "books")

	err := a.InitCategory(path, "books")
	require.Error(t, err, "the after-hook failure is surfaced")

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "the completed save is not undone")
}

func TestApp_Entries_SortedForDisplay(t *testing.T) {
	a, path := newTestApp(t)

	late, _ := journal.ParseStamp("2023-11-01T09:15:00Z")
	early, _ := journal.ParseStamp("2023-10-05T14:30:00Z")
	_, err := a.AddEntry(path, "Hyperion", 3, nil, &late)
	require.NoError(t, err)
	_, err = a.AddEntry(path, "Dune", 5, nil, &early)
	require.NoError(t, err)

	entries, err := a.Entries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dune", entries[0].Title)
	assert.Equal(t, "Hyperion", entries[1].Title)

	// The persisted order stays insertion order regardless of display order.
	s, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hyperion", s.Entries()[0].Title)
}

func TestApp_Uniqueness_AfterMutationSequence(t *testing.T) {
	a, path := newTestApp(t)

	_, err := a.AddEntry(path, "Dune", 5, nil, nil)
	require.NoError(t, err)
	_, err = a.AddEntry(path, "Hyperion", 4, nil, nil)
	require.NoError(t, err)
	_, err = a.EditEntry(path, "Hyperion", journal.FieldUpdates{Title: strptr("Endymion")})
	require.NoError(t, err)
	require.NoError(t, a.DeleteEntry(path, "Dune"))
	_, err = a.AddEntry(path, "Dune", 2, nil, nil)
	require.NoError(t, err)

	entries, err := a.Entries(path)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Title], "duplicate title %q after mutations", e.Title)
		seen[e.Title] = true
	}
	assert.Len(t, entries, 2)
}

func TestApp_DefaultClock_WholeSeconds(t *testing.T) {
	a := New()
	now := a.clock()
	assert.Zero(t, now.Nanosecond(), "default clock truncates to whole seconds")
}
