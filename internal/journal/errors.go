package journal

import (
	"errors"
	"fmt"
)

// Error represents a structured failure from the store or an operation.
//
// Every failure the core can produce carries a Code plus the identifier it
// concerns (category name, entry title, or file path) so the CLI layer can
// render a precise message without string matching.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Category is the affected category name, when known.
	Category string

	// Title is the affected entry title (for duplicate/not-found errors).
	Title string

	// Path is the affected storage unit path (for corrupt/IO errors).
	Path string

	// Detail contains additional context, e.g. the offending record index
	// in a corrupt storage unit or a validation reason.
	Detail string
}

// ErrorCode categorizes core errors.
type ErrorCode string

const (
	// CodeCategoryExists indicates init targeted an existing category.
	CodeCategoryExists ErrorCode = "CATEGORY_EXISTS"

	// CodeCategoryNotFound indicates the category's storage unit is absent.
	CodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"

	// CodeCorruptStore indicates the storage unit exists but fails to parse
	// or is missing required record fields.
	CodeCorruptStore ErrorCode = "CORRUPT_STORE"

	// CodeDuplicateTitle indicates an insert or rename collides with an
	// existing entry.
	CodeDuplicateTitle ErrorCode = "DUPLICATE_TITLE"

	// CodeEntryNotFound indicates an edit/delete target does not exist.
	CodeEntryNotFound ErrorCode = "ENTRY_NOT_FOUND"

	// CodeInvalidEntry indicates malformed entry construction input.
	CodeInvalidEntry ErrorCode = "INVALID_ENTRY"

	// CodeIO indicates an underlying read/write/rename failure.
	CodeIO ErrorCode = "IO_ERROR"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Title != "":
		return fmt.Sprintf("%s: %s (title=%q)", e.Code, e.Message, e.Title)
	case e.Category != "":
		return fmt.Sprintf("%s: %s (category=%q)", e.Code, e.Message, e.Category)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Returns the empty code if err is not a *journal.Error.
func CodeOf(err error) ErrorCode {
	var je *Error
	if errors.As(err, &je) {
		return je.Code
	}
	return ""
}

// IsCode reports whether err is a *journal.Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewCategoryExists creates an Error for init on an existing category.
func NewCategoryExists(name string) *Error {
	return &Error{
		Code:     CodeCategoryExists,
		Message:  "category already exists",
		Category: name,
	}
}

// NewCategoryNotFound creates an Error for a missing storage unit.
func NewCategoryNotFound(name string) *Error {
	return &Error{
		Code:     CodeCategoryNotFound,
		Message:  "no such category",
		Category: name,
	}
}

// NewCorruptStore creates an Error for an unparsable or invalid storage unit.
func NewCorruptStore(path, detail string) *Error {
	return &Error{
		Code:    CodeCorruptStore,
		Message: "storage unit is corrupt",
		Path:    path,
		Detail:  detail,
	}
}

// NewDuplicateTitle creates an Error for a title collision.
func NewDuplicateTitle(title string) *Error {
	return &Error{
		Code:    CodeDuplicateTitle,
		Message: "an entry with this title already exists",
		Title:   title,
	}
}

// NewEntryNotFound creates an Error for a missing entry.
func NewEntryNotFound(title string) *Error {
	return &Error{
		Code:    CodeEntryNotFound,
		Message: "no entry with this title",
		Title:   title,
	}
}

// NewInvalidEntry creates an Error for malformed construction input.
// Field names the offending field; reason explains the problem.
func NewInvalidEntry(field, reason string) *Error {
	return &Error{
		Code:    CodeInvalidEntry,
		Message: fmt.Sprintf("invalid %s", field),
		Detail:  reason,
	}
}

// NewIOError wraps an underlying filesystem failure.
func NewIOError(path string, err error) *Error {
	return &Error{
		Code:    CodeIO,
		Message: "storage I/O failed",
		Path:    path,
		Detail:  err.Error(),
	}
}
