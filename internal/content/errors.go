// Package content loads raw resume documents from disk and aggregates them into the catalog.
package content

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// MalformedSourceError is returned for a document that cannot be read or decoded as text.
// It affects that one document only; the rest of the catalog still loads.
type MalformedSourceError struct {
	Name     string
	Category types.Category
	Message  string
	Cause    error
}

func (e *MalformedSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed source %s/%s: %s: %v", e.Category, e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed source %s/%s: %s", e.Category, e.Name, e.Message)
}

func (e *MalformedSourceError) Unwrap() error {
	return e.Cause
}

// DuplicateSectionError is returned when two documents resolve to the same section id
type DuplicateSectionError struct {
	ID       string
	Category types.Category
	Name     string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate section id %q from %s/%s", e.ID, e.Category, e.Name)
}
