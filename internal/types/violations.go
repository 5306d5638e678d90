// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation represents a single problem found in a source document
type Violation struct {
	// Source is "<category dir>/<name>.md", empty for catalog-wide findings
	Source   string `json:"source,omitempty"`
	Line     int    `json:"line,omitempty"` // 1-based line in the raw document, 0 when unknown
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Violations represents a collection of problems
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation is an error
func (v Violations) HasErrors() bool {
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of violations with the given severity
func (v Violations) Count(severity string) int {
	n := 0
	for _, violation := range v.Violations {
		if violation.Severity == severity {
			n++
		}
	}
	return n
}
