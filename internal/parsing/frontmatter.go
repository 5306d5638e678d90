// Package parsing converts raw resume content documents into typed sections.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Delimiter is the line that opens and closes a front matter block
const Delimiter = "---"

const bom = "\uFEFF"

// Split is the result of separating a raw document into front matter and body
type Split struct {
	// FrontMatter holds the lines between the two delimiters (nil when absent)
	FrontMatter []string
	// Body holds every line after the closing delimiter, or the whole text without front matter
	Body []string
	// BodyStart is the zero-based line number of the first body line in the raw text
	BodyStart int
	// HasFrontMatter is true when a complete front matter block was found
	HasFrontMatter bool
	// Unclosed is true when the text opens a front matter block that is never closed
	Unclosed bool
}

// Lines splits raw text into lines, dropping a leading BOM and trailing carriage returns
func Lines(raw string) []string {
	raw = strings.TrimPrefix(raw, bom)
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// IsDelimiter reports whether a line is a front matter delimiter.
// Only a trailing carriage return is dropped; surrounding spaces make it an ordinary line.
func IsDelimiter(line string) bool {
	return strings.TrimSuffix(line, "\r") == Delimiter
}

// SplitFrontMatter separates front matter from body.
// Front matter exists only when the first line is a delimiter and a second delimiter line follows.
func SplitFrontMatter(raw string) Split {
	lines := Lines(raw)
	if len(lines) == 0 || !IsDelimiter(lines[0]) {
		return Split{Body: lines}
	}

	for i := 1; i < len(lines); i++ {
		if IsDelimiter(lines[i]) {
			return Split{
				FrontMatter:    lines[1:i],
				Body:           lines[i+1:],
				BodyStart:      i + 1,
				HasFrontMatter: true,
			}
		}
	}

	return Split{Body: lines, Unclosed: true}
}

// ParseFrontMatterLine splits a "key: value" line at its first colon.
// Values wrapped in double quotes are unwrapped. ok is false for lines without a colon or key.
func ParseFrontMatterLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx == -1 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(line[idx+1:])
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// ParseFrontMatter builds metadata from front matter lines; the last duplicate key wins
func ParseFrontMatter(lines []string) types.Metadata {
	meta := make(types.Metadata)
	for _, line := range lines {
		if key, value, ok := ParseFrontMatterLine(line); ok {
			meta[key] = value
		}
	}
	return meta
}
