package parsing

import (
	"regexp"
	"strings"
)

// trailingTags matches a bracket group at the very end of a bullet, e.g. "[Go, SQL]".
// The group may not contain brackets, so "a [b] c [d]" only captures "d".
var trailingTags = regexp.MustCompile(`\s*\[([^\[\]]*)\]$`)

// TagStatus describes what ExtractTags found at the end of a bullet
type TagStatus int

const (
	// NoTags means the text does not end with a bracket group
	NoTags TagStatus = iota
	// Tagged means a bracket group was found and removed
	Tagged
	// EmptyGroup means a bracket group was found but held no tag
	EmptyGroup
	// Unterminated means an opening bracket was never closed; the text is kept as is
	Unterminated
	// TagsOnly means the bracket group was the whole text; it is kept as plain text
	TagsOnly
)

// Extraction is the outcome of removing a trailing tag group from bullet text
type Extraction struct {
	Text         string
	Tags         []string
	Status       TagStatus
	EmptyEntries int
}

// ExtractTags removes a trailing "[a, b]" group from text and returns the tags it held.
// Malformed groups degrade to plain text with no tags.
func ExtractTags(text string) Extraction {
	loc := trailingTags.FindStringSubmatchIndex(text)
	if loc == nil {
		status := NoTags
		if open := strings.LastIndex(text, "["); open != -1 && !strings.Contains(text[open:], "]") {
			status = Unterminated
		}
		return Extraction{Text: text, Tags: []string{}, Status: status}
	}

	stripped := strings.TrimSpace(text[:loc[0]])
	if stripped == "" {
		return Extraction{Text: text, Tags: []string{}, Status: TagsOnly}
	}

	inner := text[loc[2]:loc[3]]
	tags, empty := splitTags(inner)
	status := Tagged
	if len(tags) == 0 {
		status = EmptyGroup
	}
	return Extraction{Text: stripped, Tags: tags, Status: status, EmptyEntries: empty}
}

// SplitTags splits a comma-separated tag list, trimming entries and dropping empty ones
func SplitTags(csv string) []string {
	tags, _ := splitTags(csv)
	return tags
}

func splitTags(csv string) ([]string, int) {
	tags := []string{}
	empty := 0
	for _, part := range strings.Split(csv, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			empty++
			continue
		}
		tags = append(tags, tag)
	}
	return tags, empty
}
