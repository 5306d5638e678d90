// Package filter derives the tag-filtered, selection-aware view of the catalog.
package filter

import (
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
)

// TagSet is the set of active tag filters. The zero value is an empty set.
// Like selection state it is never modified in place.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet builds a set from tags, ignoring empty strings
func NewTagSet(tags ...string) TagSet {
	s := TagSet{tags: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		if tag != "" {
			s.tags[tag] = struct{}{}
		}
	}
	return s
}

// Toggle returns a copy with tag added, or removed when already present
func (s TagSet) Toggle(tag string) TagSet {
	out := NewTagSet(s.Sorted()...)
	if _, ok := out.tags[tag]; ok {
		delete(out.tags, tag)
	} else if tag != "" {
		out.tags[tag] = struct{}{}
	}
	return out
}

// Has reports whether tag is active
func (s TagSet) Has(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// Empty reports whether no tag is active
func (s TagSet) Empty() bool {
	return len(s.tags) == 0
}

// Len returns the number of active tags
func (s TagSet) Len() int {
	return len(s.tags)
}

// Sorted returns the active tags in lexical order
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s.tags))
	for tag := range s.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// AllTags returns the distinct tags across the catalog, sorted
func AllTags(catalog types.Catalog) []string {
	seen := make(map[string]struct{})
	for _, section := range catalog.Sections {
		for _, point := range section.Points {
			for _, tag := range point.Tags {
				seen[tag] = struct{}{}
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Visible reports whether a point passes the tag filter.
// With no active tags every point is visible; otherwise the point needs at least one active tag.
func Visible(point types.Point, tags TagSet) bool {
	if tags.Empty() {
		return true
	}
	for _, tag := range point.Tags {
		if tags.Has(tag) {
			return true
		}
	}
	return false
}
