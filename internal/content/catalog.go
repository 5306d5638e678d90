package content

import (
	"errors"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/types"
)

// Document is one raw source file, keyed by its human filename (without extension)
type Document struct {
	Name string
	Raw  []byte
}

// Sources groups raw documents by category, each group in enumeration order
type Sources map[types.Category][]Document

// Count returns the number of documents across all groups
func (s Sources) Count() int {
	n := 0
	for _, docs := range s {
		n += len(docs)
	}
	return n
}

// SectionID returns the catalog id of a document: its name plus the category suffix
func SectionID(name string, category types.Category) string {
	return name + category.Suffix()
}

// LoadCatalog parses every document into one ordered catalog.
// Order is category order, then source order within a category. Documents that are not
// valid UTF-8 are skipped and reported; the returned error joins every such problem and the
// catalog still holds all good documents.
func LoadCatalog(sources Sources) (types.Catalog, error) {
	catalog := types.Catalog{Sections: make([]types.Section, 0, sources.Count())}
	seen := make(map[string]struct{})
	var errs []error

	for _, category := range types.Categories {
		for _, doc := range sources[category] {
			if !utf8.Valid(doc.Raw) {
				errs = append(errs, &MalformedSourceError{
					Name:     doc.Name,
					Category: category,
					Message:  "document is not valid UTF-8 text",
				})
				continue
			}

			id := SectionID(doc.Name, category)
			if _, dup := seen[id]; dup {
				errs = append(errs, &DuplicateSectionError{ID: id, Category: category, Name: doc.Name})
				continue
			}
			seen[id] = struct{}{}

			catalog.Sections = append(catalog.Sections, parsing.ParseDocument(id, category, string(doc.Raw)))
		}
	}

	return catalog, errors.Join(errs...)
}
