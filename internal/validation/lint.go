package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/content"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/types"
)

// Lint rule names
const (
	RuleMalformedSource       = "malformed_source"
	RuleUnclosedFrontMatter   = "unclosed_front_matter"
	RuleMalformedMetadataLine = "malformed_metadata_line"
	RuleUnknownMetadataKey    = "unknown_metadata_key"
	RuleUnterminatedTag       = "unterminated_tag_bracket"
	RuleEmptyTagBracket       = "empty_tag_bracket"
	RuleEmptyTagEntry         = "empty_tag_entry"
	RuleEmptyBullet           = "empty_bullet"
	RuleIgnoredListMarker     = "ignored_list_marker"
	RuleTagVariant            = "tag_variant"
)

// Report is the outcome of linting a set of sources
type Report struct {
	types.Violations
	// Documents is the number of documents inspected
	Documents int `json:"documents"`
}

// SourceName returns the display path of a document, e.g. "projects/tool.md"
func SourceName(category types.Category, name string) string {
	return category.Dir() + "/" + name + content.Extension
}

// LintSources inspects every document and reports the places where parsing silently
// drops or reinterprets content. Parsing itself is not changed.
func LintSources(sources content.Sources) Report {
	report := Report{Violations: types.Violations{Violations: []types.Violation{}}}
	var allTags []string

	for _, category := range types.Categories {
		for _, doc := range sources[category] {
			report.Documents++
			source := SourceName(category, doc.Name)
			if !utf8.Valid(doc.Raw) {
				report.add(source, 0, RuleMalformedSource, types.SeverityError, "document is not valid UTF-8 text and is skipped")
				continue
			}
			allTags = append(allTags, lintDocument(&report, source, category, string(doc.Raw))...)
		}
	}

	lintTagVariants(&report, allTags)
	return report
}

func (r *Report) add(source string, line int, rule, severity, message string) {
	r.Violations.Violations = append(r.Violations.Violations, types.Violation{
		Source:   source,
		Line:     line,
		Rule:     rule,
		Severity: severity,
		Message:  message,
	})
}

// lintDocument reports the findings of one document and returns the tags it carries
func lintDocument(r *Report, source string, category types.Category, raw string) []string {
	split := parsing.SplitFrontMatter(raw)
	if split.Unclosed {
		r.add(source, 1, RuleUnclosedFrontMatter, types.SeverityWarning,
			"front matter is never closed; the whole document is read as body and no metadata is kept")
	}

	if split.HasFrontMatter {
		recognized := make(map[string]bool)
		for _, key := range types.RecognizedKeys[category] {
			recognized[key] = true
		}
		for i, line := range split.FrontMatter {
			lineNo := i + 2
			if strings.TrimSpace(line) == "" {
				continue
			}
			key, _, ok := parsing.ParseFrontMatterLine(line)
			if !ok {
				r.add(source, lineNo, RuleMalformedMetadataLine, types.SeverityWarning,
					fmt.Sprintf("front matter line %q is not \"key: value\" and is ignored", strings.TrimSpace(line)))
				continue
			}
			if !recognized[key] {
				r.add(source, lineNo, RuleUnknownMetadataKey, types.SeverityWarning,
					fmt.Sprintf("key %q is not used by %s documents", key, category))
			}
		}
	}

	var tags []string
	for i, line := range split.Body {
		lineNo := split.BodyStart + i + 1
		if !parsing.IsBulletLine(line) {
			continue
		}
		text := parsing.BulletText(line)
		if text == "" {
			r.add(source, lineNo, RuleEmptyBullet, types.SeverityWarning, "bullet has no text and is skipped")
			continue
		}

		extracted := parsing.ExtractTags(text)
		switch extracted.Status {
		case parsing.Unterminated:
			r.add(source, lineNo, RuleUnterminatedTag, types.SeverityWarning,
				"tag bracket is never closed; the bullet keeps the bracket as text and has no tags")
		case parsing.EmptyGroup:
			r.add(source, lineNo, RuleEmptyTagBracket, types.SeverityWarning, "tag bracket holds no tags")
		case parsing.TagsOnly:
			r.add(source, lineNo, RuleEmptyBullet, types.SeverityWarning,
				"bullet holds only a tag bracket; it is kept as text without tags")
		case parsing.Tagged:
			if extracted.EmptyEntries > 0 {
				r.add(source, lineNo, RuleEmptyTagEntry, types.SeverityWarning,
					fmt.Sprintf("tag list has %d empty entries which are dropped", extracted.EmptyEntries))
			}
		}
		tags = append(tags, extracted.Tags...)
	}

	for _, line := range ignoredListItems(split.Body) {
		r.add(source, split.BodyStart+line, RuleIgnoredListMarker, types.SeverityWarning,
			"list item does not start with \"-\" and is not read as a bullet")
	}
	return tags
}

func lintTagVariants(r *Report, tags []string) {
	variants := parsing.TagVariants(tags)
	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		r.add("", 0, RuleTagVariant, types.SeverityWarning,
			fmt.Sprintf("tags %s are spellings of one tag and filter separately", strings.Join(quoteAll(variants[k]), ", ")))
	}
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
