package parsing

import (
	"sort"
	"strings"
)

// tagNormalizations maps common tag spelling variants to canonical names
var tagNormalizations = map[string]string{
	"go":         "Go",
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"psql":       "PostgreSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
}

// CanonicalTag returns the canonical spelling of a tag.
// Known variants map to their canonical name; anything else compares case-insensitively,
// so "python" and "Python" share the key "python".
func CanonicalTag(tag string) string {
	normalized := strings.TrimSpace(tag)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := tagNormalizations[lower]; ok {
		return canonical
	}
	return lower
}

// TagVariants groups tags that share a canonical form but are spelled differently.
// The result maps the canonical form to the sorted distinct spellings; tags with a
// single spelling are omitted.
func TagVariants(tags []string) map[string][]string {
	spellings := make(map[string]map[string]struct{})
	for _, tag := range tags {
		canonical := CanonicalTag(tag)
		if canonical == "" {
			continue
		}
		if spellings[canonical] == nil {
			spellings[canonical] = make(map[string]struct{})
		}
		spellings[canonical][tag] = struct{}{}
	}

	variants := make(map[string][]string)
	for canonical, set := range spellings {
		if len(set) < 2 {
			continue
		}
		list := make([]string, 0, len(set))
		for s := range set {
			list = append(list, s)
		}
		sort.Strings(list)
		variants[canonical] = list
	}
	return variants
}
