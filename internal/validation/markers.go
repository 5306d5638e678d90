package validation

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// ignoredListItems walks the markdown AST of a document body and returns the 1-based
// body line of every list item whose marker is not "-" (starred, plus or ordered lists).
func ignoredListItems(body []string) []int {
	source := []byte(strings.Join(body, "\n"))
	doc := markdown.Parser().Parse(text.NewReader(source))

	seen := make(map[int]bool)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		list, ok := n.(*ast.List)
		if !ok || (list.Marker == '-' && !list.IsOrdered()) {
			return ast.WalkContinue, nil
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if line, ok := firstLine(item, source); ok {
				seen[line] = true
			}
		}
		return ast.WalkContinue, nil
	})

	lines := make([]int, 0, len(seen))
	for line := range seen {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// firstLine returns the 1-based line of the first text segment below n
func firstLine(n ast.Node, source []byte) (int, bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock && c.Lines().Len() > 0 {
			start := c.Lines().At(0).Start
			return bytes.Count(source[:start], []byte("\n")) + 1, true
		}
		if line, ok := firstLine(c, source); ok {
			return line, true
		}
	}
	return 0, false
}
