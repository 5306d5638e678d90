package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/filter"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func testCatalog() types.Catalog {
	return types.Catalog{Sections: []types.Section{
		{
			ID:       "acme (exp)",
			Category: types.CategoryExperience,
			Metadata: types.Metadata{types.MetaCompany: "Acme", types.MetaDesignation: "Engineer"},
			Points: []types.Point{
				{ID: "acme (exp)-p0", Text: "Built API", Tags: []string{"Go"}},
				{ID: "acme (exp)-p1", Text: "Ran ML", Tags: []string{"Python"}},
			},
		},
		{
			ID:       "langs (skl)",
			Category: types.CategorySkills,
			Metadata: types.Metadata{types.MetaCategory: "Languages"},
			Points:   []types.Point{{ID: "langs (skl)-p0", Text: "Languages: Go, SQL", Tags: []string{}}},
		},
	}}
}

func TestPrintView(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	catalog := testCatalog()
	sel := selection.Initialize(catalog).Toggle("acme (exp)-p1")
	view := filter.DeriveView(catalog, filter.NewTagSet(), sel)

	p.PrintView(view, sel)
	output := buf.String()

	assert.Contains(t, output, "EXPERIENCE: Acme | Engineer  (acme (exp))")
	assert.Contains(t, output, "[x] acme (exp)-p0  Built API [Go]")
	assert.Contains(t, output, "[ ] acme (exp)-p1  Ran ML [Python]")
	assert.Contains(t, output, "[x] langs (skl)-p0-skill-0  Go")
	assert.Contains(t, output, "[x] langs (skl)-p0-skill-1  SQL")
	assert.Contains(t, output, "2 active points")
}

func TestPrintView_FilteredSection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	catalog := testCatalog()
	sel := selection.Initialize(catalog)
	view := filter.DeriveView(catalog, filter.NewTagSet("Rust"), sel)

	p.PrintView(view, sel)
	output := buf.String()

	assert.Contains(t, output, "Filtering by: Rust")
	assert.Contains(t, output, "(no points match the filter, 2 hidden)")
	assert.Contains(t, output, "0 active points")
}

func TestPrintTags(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTags([]string{"Go", "Python"}, filter.NewTagSet("Go"))
	output := buf.String()

	assert.Contains(t, output, "TAGS (2, 1 active)")
	assert.Contains(t, output, "[x] Go")
	assert.Contains(t, output, "[ ] Python")

	buf.Reset()
	p.PrintTags(nil, filter.NewTagSet())
	assert.Contains(t, buf.String(), "(no tags)")
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLayout(layout.Default())
	output := buf.String()

	assert.Contains(t, output, "A4 (210 x 297 mm)")
	assert.Contains(t, output, "12 mm")
	assert.Contains(t, output, "14 px")
}

func TestPrintViolations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(nil)
	assert.Contains(t, buf.String(), "NO PROBLEMS FOUND")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{Source: "experience/acme.md", Line: 3, Rule: "empty_bullet", Severity: types.SeverityWarning, Message: "bullet has no text"},
		{Rule: "tag_variant", Severity: types.SeverityWarning, Message: `tags "Go", "golang"`},
		{Source: "projects/bad.md", Rule: "malformed_source", Severity: types.SeverityError, Message: "not UTF-8"},
	}})
	output := buf.String()

	assert.Contains(t, output, "Found 3 problems (1 errors)")
	assert.Contains(t, output, "⚠ empty_bullet  experience/acme.md:3")
	assert.Contains(t, output, "tag_variant  (all sources)")
	assert.Contains(t, output, "✗ malformed_source  projects/bad.md")
}

func TestPrintViolations_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var list []types.Violation
	for i := 0; i < maxItemsToShow+5; i++ {
		list = append(list, types.Violation{Source: fmt.Sprintf("skills/s%d.md", i), Rule: "empty_bullet", Severity: types.SeverityWarning})
	}
	p.PrintViolations(&types.Violations{Violations: list})
	assert.Contains(t, buf.String(), "... and 5 more")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
