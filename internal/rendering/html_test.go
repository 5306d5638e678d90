package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderAndParse(t *testing.T, doc types.Document) *goquery.Document {
	t.Helper()
	out, err := RenderHTML(doc)
	require.NoError(t, err)
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return parsed
}

func TestRenderHTML_Structure(t *testing.T) {
	page := renderAndParse(t, testDocument(t))

	assert.Equal(t, 1, page.Find("#resume-preview-container").Length())
	assert.Equal(t, "Jane Doe", page.Find(".contact h1").Text())
	assert.Contains(t, page.Find(".contact-items").Text(), "jane@example.com")

	var headings []string
	page.Find(".resume-section h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	assert.Equal(t, []string{"Experience", "Projects", "Education", "Technical Skills"}, headings)
}

func TestRenderHTML_EntriesAndPoints(t *testing.T) {
	page := renderAndParse(t, testDocument(t))

	exp := page.Find(`.entry[data-id="acme (exp)"]`)
	require.Equal(t, 1, exp.Length())
	assert.Contains(t, exp.Find(".title").Text(), "Engineer")
	assert.Contains(t, exp.Find(".subtitle").Text(), "Acme")
	assert.Contains(t, exp.Find(".meta").Text(), "2020 – 2023")
	assert.Equal(t, 2, exp.Find("li").Length())
	assert.Equal(t, "Built API & CLI", exp.Find(`li[data-id="acme (exp)-p0"]`).Text())

	edu := page.Find(`.entry[data-id="uni (edu)"]`)
	assert.Equal(t, "GPA: 3.9", edu.Find(".note").Text())
	assert.Equal(t, 0, edu.Find("ul").Length())
}

func TestRenderHTML_SkillLabelIsBold(t *testing.T) {
	page := renderAndParse(t, testDocument(t))

	line := page.Find(`.skill-line[data-id="langs (skl)-p0"]`)
	require.Equal(t, 1, line.Length())
	assert.Equal(t, "Languages:", line.Find(".label").Text())
	assert.Equal(t, "Languages: Go, Python", line.Text())
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	doc := testDocument(t)
	doc.Groups[0].Entries[0].Points[0].Text = "<script>alert(1)</script>"

	out, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTML_OmitsEmptyHeader(t *testing.T) {
	doc := testDocument(t)
	doc.Contact = types.Contact{}

	page := renderAndParse(t, doc)
	assert.Equal(t, 0, page.Find(".contact h1").Length())
	assert.Equal(t, 0, page.Find(".contact-items").Length())
}

func TestPageCSS(t *testing.T) {
	doc := testDocument(t)
	css := PageCSS(doc)
	assert.Contains(t, css, "@page { size: 210mm 297mm; margin: 0; }")
	assert.Contains(t, css, "padding: 12mm 12mm")
	assert.Contains(t, css, "gap: 4px")
	assert.Contains(t, css, "gap: 14px")
	assert.Contains(t, css, "margin: 0 0 10px")

	doc.Layout = doc.Layout.WithPageSize(layout.PageLetter)
	doc.Page = types.Page{Size: layout.PageLetter, Width: 8.5, Height: 11, Unit: "in"}
	assert.Contains(t, PageCSS(doc), "@page { size: 8.5in 11in; margin: 0; }")
}
