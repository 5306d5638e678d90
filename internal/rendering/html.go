package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"heading": Heading}).
		ParseFS(templateFS, "templates/resume.html.tmpl"),
)

type htmlData struct {
	Doc types.Document
	CSS template.CSS
}

// RenderHTML renders the document as a standalone printable HTML page
func RenderHTML(doc types.Document) (string, error) {
	var out strings.Builder
	if err := htmlTemplate.Execute(&out, htmlData{Doc: doc, CSS: template.CSS(PageCSS(doc))}); err != nil {
		return "", &TemplateError{
			Message: "failed to execute HTML template",
			Cause:   err,
		}
	}
	return out.String(), nil
}

// PageCSS returns the stylesheet of the printed page: page box, paddings in mm and gaps in px
func PageCSS(doc types.Document) string {
	s := doc.Layout
	unit := doc.Page.Unit
	width := num(doc.Page.Width) + unit
	height := num(doc.Page.Height) + unit

	var b strings.Builder
	fmt.Fprintf(&b, "@page { size: %s %s; margin: 0; }\n", width, height)
	b.WriteString("* { box-sizing: border-box; }\n")
	b.WriteString("html, body { margin: 0; padding: 0; background: #fff; }\n")
	fmt.Fprintf(&b, ".page { width: %s; min-height: %s; padding: %smm %smm; font-size: 11pt; line-height: 1.375; color: #000; font-family: 'Helvetica Neue', Arial, sans-serif; }\n",
		width, height, num(s.PaddingTopBottom), num(s.PaddingLeftRight))
	b.WriteString(".contact { text-align: center; margin-bottom: 24px; }\n")
	b.WriteString(".contact h1 { font-size: 22pt; font-weight: 600; margin: 0 0 4px; letter-spacing: -0.01em; }\n")
	b.WriteString(".contact-items { font-size: 10pt; margin: 0; display: flex; justify-content: center; flex-wrap: wrap; gap: 8px; }\n")
	b.WriteString(".resume-section + .resume-section { margin-top: 16px; }\n")
	fmt.Fprintf(&b, ".resume-section h2 { font-size: 12pt; font-weight: 700; text-transform: uppercase; letter-spacing: 0.05em; border-bottom: 2px solid #000; padding-bottom: 2px; margin: 0 0 %spx; }\n", num(s.GapSectionToSub))
	fmt.Fprintf(&b, ".entries { display: flex; flex-direction: column; gap: %spx; }\n", num(s.GapSubsections))
	b.WriteString(".entry-heading { display: flex; justify-content: space-between; font-weight: 600; font-size: 11pt; margin-bottom: 4px; }\n")
	b.WriteString(".entry-heading .subtitle { font-weight: 400; }\n")
	b.WriteString(".entry-heading .meta { font-size: 10pt; font-weight: 500; }\n")
	b.WriteString(".entry-heading .location { margin-right: 8px; }\n")
	b.WriteString(".note { font-size: 10pt; margin-bottom: 4px; }\n")
	fmt.Fprintf(&b, "ul { list-style: disc; margin: 0; padding-left: 18px; font-size: 10pt; display: flex; flex-direction: column; gap: %spx; }\n", num(s.GapPoints))
	fmt.Fprintf(&b, ".skills { display: flex; flex-direction: column; gap: %spx; font-size: 10pt; }\n", num(s.GapPoints))
	b.WriteString(".skill-line .label { font-weight: 600; }\n")
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
