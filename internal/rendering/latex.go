package rendering

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/types"
)

// LaTeX templates use << >> delimiters so TeX braces need no escaping
const (
	latexLeftDelim  = "<<"
	latexRightDelim = ">>"
)

// pxToPt converts CSS pixels to TeX points
const pxToPt = 0.75

// LaTeXData is the data passed to the LaTeX template. Every text field is already escaped.
type LaTeXData struct {
	Name            string
	Contact         string
	PaperWidth      string
	PaperHeight     string
	MarginTopBottom string
	MarginLeftRight string
	GapPoints       string
	GapSectionToSub string
	GapSubsections  string
	Groups          []LaTeXGroup
}

// LaTeXGroup is one section of the LaTeX document
type LaTeXGroup struct {
	Title   string
	Entries []LaTeXEntry
}

// LaTeXEntry is one entry with its escaped heading, points and skill lines
type LaTeXEntry struct {
	Title    string
	Subtitle string
	Meta     string
	Note     string
	Points   []string
	Skills   []types.SkillLine
}

// RenderLaTeX renders the document as LaTeX source.
// An empty templatePath uses the built-in template.
func RenderLaTeX(doc types.Document, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, BuildLaTeXData(doc)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file, or the built-in one when path is empty
func parseTemplate(templatePath string) (*template.Template, error) {
	var content []byte
	var err error
	if templatePath == "" {
		content, err = templateFS.ReadFile("templates/resume.tex.tmpl")
		if err != nil {
			return nil, &TemplateError{Message: "failed to read built-in template", Cause: err}
		}
	} else {
		content, err = os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", templatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
	}

	tmpl, err := template.New("resume").
		Delims(latexLeftDelim, latexRightDelim).
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// BuildLaTeXData escapes the document into template data
func BuildLaTeXData(doc types.Document) LaTeXData {
	s := doc.Layout
	unit := doc.Page.Unit

	items := doc.Contact.Items()
	for i, item := range items {
		items[i] = EscapeLaTeX(item)
	}

	data := LaTeXData{
		Name:            EscapeLaTeX(doc.Contact.Name),
		Contact:         strings.Join(items, ` \textbullet{} `),
		PaperWidth:      num(doc.Page.Width) + unit,
		PaperHeight:     num(doc.Page.Height) + unit,
		MarginTopBottom: num(s.PaddingTopBottom) + "mm",
		MarginLeftRight: num(s.PaddingLeftRight) + "mm",
		GapPoints:       num(s.GapPoints*pxToPt) + "pt",
		GapSectionToSub: num(s.GapSectionToSub*pxToPt) + "pt",
		GapSubsections:  num(s.GapSubsections*pxToPt) + "pt",
		Groups:          make([]LaTeXGroup, 0, len(doc.Groups)),
	}

	for _, g := range doc.Groups {
		group := LaTeXGroup{Title: EscapeLaTeX(g.Title), Entries: make([]LaTeXEntry, 0, len(g.Entries))}
		for _, e := range g.Entries {
			group.Entries = append(group.Entries, latexEntry(e))
		}
		data.Groups = append(data.Groups, group)
	}
	return data
}

func latexEntry(e types.Entry) LaTeXEntry {
	if e.Category == types.CategorySkills {
		skills := make([]types.SkillLine, 0, len(e.Skills))
		for _, line := range e.Skills {
			skills = append(skills, types.SkillLine{ID: line.ID, Label: EscapeLaTeX(line.Label), Text: EscapeLaTeX(line.Text)})
		}
		return LaTeXEntry{Skills: skills}
	}

	h := Heading(e)
	entry := LaTeXEntry{
		Title:  EscapeLaTeX(h.Title),
		Note:   EscapeLaTeX(h.Note),
		Points: make([]string, 0, len(e.Points)),
	}
	if h.Subtitle != "" {
		if e.Category == types.CategoryEducation {
			entry.Subtitle = `, \textit{` + EscapeLaTeX(h.Subtitle) + `}`
		} else {
			entry.Subtitle = ` | ` + EscapeLaTeX(h.Subtitle)
		}
	}
	meta := strings.TrimSpace(strings.Join([]string{h.Location, h.Dates}, "  "))
	entry.Meta = strings.ReplaceAll(EscapeLaTeX(meta), "–", "--")
	for _, p := range e.Points {
		entry.Points = append(entry.Points, EscapeLaTeX(p.Text))
	}
	return entry
}
