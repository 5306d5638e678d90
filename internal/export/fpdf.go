package export

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Font sizes in points, matching the HTML preview
const (
	nameSize    = 22.0
	groupSize   = 12.0
	headingSize = 11.0
	bodySize    = 10.0
)

const (
	fontFamily = "Helvetica"
	mmPerPoint = 25.4 / 72
	lineHeight = 1.375
	// px below the contact header
	headerGap = 24.0
	// px between groups
	groupGap = 16.0
)

// FPDF draws the document directly into a PDF without a browser
type FPDF struct {
	Timeout time.Duration
}

// Export lays the document out page by page
func (f *FPDF) Export(ctx context.Context, doc types.Document) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, f.Timeout)
	defer cancel()

	w := newPDFWriter(doc)
	for _, group := range doc.Groups {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Backend: BackendFPDF, Message: "export cancelled", Cause: err}
		}
		w.group(group)
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, &Error{Backend: BackendFPDF, Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	s       layout.Settings
	width   float64
	started bool
}

func newPDFWriter(doc types.Document) *pdfWriter {
	pageW, pageH := layout.Dimensions{Width: doc.Page.Width, Height: doc.Page.Height, Unit: doc.Page.Unit}.Millimeters()
	s := doc.Layout.Clamp()

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(s.PaddingLeftRight, s.PaddingTopBottom, s.PaddingLeftRight)
	pdf.SetAutoPageBreak(true, s.PaddingTopBottom)
	pdf.SetTitle(doc.Contact.Name, true)
	pdf.AddPage()

	w := &pdfWriter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		s:     s,
		width: pageW - 2*s.PaddingLeftRight,
	}
	w.header(doc.Contact)
	return w
}

func lineMM(size float64) float64 {
	return size * mmPerPoint * lineHeight
}

func (w *pdfWriter) header(c types.Contact) {
	items := c.Items()
	if c.Name == "" && len(items) == 0 {
		return
	}
	if c.Name != "" {
		w.pdf.SetFont(fontFamily, "B", nameSize)
		w.pdf.CellFormat(w.width, lineMM(nameSize), w.tr(c.Name), "", 1, "C", false, 0, "")
	}
	if len(items) > 0 {
		w.pdf.SetFont(fontFamily, "", bodySize)
		w.pdf.CellFormat(w.width, lineMM(bodySize), w.tr(strings.Join(items, "  •  ")), "", 1, "C", false, 0, "")
	}
	w.pdf.Ln(layout.PxToMM(headerGap))
}

func (w *pdfWriter) group(g types.Group) {
	if w.started {
		w.pdf.Ln(layout.PxToMM(groupGap))
	}
	w.started = true

	w.pdf.SetFont(fontFamily, "B", groupSize)
	w.pdf.CellFormat(w.width, lineMM(groupSize), w.tr(strings.ToUpper(g.Title)), "", 1, "L", false, 0, "")
	y := w.pdf.GetY()
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetLineWidth(0.5)
	w.pdf.Line(left, y, left+w.width, y)
	w.pdf.Ln(layout.PxToMM(w.s.GapSectionToSub))

	for i, entry := range g.Entries {
		if i > 0 {
			gap := w.s.GapSubsections
			if g.Category == types.CategorySkills {
				gap = w.s.GapPoints
			}
			w.pdf.Ln(layout.PxToMM(gap))
		}
		if g.Category == types.CategorySkills {
			w.skills(entry)
			continue
		}
		w.entry(entry)
	}
}

func (w *pdfWriter) entry(e types.Entry) {
	h := rendering.Heading(e)
	left, _, _, _ := w.pdf.GetMargins()
	y := w.pdf.GetY()
	lh := lineMM(headingSize)

	w.pdf.SetFont(fontFamily, "B", headingSize)
	w.pdf.Write(lh, w.tr(h.Title))
	if h.Subtitle != "" {
		if e.Category == types.CategoryEducation {
			w.pdf.SetFont(fontFamily, "I", headingSize)
			w.pdf.Write(lh, w.tr(", "+h.Subtitle))
		} else {
			w.pdf.SetFont(fontFamily, "", headingSize)
			w.pdf.Write(lh, w.tr(" | "+h.Subtitle))
		}
	}

	if meta := strings.TrimSpace(h.Location + "  " + h.Dates); meta != "" {
		w.pdf.SetFont(fontFamily, "", bodySize)
		w.pdf.SetXY(left, y)
		w.pdf.CellFormat(w.width, lh, w.tr(meta), "", 0, "R", false, 0, "")
	}
	w.pdf.Ln(lh)

	if h.Note != "" {
		w.pdf.SetFont(fontFamily, "", bodySize)
		w.pdf.CellFormat(w.width, lineMM(bodySize), w.tr(h.Note), "", 1, "L", false, 0, "")
	}

	w.pdf.SetFont(fontFamily, "", bodySize)
	indent := layout.PxToMM(18)
	for i, p := range e.Points {
		if i > 0 {
			w.pdf.Ln(layout.PxToMM(w.s.GapPoints))
		}
		w.pdf.SetX(left + indent/2)
		w.pdf.CellFormat(indent/2, lineMM(bodySize), w.tr("•"), "", 0, "L", false, 0, "")
		w.pdf.MultiCell(w.width-indent, lineMM(bodySize), w.tr(p.Text), "", "L", false)
	}
}

func (w *pdfWriter) skills(e types.Entry) {
	lh := lineMM(bodySize)
	for i, line := range e.Skills {
		if i > 0 {
			w.pdf.Ln(layout.PxToMM(w.s.GapPoints))
		}
		if line.Label != "" {
			w.pdf.SetFont(fontFamily, "B", bodySize)
			w.pdf.Write(lh, w.tr(line.Label))
		}
		w.pdf.SetFont(fontFamily, "", bodySize)
		w.pdf.Write(lh, w.tr(line.Text))
		w.pdf.Ln(lh)
	}
}
