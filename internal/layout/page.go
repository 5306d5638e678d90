package layout

import "strings"

// PageSize is the paper format of the printed resume
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "LETTER"
)

const mmPerInch = 25.4

// ParsePageSize accepts a page size name in any case ("a4", "Letter")
func ParsePageSize(s string) (PageSize, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PageA4):
		return PageA4, true
	case string(PageLetter):
		return PageLetter, true
	}
	return "", false
}

// Dimensions is a physical page size in its native unit ("mm" or "in")
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// Dimensions maps the page size to its physical dimensions: A4 is 210x297mm, LETTER is 8.5x11in.
// Unknown sizes map to A4.
func (p PageSize) Dimensions() Dimensions {
	if p == PageLetter {
		return Dimensions{Width: 8.5, Height: 11, Unit: "in"}
	}
	return Dimensions{Width: 210, Height: 297, Unit: "mm"}
}

// Millimeters returns width and height in millimeters
func (d Dimensions) Millimeters() (float64, float64) {
	if d.Unit == "in" {
		return d.Width * mmPerInch, d.Height * mmPerInch
	}
	return d.Width, d.Height
}

// Inches returns width and height in inches
func (d Dimensions) Inches() (float64, float64) {
	if d.Unit == "in" {
		return d.Width, d.Height
	}
	return d.Width / mmPerInch, d.Height / mmPerInch
}

// PxToMM converts CSS pixels (96 per inch) to millimeters
func PxToMM(px float64) float64 {
	return px * mmPerInch / 96
}
