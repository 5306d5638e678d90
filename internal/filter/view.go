package filter

import (
	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/types"
)

// SectionView is one section after tag filtering.
// Section holds only the tag-visible points; a section without any is kept as an empty placeholder.
type SectionView struct {
	Section     types.Section `json:"section"`
	TotalPoints int           `json:"total_points"`
	Active      []types.Point `json:"active"`
}

// View is the filtered catalog in catalog order
type View struct {
	Sections []SectionView `json:"sections"`
	Tags     []string      `json:"tags"`
}

// Section returns the view of the section with the given id, or nil
func (v *View) Section(id string) *SectionView {
	for i := range v.Sections {
		if v.Sections[i].Section.ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

// ActiveCount returns the number of active points across the view
func (v View) ActiveCount() int {
	n := 0
	for _, s := range v.Sections {
		n += len(s.Active)
	}
	return n
}

// DeriveView computes the filtered view. It is pure: the catalog is deep-copied and
// equal inputs give equal views.
func DeriveView(catalog types.Catalog, tags TagSet, sel selection.State) View {
	view := View{Sections: make([]SectionView, 0, len(catalog.Sections)), Tags: tags.Sorted()}
	for _, section := range catalog.Sections {
		visible := section.Clone()
		visible.Points = make([]types.Point, 0, len(section.Points))
		for _, point := range section.Clone().Points {
			if Visible(point, tags) {
				visible.Points = append(visible.Points, point)
			}
		}

		view.Sections = append(view.Sections, SectionView{
			Section:     visible,
			TotalPoints: len(section.Points),
			Active:      ActivePoints(visible, sel),
		})
	}
	return view
}

// ActivePoints returns the points of an already tag-filtered section that are included.
// For skills sections the text of each point is rebuilt from its included tokens, and a point
// whose tokens are all excluded is dropped.
func ActivePoints(section types.Section, sel selection.State) []types.Point {
	active := make([]types.Point, 0, len(section.Points))
	for _, point := range section.Points {
		if !sel.Included(point.ID) {
			continue
		}
		out := types.Point{ID: point.ID, Text: point.Text, Tags: append([]string{}, point.Tags...)}
		if section.Category == types.CategorySkills {
			text, ok := rebuildSkillText(point, sel)
			if !ok {
				continue
			}
			out.Text = text
		}
		active = append(active, out)
	}
	return active
}
