package rendering

import (
	"github.com/jonathan/resume-builder/internal/filter"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// GroupTitles are the printed headings of each category
var GroupTitles = map[types.Category]string{
	types.CategoryExperience: "Experience",
	types.CategoryProject:    "Projects",
	types.CategoryEducation:  "Education",
	types.CategorySkills:     "Technical Skills",
}

// BuildDocument projects a view onto the printed page.
// An entry is printed when it has active points; education entries without any source
// points are printed with their metadata alone. A group is printed when it has an entry.
func BuildDocument(view filter.View, settings layout.Settings, contact types.Contact) types.Document {
	settings = settings.Clamp()
	dims := settings.Dimensions()

	doc := types.Document{
		Contact: contact,
		Layout:  settings,
		Page: types.Page{
			Size:   settings.PageSize,
			Width:  dims.Width,
			Height: dims.Height,
			Unit:   dims.Unit,
		},
		Groups: []types.Group{},
	}

	for _, category := range types.Categories {
		group := types.Group{Category: category, Title: GroupTitles[category], Entries: []types.Entry{}}
		for _, sv := range view.Sections {
			if sv.Section.Category != category {
				continue
			}
			metadataOnly := category == types.CategoryEducation && sv.TotalPoints == 0
			if len(sv.Active) == 0 && !metadataOnly {
				continue
			}
			group.Entries = append(group.Entries, buildEntry(sv))
		}
		if len(group.Entries) > 0 {
			doc.Groups = append(doc.Groups, group)
		}
	}
	return doc
}

func buildEntry(sv filter.SectionView) types.Entry {
	entry := types.Entry{
		ID:       sv.Section.ID,
		Category: sv.Section.Category,
		Metadata: sv.Section.Metadata.Clone(),
		Points:   make([]types.Point, len(sv.Active)),
	}
	copy(entry.Points, sv.Active)

	if entry.Category == types.CategorySkills {
		entry.Skills = make([]types.SkillLine, 0, len(sv.Active))
		for _, p := range sv.Active {
			entry.Skills = append(entry.Skills, SplitSkillLine(p))
		}
	}
	return entry
}

// SplitSkillLine splits a skills point into its bold label and the rest, using the same
// label rule as the skill tokens
func SplitSkillLine(p types.Point) types.SkillLine {
	label, rest := filter.SplitSkillLabel(p.Text)
	return types.SkillLine{ID: p.ID, Label: label, Text: rest}
}

// EntryHeading is the heading line of a printed entry
type EntryHeading struct {
	// Title is the bold part: designation, project name or institution
	Title string
	// Subtitle follows the title: company, project url or degree
	Subtitle string
	Location string
	Dates    string
	// Note is an extra line under the heading (GPA for education)
	Note string
}

// Heading derives the heading of an entry from its metadata
func Heading(entry types.Entry) EntryHeading {
	meta := entry.Metadata
	switch entry.Category {
	case types.CategoryExperience:
		return EntryHeading{
			Title:    meta.Value(types.MetaDesignation),
			Subtitle: meta.Value(types.MetaCompany),
			Location: meta.Value(types.MetaLocation),
			Dates:    DateRange(meta.Value(types.MetaStartDate), meta.Value(types.MetaEndDate)),
		}
	case types.CategoryProject:
		return EntryHeading{
			Title:    meta.Value(types.MetaProjectName),
			Subtitle: meta.Value(types.MetaURL),
		}
	case types.CategoryEducation:
		h := EntryHeading{
			Title:    meta.Value(types.MetaInstitution),
			Subtitle: meta.Value(types.MetaDegree),
			Location: meta.Value(types.MetaLocation),
			Dates:    DateRange(meta.Value(types.MetaStartDate), meta.Value(types.MetaEndDate)),
		}
		if gpa := meta.Value(types.MetaGPA); gpa != "" {
			h.Note = "GPA: " + gpa
		}
		return h
	default:
		return EntryHeading{Title: meta.Value(types.MetaCategory)}
	}
}

// DateRange formats "start – end"; a missing start yields the end alone
func DateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " – " + end
	}
}
