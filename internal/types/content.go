// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category identifies which resume section group a content document belongs to
type Category string

const (
	CategoryExperience Category = "experience"
	CategoryProject    Category = "project"
	CategoryEducation  Category = "education"
	CategorySkills     Category = "skills"
)

// Categories lists every category in catalog (and render) order
var Categories = []Category{CategoryExperience, CategoryProject, CategoryEducation, CategorySkills}

// Suffix returns the id suffix appended to a document name to build its section id.
// The suffix keeps identical filenames in different categories from colliding.
func (c Category) Suffix() string {
	switch c {
	case CategoryExperience:
		return " (exp)"
	case CategoryProject:
		return " (proj)"
	case CategoryEducation:
		return " (edu)"
	case CategorySkills:
		return " (skl)"
	default:
		return " (" + string(c) + ")"
	}
}

// Dir returns the source directory name holding documents of this category
func (c Category) Dir() string {
	if c == CategoryProject {
		return "projects"
	}
	return string(c)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Metadata keys recognized in front matter
const (
	MetaCompany     = "company"
	MetaDesignation = "designation"
	MetaLocation    = "location"
	MetaStartDate   = "startDate"
	MetaEndDate     = "endDate"
	MetaProjectName = "project_name"
	MetaURL         = "url"
	MetaInstitution = "institution"
	MetaDegree      = "degree"
	MetaGPA         = "gpa"
	MetaCategory    = "category"
)

// RecognizedKeys lists the front matter keys each category understands
var RecognizedKeys = map[Category][]string{
	CategoryExperience: {MetaCompany, MetaDesignation, MetaLocation, MetaStartDate, MetaEndDate},
	CategoryProject:    {MetaProjectName, MetaURL},
	CategoryEducation:  {MetaInstitution, MetaDegree, MetaLocation, MetaStartDate, MetaEndDate, MetaGPA},
	CategorySkills:     {MetaCategory},
}

// Metadata is the open set of front matter attributes of a section.
// A missing key means the attribute is absent; it is never stored as an empty string.
type Metadata map[string]string

// Get returns the value for key and whether it is present
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Value returns the value for key or "" when absent
func (m Metadata) Value(key string) string {
	return m[key]
}

// Clone returns an independent copy of the metadata
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Point represents one bullet point with its display text and tags
type Point struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// HasTag reports whether the point carries tag
func (p Point) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Section represents one parsed content document (a job, project, degree or skill category)
type Section struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Metadata Metadata `json:"metadata"`
	Points   []Point  `json:"points"`
}

// Title returns the heading shown for the section in an editor list
func (s Section) Title() string {
	for _, key := range []string{MetaCompany, MetaProjectName, MetaInstitution, MetaCategory} {
		if v, ok := s.Metadata.Get(key); ok && v != "" {
			return v
		}
	}
	return s.ID
}

// Subtitle returns the designation or degree of the section, if any
func (s Section) Subtitle() string {
	if v := s.Metadata.Value(MetaDesignation); v != "" {
		return v
	}
	return s.Metadata.Value(MetaDegree)
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	out := s
	out.Metadata = s.Metadata.Clone()
	out.Points = make([]Point, len(s.Points))
	for i, p := range s.Points {
		out.Points[i] = Point{ID: p.ID, Text: p.Text, Tags: append([]string{}, p.Tags...)}
	}
	return out
}

// Catalog is the ordered collection of every section loaded from source documents
type Catalog struct {
	Sections []Section `json:"sections"`
}

// Section returns a pointer into c.Sections for the given id, or nil
func (c Catalog) Section(id string) *Section {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// ByCategory returns the sections of one category in catalog order
func (c Catalog) ByCategory(category Category) []Section {
	var out []Section
	for _, s := range c.Sections {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// PointCount returns the number of points across all sections
func (c Catalog) PointCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Points)
	}
	return n
}

// PointIDs returns every point id in catalog order
func (c Catalog) PointIDs() []string {
	ids := make([]string, 0, c.PointCount())
	for _, s := range c.Sections {
		for _, p := range s.Points {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Clone returns a deep copy of the catalog
func (c Catalog) Clone() Catalog {
	out := Catalog{Sections: make([]Section, len(c.Sections))}
	for i, s := range c.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}
