// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/jonathan/resume-builder/internal/layout"

// Contact is the header block printed at the top of the page
type Contact struct {
	Name  string   `json:"name" yaml:"name"`
	Email string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`
}

// Items returns the non-empty contact details in display order
func (c Contact) Items() []string {
	items := make([]string, 0, 2+len(c.Links))
	for _, v := range append([]string{c.Email, c.Phone}, c.Links...) {
		if v != "" {
			items = append(items, v)
		}
	}
	return items
}

// Document is the read-only render projection handed to renderers and exporters.
// It holds everything needed to lay out a page without consulting the editor again.
type Document struct {
	Contact Contact         `json:"contact"`
	Layout  layout.Settings `json:"layout"`
	Page    Page            `json:"page"`
	Groups  []Group         `json:"groups"`
}

// Page describes the physical page of the document
type Page struct {
	Size   layout.PageSize `json:"size"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Unit   string          `json:"unit"`
}

// Group is one titled resume section (Experience, Projects, ...)
type Group struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Entries  []Entry  `json:"entries"`
}

// Entry is one rendered content section with its active points
type Entry struct {
	ID       string      `json:"id"`
	Category Category    `json:"category"`
	Metadata Metadata    `json:"metadata"`
	Points   []Point     `json:"points"`
	Skills   []SkillLine `json:"skills,omitempty"`
}

// SkillLine is a rendered skills point split into its bold label and the remaining text
type SkillLine struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}
