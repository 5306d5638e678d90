// Package observability provides the CLI logger and formatted terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/filter"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 80
	// maxItemsToShow is the number of violations listed before summarizing the rest
	maxItemsToShow = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func checkbox(included bool) string {
	if included {
		return "[x]"
	}
	return "[ ]"
}

// PrintView outputs one box per section with the tag-visible points and their selection flags.
// Skill points list their tokens so they can be toggled by id.
func (p *Printer) PrintView(view filter.View, sel selection.State) {
	if len(view.Tags) > 0 {
		_, _ = fmt.Fprintf(p.out, "Filtering by: %s\n", strings.Join(view.Tags, ", "))
	}

	for _, sv := range view.Sections {
		section := sv.Section
		title := fmt.Sprintf("%s  (%s)", section.Title(), section.ID)
		if sub := section.Subtitle(); sub != "" {
			title = fmt.Sprintf("%s | %s  (%s)", section.Title(), sub, section.ID)
		}

		var sb strings.Builder
		if len(section.Points) == 0 {
			if sv.TotalPoints == 0 {
				sb.WriteString("(no points)")
			} else {
				sb.WriteString(fmt.Sprintf("(no points match the filter, %d hidden)", sv.TotalPoints))
			}
		}
		for i, point := range section.Points {
			sb.WriteString(fmt.Sprintf("%s %s  %s", checkbox(sel.Included(point.ID)), point.ID, point.Text))
			if len(point.Tags) > 0 {
				sb.WriteString(fmt.Sprintf(" [%s]", strings.Join(point.Tags, ", ")))
			}
			if section.Category == types.CategorySkills {
				for _, token := range filter.Tokens(point, sel) {
					sb.WriteString(fmt.Sprintf("\n    %s %s  %s", checkbox(token.Included), token.ID, token.Text))
				}
			}
			if i < len(section.Points)-1 {
				sb.WriteString("\n")
			}
		}

		p.printBox(strings.ToUpper(string(section.Category))+": "+title, sb.String())
	}

	_, _ = fmt.Fprintf(p.out, "%d active points\n", view.ActiveCount())
}

// PrintTags outputs every tag, marking the active ones
func (p *Printer) PrintTags(all []string, active filter.TagSet) {
	if len(all) == 0 {
		p.printBox("TAGS", "(no tags)")
		return
	}

	var sb strings.Builder
	for i, tag := range all {
		sb.WriteString(fmt.Sprintf("%s %s", checkbox(active.Has(tag)), tag))
		if i < len(all)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("TAGS (%d, %d active)", len(all), active.Len()), sb.String())
}

// PrintLayout outputs the layout settings with their units
func (p *Printer) PrintLayout(s layout.Settings) {
	dims := s.Dimensions()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page size:            %s (%g x %g %s)\n", s.PageSize, dims.Width, dims.Height, dims.Unit))
	sb.WriteString(fmt.Sprintf("Padding top/bottom:   %g mm\n", s.PaddingTopBottom))
	sb.WriteString(fmt.Sprintf("Padding left/right:   %g mm\n", s.PaddingLeftRight))
	sb.WriteString(fmt.Sprintf("Gap between points:   %g px\n", s.GapPoints))
	sb.WriteString(fmt.Sprintf("Section to entries:   %g px\n", s.GapSectionToSub))
	sb.WriteString(fmt.Sprintf("Between entries:      %g px", s.GapSubsections))
	p.printBox("LAYOUT", sb.String())
}

// PrintViolations outputs lint findings.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO PROBLEMS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems (%d errors):\n\n",
		len(violations.Violations), violations.Count(types.SeverityError)))

	count := min(len(violations.Violations), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := violations.Violations[i]
		marker := "⚠"
		if v.Severity == types.SeverityError {
			marker = "✗"
		}
		location := v.Source
		if v.Line > 0 {
			location = fmt.Sprintf("%s:%d", v.Source, v.Line)
		}
		if location == "" {
			location = "(all sources)"
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", marker, v.Rule, location))
		sb.WriteString(fmt.Sprintf("  %s", v.Message))
		if i < count-1 {
			sb.WriteString("\n\n")
		}
	}

	if len(violations.Violations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more", len(violations.Violations)-maxItemsToShow))
	}

	p.printBox("CONTENT LINT", sb.String())
}
