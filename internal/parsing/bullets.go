package parsing

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// IsBulletLine reports whether a body line is a bullet: its trimmed content starts with a dash
// and it is not a thematic break made only of dashes.
func IsBulletLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "-") {
		return false
	}
	if len(trimmed) >= 3 && strings.Trim(trimmed, "-") == "" {
		return false
	}
	return true
}

// BulletText returns the trimmed text after the leading dash of a bullet line
func BulletText(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
}

// PointID builds the stable id of the index-th point of a section
func PointID(sectionID string, index int) string {
	return sectionID + "-p" + strconv.Itoa(index)
}

// ParseDocument converts one raw document into a section. Parsing never fails: malformed
// front matter or bullets degrade to fewer fields and points.
func ParseDocument(sectionID string, category types.Category, raw string) types.Section {
	split := SplitFrontMatter(raw)

	meta := types.Metadata{}
	if split.HasFrontMatter {
		meta = ParseFrontMatter(split.FrontMatter)
	}

	points := []types.Point{}
	for _, line := range split.Body {
		if !IsBulletLine(line) {
			continue
		}
		text := BulletText(line)
		if text == "" {
			continue
		}
		extracted := ExtractTags(text)
		points = append(points, types.Point{
			ID:   PointID(sectionID, len(points)),
			Text: extracted.Text,
			Tags: extracted.Tags,
		})
	}

	return types.Section{
		ID:       sectionID,
		Category: category,
		Metadata: meta,
		Points:   points,
	}
}
