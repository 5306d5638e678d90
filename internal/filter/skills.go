package filter

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/types"
)

// SkillToken is one comma-separated entry of a skills point, toggled independently
type SkillToken struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// SkillTokenID builds the synthetic id of the index-th token of a skills point
func SkillTokenID(pointID string, index int) string {
	return pointID + "-skill-" + strconv.Itoa(index)
}

// SplitSkillLabel separates a leading "Label:" prefix from the token list of a skills line.
// The label keeps its colon. A colon only opens a label when it comes before the first comma,
// so "Go, Node.js (v18: LTS)" has no label.
func SplitSkillLabel(text string) (label, rest string) {
	idx := strings.Index(text, ":")
	if idx == -1 {
		return "", text
	}
	if comma := strings.Index(text, ","); comma != -1 && comma < idx {
		return "", text
	}
	return text[:idx+1], text[idx+1:]
}

// SkillTokens splits a skills point into its comma-separated tokens.
// Empty entries are dropped and do not consume an index. Included is left false;
// use Tokens to resolve it against a selection state.
func SkillTokens(point types.Point) []SkillToken {
	_, rest := SplitSkillLabel(point.Text)
	tokens := []SkillToken{}
	for _, part := range strings.Split(rest, ",") {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		tokens = append(tokens, SkillToken{ID: SkillTokenID(point.ID, len(tokens)), Text: text})
	}
	return tokens
}

// Tokens returns the skill tokens of point with their inclusion resolved.
// Tokens default to included unless the state explicitly excludes them.
func Tokens(point types.Point, sel selection.State) []SkillToken {
	tokens := SkillTokens(point)
	for i := range tokens {
		tokens[i].Included = sel.IncludedOrDefault(tokens[i].ID)
	}
	return tokens
}

// rebuildSkillText joins the included tokens of a skills point back into display text,
// keeping its label. ok is false when no token is included.
func rebuildSkillText(point types.Point, sel selection.State) (string, bool) {
	label, _ := SplitSkillLabel(point.Text)
	included := make([]string, 0)
	for _, token := range Tokens(point, sel) {
		if token.Included {
			included = append(included, token.Text)
		}
	}
	if len(included) == 0 {
		return "", false
	}

	joined := strings.Join(included, ", ")
	if label == "" {
		return joined, true
	}
	return label + " " + joined, true
}
