package filter

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/selection"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() types.Catalog {
	return types.Catalog{Sections: []types.Section{
		{
			ID:       "acme (exp)",
			Category: types.CategoryExperience,
			Metadata: types.Metadata{types.MetaCompany: "Acme"},
			Points: []types.Point{
				{ID: "acme (exp)-p0", Text: "Built API", Tags: []string{"Java", "Go"}},
				{ID: "acme (exp)-p1", Text: "Ran ML", Tags: []string{"Python"}},
				{ID: "acme (exp)-p2", Text: "Untagged", Tags: []string{}},
			},
		},
		{
			ID:       "tool (proj)",
			Category: types.CategoryProject,
			Points:   []types.Point{{ID: "tool (proj)-p0", Text: "CLI", Tags: []string{"Rust"}}},
		},
		{
			ID:       "langs (skl)",
			Category: types.CategorySkills,
			Metadata: types.Metadata{types.MetaCategory: "Languages"},
			Points:   []types.Point{{ID: "langs (skl)-p0", Text: "Languages: Go, Python, SQL", Tags: []string{}}},
		},
	}}
}

func TestTagSet(t *testing.T) {
	set := NewTagSet("Go", "", "SQL")
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("Go"))

	toggled := set.Toggle("Go").Toggle("Rust")
	assert.Equal(t, []string{"Rust", "SQL"}, toggled.Sorted())
	assert.True(t, set.Has("Go"), "original set must not change")

	var zero TagSet
	assert.True(t, zero.Empty())
	assert.Equal(t, []string{"x"}, zero.Toggle("x").Sorted())
}

func TestAllTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "Java", "Python", "Rust"}, AllTags(testCatalog()))
}

func TestVisible_ORSemantics(t *testing.T) {
	point := types.Point{Tags: []string{"Java", "Go"}}

	assert.True(t, Visible(point, NewTagSet("Python", "Java")))
	assert.False(t, Visible(point, NewTagSet("Python")))
	assert.True(t, Visible(point, NewTagSet()))
	assert.False(t, Visible(types.Point{Tags: []string{}}, NewTagSet("Go")))
}

func TestDeriveView_KeepsEmptySections(t *testing.T) {
	catalog := testCatalog()
	view := DeriveView(catalog, NewTagSet("Python"), selection.Initialize(catalog))

	require.Len(t, view.Sections, 3)
	acme := view.Section("acme (exp)")
	require.NotNil(t, acme)
	assert.Equal(t, 3, acme.TotalPoints)
	require.Len(t, acme.Section.Points, 1)
	assert.Equal(t, "acme (exp)-p1", acme.Section.Points[0].ID)

	tool := view.Section("tool (proj)")
	require.NotNil(t, tool)
	assert.Empty(t, tool.Section.Points)
	assert.Empty(t, tool.Active)
	assert.Equal(t, []string{"Python"}, view.Tags)
}

func TestDeriveView_ActiveNeedsFilterAndSelection(t *testing.T) {
	catalog := testCatalog()
	sel := selection.Initialize(catalog).Toggle("acme (exp)-p0")

	view := DeriveView(catalog, NewTagSet("Go", "Python"), sel)
	acme := view.Section("acme (exp)")
	require.NotNil(t, acme)
	require.Len(t, acme.Section.Points, 2)
	require.Len(t, acme.Active, 1)
	assert.Equal(t, "acme (exp)-p1", acme.Active[0].ID)
}

func TestDeriveView_Idempotent(t *testing.T) {
	catalog := testCatalog()
	sel := selection.Initialize(catalog).Toggle("langs (skl)-p0-skill-1")
	tags := NewTagSet("Go")

	assert.Equal(t, DeriveView(catalog, tags, sel), DeriveView(catalog, tags, sel))
}

func TestDeriveView_DoesNotAliasCatalog(t *testing.T) {
	catalog := testCatalog()
	view := DeriveView(catalog, NewTagSet(), selection.Initialize(catalog))

	view.Sections[0].Section.Points[0].Tags[0] = "mutated"
	view.Sections[0].Section.Metadata[types.MetaCompany] = "mutated"
	assert.Equal(t, "Java", catalog.Sections[0].Points[0].Tags[0])
	assert.Equal(t, "Acme", catalog.Sections[0].Metadata.Value(types.MetaCompany))
}

func TestSkillTokens(t *testing.T) {
	tokens := SkillTokens(types.Point{ID: "s-p0", Text: "Languages: Go, , Python,SQL"})
	assert.Equal(t, []SkillToken{
		{ID: "s-p0-skill-0", Text: "Go"},
		{ID: "s-p0-skill-1", Text: "Python"},
		{ID: "s-p0-skill-2", Text: "SQL"},
	}, tokens)

	tokens = SkillTokens(types.Point{ID: "s-p1", Text: "Docker, Kubernetes"})
	require.Len(t, tokens, 2)
	assert.Equal(t, "Docker", tokens[0].Text)
}

func TestActivePoints_SkillTokens(t *testing.T) {
	catalog := testCatalog()
	skills := catalog.Sections[2]
	sel := selection.Initialize(catalog)

	active := ActivePoints(skills, sel)
	require.Len(t, active, 1)
	assert.Equal(t, "Languages: Go, Python, SQL", active[0].Text)

	sel = sel.Toggle(SkillTokenID("langs (skl)-p0", 1))
	active = ActivePoints(skills, sel)
	require.Len(t, active, 1)
	assert.Equal(t, "Languages: Go, SQL", active[0].Text)

	tokens := Tokens(skills.Points[0], sel)
	assert.True(t, tokens[0].Included)
	assert.False(t, tokens[1].Included)

	sel = sel.Toggle(SkillTokenID("langs (skl)-p0", 0)).Toggle(SkillTokenID("langs (skl)-p0", 2))
	assert.Empty(t, ActivePoints(skills, sel), "a skills point with every token excluded is not active")
}

func TestActivePoints_PointToggleOverridesTokens(t *testing.T) {
	catalog := testCatalog()
	sel := selection.Initialize(catalog).Toggle("langs (skl)-p0")
	assert.Empty(t, ActivePoints(catalog.Sections[2], sel))
}

func TestSplitSkillLabel(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantRest  string
	}{
		{name: "label", text: "Cloud: AWS, GCP", wantLabel: "Cloud:", wantRest: " AWS, GCP"},
		{name: "no colon", text: "AWS, GCP", wantLabel: "", wantRest: "AWS, GCP"},
		{name: "colon after first comma", text: "Go, Node.js (v18: LTS)", wantLabel: "", wantRest: "Go, Node.js (v18: LTS)"},
		{name: "colon inside label line", text: "Runtimes: Go, Node.js (v18: LTS)", wantLabel: "Runtimes:", wantRest: " Go, Node.js (v18: LTS)"},
		{name: "single token with colon", text: "Cloud: AWS", wantLabel: "Cloud:", wantRest: " AWS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, rest := SplitSkillLabel(tt.text)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestSkillTokens_ColonInsideToken(t *testing.T) {
	point := types.Point{ID: "p", Text: "Go, Node.js (v18: LTS)"}
	tokens := SkillTokens(point)
	require.Len(t, tokens, 2)
	assert.Equal(t, "Go", tokens[0].Text)
	assert.Equal(t, "Node.js (v18: LTS)", tokens[1].Text)

	text, ok := rebuildSkillText(point, selection.State{})
	require.True(t, ok)
	assert.Equal(t, "Go, Node.js (v18: LTS)", text)
}
