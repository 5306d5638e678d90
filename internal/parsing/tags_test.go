package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		tags   []string
		status TagStatus
		empty  int
	}{
		{name: "well formed", text: "Built thing [Go, SQL]", want: "Built thing", tags: []string{"Go", "SQL"}, status: Tagged},
		{name: "no brackets", text: "Plain text", want: "Plain text", tags: []string{}, status: NoTags},
		{name: "trailing comma", text: "Did X [Go, , SQL,]", want: "Did X", tags: []string{"Go", "SQL"}, status: Tagged, empty: 2},
		{name: "unterminated", text: "Did X [Go, SQL", want: "Did X [Go, SQL", tags: []string{}, status: Unterminated},
		{name: "empty group", text: "Did X []", want: "Did X", tags: []string{}, status: EmptyGroup, empty: 1},
		{name: "only last group counts", text: "Used [a] and [b, c]", want: "Used [a] and", tags: []string{"b", "c"}, status: Tagged},
		{name: "nested brackets", text: "Odd [a [b]]", want: "Odd [a [b]]", tags: []string{}, status: NoTags},
		{name: "group not at end", text: "Mid [Go] text", want: "Mid [Go] text", tags: []string{}, status: NoTags},
		{name: "group is whole text", text: "[Go]", want: "[Go]", tags: []string{}, status: TagsOnly},
		{name: "duplicate tags kept", text: "X [Go, Go]", want: "X", tags: []string{"Go", "Go"}, status: Tagged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.text)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.tags, got.Tags)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.empty, got.EmptyEntries)
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, SplitTags(" Go ,SQL, "))
	assert.Equal(t, []string{}, SplitTags(""))
}
