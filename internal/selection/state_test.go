package selection

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() types.Catalog {
	return types.Catalog{Sections: []types.Section{
		{ID: "a (exp)", Category: types.CategoryExperience, Points: []types.Point{{ID: "a (exp)-p0"}, {ID: "a (exp)-p1"}}},
		{ID: "s (skl)", Category: types.CategorySkills, Points: []types.Point{{ID: "s (skl)-p0"}}},
	}}
}

func TestInitialize_AllIncluded(t *testing.T) {
	state := Initialize(testCatalog())
	assert.Equal(t, 3, state.Len())
	for _, id := range testCatalog().PointIDs() {
		assert.True(t, state.Included(id), id)
	}
}

func TestToggle(t *testing.T) {
	state := Initialize(testCatalog())

	toggled := state.Toggle("a (exp)-p0")
	assert.False(t, toggled.Included("a (exp)-p0"))
	assert.True(t, state.Included("a (exp)-p0"), "original state must not change")

	twice := toggled.Toggle("a (exp)-p0")
	assert.True(t, twice.Equal(state))
}

func TestToggle_AbsentIDBecomesExcluded(t *testing.T) {
	state := Initialize(testCatalog()).Toggle("s (skl)-p0-skill-1")

	assert.True(t, state.Has("s (skl)-p0-skill-1"))
	assert.False(t, state.Included("s (skl)-p0-skill-1"))
	assert.False(t, state.IncludedOrDefault("s (skl)-p0-skill-1"))
}

func TestIncludedOrDefault(t *testing.T) {
	state := Initialize(testCatalog())
	assert.True(t, state.IncludedOrDefault("unknown"))
	assert.False(t, state.Included("unknown"))
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		want     map[string]bool
		corrupt  bool
	}{
		{
			name:     "present keys override defaults",
			snapshot: `{"a (exp)-p1": false, "stale-id": false}`,
			want:     map[string]bool{"a (exp)-p0": true, "a (exp)-p1": false, "s (skl)-p0": true, "stale-id": false},
		},
		{
			name:     "non boolean values are skipped",
			snapshot: `{"a (exp)-p0": "false", "a (exp)-p1": 0, "s (skl)-p0": false}`,
			want:     map[string]bool{"a (exp)-p0": true, "a (exp)-p1": true, "s (skl)-p0": false},
		},
		{
			name:     "empty snapshot is a no-op",
			snapshot: "  ",
			want:     map[string]bool{"a (exp)-p0": true, "a (exp)-p1": true, "s (skl)-p0": true},
		},
		{
			name:     "corrupt snapshot keeps defaults",
			snapshot: `{"a (exp)-p0": fal`,
			want:     map[string]bool{"a (exp)-p0": true, "a (exp)-p1": true, "s (skl)-p0": true},
			corrupt:  true,
		},
		{
			name:     "array is corrupt",
			snapshot: `[true]`,
			want:     map[string]bool{"a (exp)-p0": true, "a (exp)-p1": true, "s (skl)-p0": true},
			corrupt:  true,
		},
		{
			name:     "null is corrupt",
			snapshot: `null`,
			want:     map[string]bool{"a (exp)-p0": true, "a (exp)-p1": true, "s (skl)-p0": true},
			corrupt:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Initialize(testCatalog()).Restore([]byte(tt.snapshot))
			if tt.corrupt {
				assert.ErrorIs(t, err, ErrCorruptSnapshot)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got.Map())
		})
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	snapshot := map[string]bool{"a (exp)-p0": false, "s (skl)-p0": true}
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	state, err := Initialize(testCatalog()).Restore(data)
	require.NoError(t, err)

	for id, want := range snapshot {
		assert.Equal(t, want, state.Included(id))
	}
	assert.True(t, state.Included("a (exp)-p1"), "absent keys stay included")
}

func TestSetDefaultAfterRestore(t *testing.T) {
	state, err := Initialize(testCatalog()).Restore([]byte(`{"custom-1": false}`))
	require.NoError(t, err)

	state = state.SetDefault("custom-1", true)
	assert.True(t, state.Included("custom-1"))
}

func TestSnapshot(t *testing.T) {
	state := Initialize(testCatalog()).Toggle("a (exp)-p1")
	data, err := state.Snapshot()
	require.NoError(t, err)

	var decoded map[string]bool
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, state.Map(), decoded)

	empty, err := State{}.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"a (exp)-p0", "a (exp)-p1", "s (skl)-p0"}, Initialize(testCatalog()).IDs())
}
