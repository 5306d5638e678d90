// Package selection tracks which bullet points are included in the rendered output.
package selection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
)

// StorageKey is the persisted key holding the selection snapshot
const StorageKey = "resume-selected-points"

// ErrCorruptSnapshot is returned when a persisted selection snapshot is not a JSON object
var ErrCorruptSnapshot = errors.New("corrupt selection snapshot")

// State maps a point id (or skill token id) to its inclusion flag.
// A State is never modified after creation; every operation returns a new value.
type State struct {
	flags map[string]bool
}

// Initialize includes every point of the catalog
func Initialize(catalog types.Catalog) State {
	flags := make(map[string]bool, catalog.PointCount())
	for _, id := range catalog.PointIDs() {
		flags[id] = true
	}
	return State{flags: flags}
}

// FromMap builds a state from explicit flags
func FromMap(flags map[string]bool) State {
	s := State{flags: make(map[string]bool, len(flags))}
	for id, v := range flags {
		s.flags[id] = v
	}
	return s
}

func (s State) clone() State {
	return FromMap(s.flags)
}

// Toggle flips the flag of id. An absent id starts from included, so it becomes excluded.
func (s State) Toggle(id string) State {
	out := s.clone()
	current, ok := out.flags[id]
	if !ok {
		current = true
	}
	out.flags[id] = !current
	return out
}

// SetDefault sets the flag of id unconditionally
func (s State) SetDefault(id string, included bool) State {
	out := s.clone()
	out.flags[id] = included
	return out
}

// Restore overwrites flags with every boolean entry of a persisted snapshot.
// Non-boolean entries are skipped and keys absent from the snapshot keep their current value.
// A snapshot that is not a JSON object leaves the state unchanged and returns an error
// wrapping ErrCorruptSnapshot; an empty snapshot is a no-op.
func (s State) Restore(snapshot []byte) (State, error) {
	if len(bytes.TrimSpace(snapshot)) == 0 {
		return s, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(snapshot, &raw); err != nil {
		return s, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if raw == nil {
		return s, fmt.Errorf("%w: snapshot is null", ErrCorruptSnapshot)
	}

	out := s.clone()
	for id, value := range raw {
		var included bool
		if json.Unmarshal(value, &included) != nil {
			continue
		}
		out.flags[id] = included
	}
	return out, nil
}

// Included reports whether id is included; absent ids are excluded
func (s State) Included(id string) bool {
	return s.flags[id]
}

// IncludedOrDefault reports whether id is included; absent ids are included.
// Skill tokens rely on this since they are never initialized explicitly.
func (s State) IncludedOrDefault(id string) bool {
	v, ok := s.flags[id]
	if !ok {
		return true
	}
	return v
}

// Has reports whether the state holds an entry for id
func (s State) Has(id string) bool {
	_, ok := s.flags[id]
	return ok
}

// Len returns the number of entries
func (s State) Len() int {
	return len(s.flags)
}

// IDs returns every id in the state, sorted
func (s State) IDs() []string {
	ids := make([]string, 0, len(s.flags))
	for id := range s.flags {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Map returns a copy of the flags
func (s State) Map() map[string]bool {
	return FromMap(s.flags).flags
}

// Snapshot serializes the state as a JSON object of id to boolean
func (s State) Snapshot() ([]byte, error) {
	if s.flags == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.flags)
}

// Equal reports whether two states hold the same entries
func (s State) Equal(other State) bool {
	if len(s.flags) != len(other.flags) {
		return false
	}
	for id, v := range s.flags {
		ov, ok := other.flags[id]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
