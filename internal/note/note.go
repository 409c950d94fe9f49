// Package note defines the note record shared by the interaction tools, the
// spatial index, and the note store.
package note

import (
	"sort"

	"github.com/dshills/pianoroll/internal/geom"
)

// ID identifies a note. IDs are assigned by the note store.
type ID string

// Note is a rectangle on the roll. X and Width encode start time and
// duration; Y and Height encode the pitch row.
type Note struct {
	ID     ID
	Bounds geom.Rect
}

// Position returns the note's representative point, its top-left corner.
func (n Note) Position() geom.Point {
	return n.Bounds.Origin()
}

// Placement is a request to create a note. The store picks the height.
type Placement struct {
	X     float64
	Y     float64
	Width float64
}

// SortIDs sorts ids in place and returns them.
func SortIDs(ids []ID) []ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Set is an unordered collection of note identities.
type Set map[ID]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the members sorted by ID.
func (s Set) Slice() []ID {
	if len(s) == 0 {
		return nil
	}
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return SortIDs(ids)
}
