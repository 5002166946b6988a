package rehearsal

import (
	"sort"

	"probenbuch/internal/baserow"
)

// Selection is a set of referenced-entity row identifiers representing the
// current user choices for one record field.
type Selection map[int64]struct{}

// NewSelection builds a selection from identifiers.
func NewSelection(ids ...int64) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// FromLinks initializes a selection from a link-row field, skipping
// malformed entries.
func FromLinks(refs []baserow.LinkRef) Selection {
	s := make(Selection, len(refs))
	for _, ref := range refs {
		if ref.ID > 0 {
			s[ref.ID] = struct{}{}
		}
	}
	return s
}

// Snapshot returns an independent copy, the baseline for later diffing.
func (s Selection) Snapshot() Selection {
	cp := make(Selection, len(s))
	for id := range s {
		cp[id] = struct{}{}
	}
	return cp
}

// Equal reports set equality.
func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Has reports membership.
func (s Selection) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order, the wire shape for link-row
// updates.
func (s Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Toggle describes one checkbox-style event.
type Toggle struct {
	ID int64
	On bool
}

// Apply is the reducer: it returns the selection after the toggle, leaving
// the input untouched. Pure of any UI binding.
func Apply(s Selection, t Toggle) Selection {
	next := s.Snapshot()
	if t.On {
		next[t.ID] = struct{}{}
	} else {
		delete(next, t.ID)
	}
	return next
}
