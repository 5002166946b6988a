package pieces

import (
	"errors"
	"sort"
	"strings"
)

// IDAllocator assigns an identifier to a piece registered inline. The CLI
// wires a server-backed allocator so identifiers come from the remote
// system; the local fallback guesses max-existing+1 and is only meaningful
// within the current editing session.
type IDAllocator func(name string) (int64, error)

// Selector offers substring suggestions over the catalog and tracks the
// set of chosen piece identifiers for one record edit.
type Selector struct {
	pool     []Piece
	selected map[int64]struct{}
	allocate IDAllocator
}

// NewSelector builds a selector over the catalog with an initial selection.
// A nil allocator falls back to local provisional identifiers.
func NewSelector(pool []Piece, selected []int64, allocate IDAllocator) *Selector {
	s := &Selector{
		pool:     append([]Piece(nil), pool...),
		selected: make(map[int64]struct{}, len(selected)),
		allocate: allocate,
	}
	for _, id := range selected {
		s.selected[id] = struct{}{}
	}
	if s.allocate == nil {
		s.allocate = s.localAllocate
	}
	return s
}

func (s *Selector) localAllocate(string) (int64, error) {
	var max int64
	for _, p := range s.pool {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1, nil
}

// Suggest returns catalog entries whose label contains the query,
// case-insensitively, in pool order, capped at ten.
func (s *Selector) Suggest(query string) []Piece {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var matches []Piece
	for _, p := range s.pool {
		if strings.Contains(strings.ToLower(p.Label()), query) {
			matches = append(matches, p)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}

// Select adds an existing candidate to the selection. Unknown identifiers
// are ignored so a stale suggestion cannot corrupt the set.
func (s *Selector) Select(id int64) {
	for _, p := range s.pool {
		if p.ID == id {
			s.selected[id] = struct{}{}
			return
		}
	}
}

// Deselect removes a candidate from the selection.
func (s *Selector) Deselect(id int64) {
	delete(s.selected, id)
}

// Add resolves typed text to a piece: an exact case-insensitive label match
// reuses the existing entry, anything else registers a new piece through
// the allocator. The resulting identifier always joins the selection.
func (s *Selector) Add(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("piece name must not be empty")
	}
	lowered := strings.ToLower(name)
	for _, p := range s.pool {
		if strings.ToLower(strings.TrimSpace(p.Label())) == lowered {
			s.selected[p.ID] = struct{}{}
			return p.ID, nil
		}
	}
	id, err := s.allocate(name)
	if err != nil {
		return 0, err
	}
	s.pool = append(s.pool, Piece{ID: id, Name: name})
	s.selected[id] = struct{}{}
	return id, nil
}

// Selected returns the chosen identifiers in ascending order.
func (s *Selector) Selected() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SelectedPieces returns the chosen catalog entries in pool order, the
// shape the "already added" list renders from.
func (s *Selector) SelectedPieces() []Piece {
	var chosen []Piece
	for _, p := range s.pool {
		if _, ok := s.selected[p.ID]; ok {
			chosen = append(chosen, p)
		}
	}
	return chosen
}

// Pool returns the current candidate pool, including inline additions.
func (s *Selector) Pool() []Piece {
	return append([]Piece(nil), s.pool...)
}
