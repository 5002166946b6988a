// Package pieces maintains the sheet-music catalog: display labels,
// substring suggestions, and inline registration of new pieces.
package pieces

import (
	"sort"
	"strings"

	"probenbuch/internal/baserow"
)

// Piece is one catalog entry.
type Piece struct {
	ID       int64
	Name     string
	Folder   string
	Page     string
	Composer string
}

// FromRows converts raw Baserow piece rows into catalog entries.
func FromRows(rows []baserow.Piece) []Piece {
	catalog := make([]Piece, 0, len(rows))
	for _, row := range rows {
		catalog = append(catalog, Piece{
			ID:       row.ID,
			Name:     row.Name,
			Folder:   row.Folder.String(),
			Page:     row.Page.String(),
			Composer: row.Composer.String(),
		})
	}
	return catalog
}

// Label renders "Name - Folder - S. Page", omitting empty components.
func (p Piece) Label() string {
	parts := []string{p.Name}
	if p.Folder != "" {
		parts = append(parts, p.Folder)
	}
	if p.Page != "" {
		parts = append(parts, "S. "+p.Page)
	}
	return strings.Trim(strings.Join(parts, " - "), " -")
}

// Folders returns the distinct non-empty folder values, sorted.
func Folders(catalog []Piece) []string {
	return distinct(catalog, func(p Piece) string { return p.Folder })
}

// Composers returns the distinct non-empty composer values, sorted.
func Composers(catalog []Piece) []string {
	return distinct(catalog, func(p Piece) string { return p.Composer })
}

func distinct(catalog []Piece, field func(Piece) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, p := range catalog {
		value := strings.TrimSpace(field(p))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// maxSuggestions caps suggestion lists; a presentation limit, not a
// correctness bound.
const maxSuggestions = 10

// MatchOptions filters free-text options by case-insensitive substring
// containment, in input order, capped at ten.
func MatchOptions(options []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var matches []string
	for _, option := range options {
		if strings.Contains(strings.ToLower(option), query) {
			matches = append(matches, option)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}
