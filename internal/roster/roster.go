// Package roster derives human-readable player entries from raw Baserow
// rows: display-name extraction over varying field layouts, filtering of
// blank placeholder rows, and deterministic German-aware ordering.
package roster

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"probenbuch/internal/baserow"
)

// Entry is one orderable, checkable roster line.
type Entry struct {
	ID          int64
	DisplayName string
	Raw         baserow.Player
}

// namePair is a tagged extraction rule: both fields must be non-blank.
type namePair struct {
	first, last string
}

// Extraction rules in priority order. The pairs come first, then single
// full-name fields, then any non-blank text field, then a placeholder.
var pairRules = []namePair{
	{"Vorname", "Nachname"},
	{"vorname", "nachname"},
	{"first_name", "last_name"},
	{"firstName", "lastName"},
	{"given_name", "family_name"},
	{"FirstName", "LastName"},
}

var singleRules = []string{"Name", "name", "FullName", "full_name"}

// DisplayName applies the extraction rules in priority order until one
// yields a non-empty result.
func DisplayName(p baserow.Player) string {
	for _, rule := range pairRules {
		first := stringField(p, rule.first)
		last := stringField(p, rule.last)
		if first != "" && last != "" {
			return first + " " + last
		}
	}
	for _, key := range singleRules {
		if value := stringField(p, key); value != "" {
			return value
		}
	}
	// Any non-blank text field, scanned in sorted key order so the result
	// does not depend on map iteration.
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if value := stringField(p, key); value != "" {
			return value
		}
	}
	return fmt.Sprintf("Spieler %d", p.PlayerID())
}

func stringField(p baserow.Player, key string) string {
	value, ok := p[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Build derives display names, drops rows whose name carries no letter,
// and orders the rest by last-name token then full name.
func Build(players []baserow.Player) []Entry {
	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		display := DisplayName(p)
		if !containsLetter(display) {
			continue
		}
		entries = append(entries, Entry{ID: p.PlayerID(), DisplayName: display, Raw: p})
	}

	collator := collate.New(language.German, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if cmp := collator.CompareString(lastToken(a.DisplayName), lastToken(b.DisplayName)); cmp != 0 {
			return cmp < 0
		}
		return collator.CompareString(strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)) < 0
	})
	return entries
}

func lastToken(display string) string {
	fields := strings.Fields(display)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// ByID indexes roster entries for toggle lookups.
func ByID(entries []Entry) map[int64]Entry {
	index := make(map[int64]Entry, len(entries))
	for _, entry := range entries {
		index[entry.ID] = entry
	}
	return index
}
