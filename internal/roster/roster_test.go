package roster_test

import (
	"testing"

	"probenbuch/internal/baserow"
	"probenbuch/internal/roster"
)

func TestDisplayNamePairBeatsSingle(t *testing.T) {
	p := baserow.Player{"id": float64(3), "Vorname": "Anna", "Nachname": "Bauer", "Name": "Etwas anderes"}
	if got := roster.DisplayName(p); got != "Anna Bauer" {
		t.Fatalf("expected paired fields to win, got %q", got)
	}
}

func TestDisplayNameLowercasePair(t *testing.T) {
	p := baserow.Player{"id": float64(4), "vorname": "jan", "nachname": "meier"}
	if got := roster.DisplayName(p); got != "jan meier" {
		t.Fatalf("unexpected display name: %q", got)
	}
}

func TestDisplayNameSingleField(t *testing.T) {
	p := baserow.Player{"id": float64(5), "Name": "  Clara Schulz  "}
	if got := roster.DisplayName(p); got != "Clara Schulz" {
		t.Fatalf("unexpected display name: %q", got)
	}
}

func TestDisplayNameIncompletePairFallsThrough(t *testing.T) {
	p := baserow.Player{"id": float64(6), "Vorname": "Anna", "Name": "Anna B."}
	if got := roster.DisplayName(p); got != "Anna B." {
		t.Fatalf("expected single-field fallback, got %q", got)
	}
}

func TestDisplayNameAnyStringField(t *testing.T) {
	p := baserow.Player{"id": float64(7), "Instrument": "Tuba"}
	if got := roster.DisplayName(p); got != "Tuba" {
		t.Fatalf("expected first non-blank text field, got %q", got)
	}
}

func TestDisplayNamePlaceholder(t *testing.T) {
	p := baserow.Player{"id": float64(8), "Aktiv": true}
	if got := roster.DisplayName(p); got != "Spieler 8" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestBuildFiltersNamesWithoutLetters(t *testing.T) {
	players := []baserow.Player{
		{"id": float64(1), "Name": "Anna Bauer"},
		{"id": float64(2), "Name": "123"},
		{"id": float64(3), "Name": "---"},
	}
	entries := roster.Build(players)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].DisplayName != "Anna Bauer" {
		t.Fatalf("unexpected survivor: %q", entries[0].DisplayName)
	}
}

func TestBuildKeepsGermanLetters(t *testing.T) {
	players := []baserow.Player{{"id": float64(1), "Name": "Müller"}}
	if entries := roster.Build(players); len(entries) != 1 {
		t.Fatal("umlaut-only name must survive the letter filter")
	}
}

func TestBuildOrdersByLastNameThenFullName(t *testing.T) {
	players := []baserow.Player{
		{"id": float64(1), "Name": "Clara Zimmer"},
		{"id": float64(2), "Name": "Anna Bauer"},
		{"id": float64(3), "Name": "Ben Bauer"},
		{"id": float64(4), "Vorname": "Julia", "Nachname": "Öhler"},
	}
	entries := roster.Build(players)
	got := make([]string, len(entries))
	for i, entry := range entries {
		got[i] = entry.DisplayName
	}
	want := []string{"Anna Bauer", "Ben Bauer", "Julia Öhler", "Clara Zimmer"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
}

func TestByID(t *testing.T) {
	entries := roster.Build([]baserow.Player{{"id": float64(9), "Name": "Anna Bauer"}})
	index := roster.ByID(entries)
	if index[9].DisplayName != "Anna Bauer" {
		t.Fatalf("unexpected index: %+v", index)
	}
}
