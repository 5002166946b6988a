package rehearsal

import (
	"context"
	"errors"
	"fmt"

	"probenbuch/internal/baserow"
	"probenbuch/internal/pieces"
	"probenbuch/internal/roster"
)

// Remote field names of the rehearsals table.
const (
	FieldNotes   = "Notes"
	FieldPresent = "dabei waren"
	FieldExcused = "entschuldigt"
	FieldPieces  = "aufgef. Stücke"
)

// ErrNoChanges reports a save with nothing to send. No network call was
// made.
var ErrNoChanges = errors.New("nothing to save")

// Database is the subset of the Baserow client the edit session needs.
type Database interface {
	GetRehearsal(ctx context.Context, id int64) (*baserow.Rehearsal, error)
	ListPlayers(ctx context.Context) ([]baserow.Player, error)
	ListPieces(ctx context.Context) ([]baserow.Piece, error)
	UpdateRehearsal(ctx context.Context, id int64, fields map[string]any) (*baserow.Rehearsal, error)
}

// Session is one record edit: the loaded rehearsal, its roster and piece
// catalog, the mutable selections, and the baselines the save diff runs
// against.
type Session struct {
	db       Database
	RecordID int64
	Name     string
	Date     string

	Roster   []roster.Entry
	Selector *pieces.Selector

	Notes   string
	Present Selection
	Excused Selection

	originalNotes   string
	originalPresent Selection
	originalExcused Selection
	originalPieces  Selection
}

// LoadSession fetches the rehearsal, the player collection, and the piece
// catalog, and snapshots the baselines. Any failure leaves no session
// behind; the caller keeps its previous state.
func LoadSession(ctx context.Context, db Database, recordID int64, allocate pieces.IDAllocator) (*Session, error) {
	record, err := db.GetRehearsal(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("load rehearsal: %w", err)
	}
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	catalogRows, err := db.ListPieces(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pieces: %w", err)
	}

	present := FromLinks(record.Present)
	excused := FromLinks(record.Excused)
	performed := FromLinks(record.Pieces)

	session := &Session{
		db:       db,
		RecordID: recordID,
		Name:     record.Name,
		Date:     record.Date,
		Roster:   roster.Build(players),
		Selector: pieces.NewSelector(pieces.FromRows(catalogRows), performed.IDs(), allocate),
		Notes:    record.Notes.String(),
		Present:  present,
		Excused:  excused,

		originalNotes:   record.Notes.String(),
		originalPresent: present.Snapshot(),
		originalExcused: excused.Snapshot(),
		originalPieces:  performed.Snapshot(),
	}
	return session, nil
}

// TogglePresent applies one attendance toggle.
func (s *Session) TogglePresent(id int64, on bool) {
	s.Present = Apply(s.Present, Toggle{ID: id, On: on})
}

// ToggleExcused applies one excuse toggle.
func (s *Session) ToggleExcused(id int64, on bool) {
	s.Excused = Apply(s.Excused, Toggle{ID: id, On: on})
}

// Diff computes the minimal update payload: only fields that differ from
// the load-time baseline are included. All three link fields are diffed
// the same way.
func (s *Session) Diff() map[string]any {
	payload := make(map[string]any)
	if s.Notes != s.originalNotes {
		payload[FieldNotes] = s.Notes
	}
	if !s.Present.Equal(s.originalPresent) {
		payload[FieldPresent] = s.Present.IDs()
	}
	if !s.Excused.Equal(s.originalExcused) {
		payload[FieldExcused] = s.Excused.IDs()
	}
	performed := NewSelection(s.Selector.Selected()...)
	if !performed.Equal(s.originalPieces) {
		payload[FieldPieces] = performed.IDs()
	}
	return payload
}

// Save issues one partial update carrying exactly the changed fields. On
// success the baselines advance so an immediate second save is a no-op; on
// failure they stay put so a retry recomputes the same diff.
func (s *Session) Save(ctx context.Context) error {
	payload := s.Diff()
	if len(payload) == 0 {
		return ErrNoChanges
	}

	if _, err := s.db.UpdateRehearsal(ctx, s.RecordID, payload); err != nil {
		return fmt.Errorf("save rehearsal: %w", err)
	}

	if _, ok := payload[FieldNotes]; ok {
		s.originalNotes = s.Notes
	}
	if _, ok := payload[FieldPresent]; ok {
		s.originalPresent = s.Present.Snapshot()
	}
	if _, ok := payload[FieldExcused]; ok {
		s.originalExcused = s.Excused.Snapshot()
	}
	if _, ok := payload[FieldPieces]; ok {
		s.originalPieces = NewSelection(s.Selector.Selected()...)
	}
	return nil
}
