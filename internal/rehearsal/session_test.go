package rehearsal_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"probenbuch/internal/baserow"
	"probenbuch/internal/rehearsal"
)

type fakeDB struct {
	record  *baserow.Rehearsal
	players []baserow.Player
	pieces  []baserow.Piece

	getErr     error
	playersErr error
	piecesErr  error
	updateErr  error

	updates []map[string]any
}

func (f *fakeDB) GetRehearsal(ctx context.Context, id int64) (*baserow.Rehearsal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.record, nil
}

func (f *fakeDB) ListPlayers(ctx context.Context) ([]baserow.Player, error) {
	if f.playersErr != nil {
		return nil, f.playersErr
	}
	return f.players, nil
}

func (f *fakeDB) ListPieces(ctx context.Context) ([]baserow.Piece, error) {
	if f.piecesErr != nil {
		return nil, f.piecesErr
	}
	return f.pieces, nil
}

func (f *fakeDB) UpdateRehearsal(ctx context.Context, id int64, fields map[string]any) (*baserow.Rehearsal, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, fields)
	return f.record, nil
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		record: &baserow.Rehearsal{
			ID:      7,
			Name:    "Probe 012",
			Date:    "2026-03-02",
			Notes:   "alte Notizen",
			Present: []baserow.LinkRef{{ID: 1, Value: "Anna Bauer"}, {ID: 2, Value: "Ben Bauer"}},
			Excused: []baserow.LinkRef{{ID: 3, Value: "Clara Zimmer"}},
			Pieces:  []baserow.LinkRef{{ID: 10, Value: "Marsch"}},
		},
		players: []baserow.Player{
			{"id": float64(1), "Vorname": "Anna", "Nachname": "Bauer"},
			{"id": float64(2), "Vorname": "Ben", "Nachname": "Bauer"},
			{"id": float64(3), "Name": "Clara Zimmer"},
			{"id": float64(4), "Name": "404"},
		},
		pieces: []baserow.Piece{
			{ID: 10, Name: "Marsch", Folder: "Rotes Heft", Page: "12"},
			{ID: 11, Name: "Polka"},
		},
	}
}

func loadTestSession(t *testing.T, db *fakeDB) *rehearsal.Session {
	t.Helper()
	session, err := rehearsal.LoadSession(context.Background(), db, 7, nil)
	if err != nil {
		t.Fatalf("LoadSession returned error: %v", err)
	}
	return session
}

func TestLoadSessionBuildsStateAndBaselines(t *testing.T) {
	session := loadTestSession(t, newFakeDB())

	if session.Name != "Probe 012" || session.Notes != "alte Notizen" {
		t.Fatalf("unexpected session header: %+v", session)
	}
	// The numeric-only player is filtered out.
	if len(session.Roster) != 3 {
		t.Fatalf("expected 3 roster entries, got %d", len(session.Roster))
	}
	if !session.Present.Equal(rehearsal.NewSelection(1, 2)) {
		t.Fatalf("unexpected present selection: %v", session.Present.IDs())
	}
	if !session.Excused.Equal(rehearsal.NewSelection(3)) {
		t.Fatalf("unexpected excused selection: %v", session.Excused.IDs())
	}
	if got := session.Selector.Selected(); len(got) != 1 || got[0] != 10 {
		t.Fatalf("unexpected piece selection: %v", got)
	}
	if diff := session.Diff(); len(diff) != 0 {
		t.Fatalf("fresh session must have an empty diff, got %v", diff)
	}
}

func TestLoadSessionPropagatesFetchErrors(t *testing.T) {
	for name, mutate := range map[string]func(*fakeDB){
		"record":  func(db *fakeDB) { db.getErr = errors.New("record fetch failed") },
		"players": func(db *fakeDB) { db.playersErr = errors.New("players fetch failed") },
		"pieces":  func(db *fakeDB) { db.piecesErr = errors.New("pieces fetch failed") },
	} {
		t.Run(name, func(t *testing.T) {
			db := newFakeDB()
			mutate(db)
			if _, err := rehearsal.LoadSession(context.Background(), db, 7, nil); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func TestSaveNoChangesIssuesNoCall(t *testing.T) {
	db := newFakeDB()
	session := loadTestSession(t, db)

	err := session.Save(context.Background())
	if !errors.Is(err, rehearsal.ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
	if len(db.updates) != 0 {
		t.Fatalf("no network call expected, got %d", len(db.updates))
	}
}

func TestSaveSingleChangedFieldOnly(t *testing.T) {
	db := newFakeDB()
	session := loadTestSession(t, db)
	session.Notes = "neue Notizen"

	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if len(db.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(db.updates))
	}
	payload := db.updates[0]
	if len(payload) != 1 {
		t.Fatalf("expected exactly one field, got %v", payload)
	}
	if payload[rehearsal.FieldNotes] != "neue Notizen" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestSaveDiffsAllThreeSelectionsUniformly(t *testing.T) {
	db := newFakeDB()
	session := loadTestSession(t, db)

	// An untouched non-empty piece selection must stay out of the payload
	// while attendance changes.
	session.TogglePresent(3, true)
	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	payload := db.updates[0]
	if _, ok := payload[rehearsal.FieldPieces]; ok {
		t.Fatalf("unchanged piece selection leaked into payload: %v", payload)
	}
	got, ok := payload[rehearsal.FieldPresent].([]int64)
	if !ok || !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("unexpected present payload: %v", payload[rehearsal.FieldPresent])
	}
}

func TestSavePieceSelectionChange(t *testing.T) {
	db := newFakeDB()
	session := loadTestSession(t, db)
	session.Selector.Select(11)

	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	payload := db.updates[0]
	if len(payload) != 1 {
		t.Fatalf("expected only the pieces field, got %v", payload)
	}
	got := payload[rehearsal.FieldPieces].([]int64)
	if !reflect.DeepEqual(got, []int64{10, 11}) {
		t.Fatalf("unexpected pieces payload: %v", got)
	}
}

func TestSaveAdvancesBaselines(t *testing.T) {
	db := newFakeDB()
	session := loadTestSession(t, db)
	session.Notes = "neu"
	session.ToggleExcused(3, false)

	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	if err := session.Save(context.Background()); !errors.Is(err, rehearsal.ErrNoChanges) {
		t.Fatalf("second save must be a no-op, got %v", err)
	}
	if len(db.updates) != 1 {
		t.Fatalf("expected a single update, got %d", len(db.updates))
	}
}

func TestSaveFailureKeepsBaselines(t *testing.T) {
	db := newFakeDB()
	session := loadTestSession(t, db)
	session.Notes = "neu"
	db.updateErr = errors.New("remote down")

	if err := session.Save(context.Background()); err == nil {
		t.Fatal("expected save error")
	}

	// Retry recomputes the same diff once the remote recovers.
	db.updateErr = nil
	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if len(db.updates) != 1 || db.updates[0][rehearsal.FieldNotes] != "neu" {
		t.Fatalf("unexpected retry payload: %v", db.updates)
	}
}

func TestToggleReducersRoundTrip(t *testing.T) {
	session := loadTestSession(t, newFakeDB())
	session.TogglePresent(1, false)
	session.TogglePresent(1, true)
	session.ToggleExcused(3, false)
	session.ToggleExcused(3, true)
	if diff := session.Diff(); len(diff) != 0 {
		t.Fatalf("round-trip toggles must cancel out, got %v", diff)
	}
}
