package rehearsal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"probenbuch/internal/baserow"
)

// ErrDuplicateDate refuses creation of a second rehearsal on the same date.
var ErrDuplicateDate = errors.New("rehearsal for this date already exists")

var numberPattern = regexp.MustCompile(`\d+`)

// Lister is the read side the namer needs.
type Lister interface {
	ListRehearsals(ctx context.Context) ([]baserow.Rehearsal, error)
}

// Creator extends Lister with row insertion.
type Creator interface {
	Lister
	CreateRehearsal(ctx context.Context, fields map[string]any) (*baserow.Rehearsal, error)
}

// ProposeName derives the next rehearsal name from the most recent ordinary
// rehearsal: records whose name contains the marker and not the exclusion
// marker, ordered by date descending (ISO dates compare correctly as
// strings). The first numeric token is incremented and re-padded; a name
// without digits gets a fresh counter appended. The second return value is
// false when no ordinary rehearsal exists.
func ProposeName(records []baserow.Rehearsal, marker, exclude string, padWidth int) (string, bool) {
	var candidates []baserow.Rehearsal
	for _, record := range records {
		if !strings.Contains(record.Name, marker) {
			continue
		}
		if exclude != "" && strings.Contains(record.Name, exclude) {
			continue
		}
		candidates = append(candidates, record)
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date > candidates[j].Date
	})
	latest := candidates[0].Name

	match := numberPattern.FindString(latest)
	if match == "" {
		return latest + fmt.Sprintf(" %0*d", padWidth, 1), true
	}
	number, err := strconv.Atoi(match)
	if err != nil {
		return latest + fmt.Sprintf(" %0*d", padWidth, 1), true
	}
	replaced := false
	next := numberPattern.ReplaceAllStringFunc(latest, func(s string) string {
		if replaced {
			return s
		}
		replaced = true
		return fmt.Sprintf("%0*d", padWidth, number+1)
	})
	return next, true
}

// Create inserts a new rehearsal after re-fetching the collection and
// refusing an exact date match. Exactly one POST is issued on the happy
// path, none when the guard trips.
func Create(ctx context.Context, db Creator, name, date string) (*baserow.Rehearsal, error) {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	if name == "" || date == "" {
		return nil, errors.New("name and date must be set")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date %q is not an ISO date: %w", date, err)
	}

	existing, err := db.ListRehearsals(ctx)
	if err != nil {
		return nil, fmt.Errorf("check existing rehearsals: %w", err)
	}
	for _, record := range existing {
		if record.Date == date {
			return nil, fmt.Errorf("%q (%s): %w", record.Name, date, ErrDuplicateDate)
		}
	}

	created, err := db.CreateRehearsal(ctx, map[string]any{"Name": name, "Datum": date})
	if err != nil {
		return nil, err
	}
	return created, nil
}
