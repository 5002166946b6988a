package baserow

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LinkRef is one entry of a Baserow link-row field.
type LinkRef struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// FlexString decodes a JSON string or number into a string. Baserow text
// fields occasionally carry numeric values (page numbers typed as numbers),
// and a malformed cell should degrade to its textual form rather than fail
// the whole row.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = FlexString(strings.Trim(trimmed, `"`))
	return nil
}

func (f FlexString) String() string { return string(f) }

// Rehearsal mirrors a row of the rehearsals table with user field names.
type Rehearsal struct {
	ID      int64      `json:"id"`
	Name    string     `json:"Name"`
	Date    string     `json:"Datum"`
	Notes   FlexString `json:"Notes"`
	Present []LinkRef  `json:"dabei waren"`
	Excused []LinkRef  `json:"entschuldigt"`
	Pieces  []LinkRef  `json:"aufgef. Stücke"`
}

// Piece mirrors a row of the pieces table with user field names.
type Piece struct {
	ID       int64      `json:"id"`
	Name     string     `json:"Name"`
	Folder   FlexString `json:"Heft/Noten"`
	Page     FlexString `json:"Seite"`
	Composer FlexString `json:"Komponist"`
}

// Player rows keep their raw shape: the name fields vary per deployment and
// the display name is derived downstream.
type Player map[string]any

// PlayerID extracts the row identifier from a raw player record, tolerating
// the float64 shape JSON numbers decode to.
func (p Player) PlayerID() int64 {
	switch v := p["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0
		}
		return id
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}
