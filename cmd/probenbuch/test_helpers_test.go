package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeBaserow is an in-memory table server speaking just enough of the rows
// API for the CLI commands under test.
type fakeBaserow struct {
	mu         sync.Mutex
	rehearsals []map[string]any
	players    []map[string]any
	pieces     []map[string]any
	nextID     int64
	patches    []map[string]any
}

func newFakeBaserow() *fakeBaserow {
	return &fakeBaserow{nextID: 1000}
}

func (f *fakeBaserow) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/database/rows/table/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/database/rows/table/"), "/")
		parts := strings.Split(rest, "/")
		table, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		rows := f.tableRows(table)
		if rows == nil {
			http.NotFound(w, r)
			return
		}

		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			writeJSON(w, map[string]any{"count": len(*rows), "results": *rows})
		case len(parts) == 1 && r.Method == http.MethodPost:
			var fields map[string]any
			if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.nextID++
			fields["id"] = f.nextID
			*rows = append(*rows, fields)
			writeJSON(w, fields)
		case len(parts) == 2:
			rowID, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			row := findRow(*rows, rowID)
			if row == nil {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				writeJSON(w, row)
			case http.MethodPatch:
				var fields map[string]any
				if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				f.patches = append(f.patches, fields)
				for k, v := range fields {
					row[k] = linkifyField(k, v)
				}
				writeJSON(w, row)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

func (f *fakeBaserow) tableRows(table int64) *[]map[string]any {
	switch table {
	case 749:
		return &f.rehearsals
	case 495:
		return &f.players
	case 747:
		return &f.pieces
	}
	return nil
}

func findRow(rows []map[string]any, id int64) map[string]any {
	for _, row := range rows {
		if rid, ok := row["id"].(int); ok && int64(rid) == id {
			return row
		}
		if rid, ok := row["id"].(int64); ok && rid == id {
			return row
		}
		if rid, ok := row["id"].(float64); ok && int64(rid) == id {
			return row
		}
	}
	return nil
}

// linkifyField mirrors Baserow's response shape for link-row fields: requests
// carry plain row-ID lists, responses carry {id, value} objects.
func linkifyField(field string, v any) any {
	switch field {
	case "dabei waren", "entschuldigt", "aufgef. Stücke":
	default:
		return v
	}
	ids, ok := v.([]any)
	if !ok {
		return v
	}
	links := make([]any, 0, len(ids))
	for _, id := range ids {
		n, ok := id.(float64)
		if !ok {
			return v
		}
		links = append(links, map[string]any{"id": int64(n), "value": ""})
	}
	return links
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type cliTestEnv struct {
	server     *fakeBaserow
	configPath string
	statePath  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	fake := newFakeBaserow()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	base := t.TempDir()
	t.Chdir(base)
	t.Setenv("HOME", base)
	t.Setenv("SHORTLINK", "")
	t.Setenv("BASEROW_URL", "")
	t.Setenv("API_TOKEN", "")

	statePath := filepath.Join(base, "auth.json")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[baserow]
base_url = %q
api_token = "test-token"

[paths]
state_path = %q

[logging]
level = "error"
`, srv.URL+"/api/", statePath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{server: fake, configPath: configPath, statePath: statePath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
