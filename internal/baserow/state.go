package baserow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// State holds the persisted credential material: the resolved API base URL
// and, when the user opted to save it, the bearer token.
type State struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token,omitempty"`
}

// StateStore abstracts persistence for credential state.
type StateStore interface {
	Load() (State, error)
	Save(State) error
}

// FileStateStore writes credential state to a JSON file on disk.
type FileStateStore struct {
	path string
}

// NewFileStateStore builds a FileStateStore rooted at the provided path.
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// Load reads credential state from disk. A missing file resolves to an
// empty state.
func (s *FileStateStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read auth state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("decode auth state: %w", err)
	}
	return state, nil
}

// Save persists credential state with restricted permissions. An exclusive
// file lock guards against a concurrent probenbuch process clobbering the
// file mid-write.
func (s *FileStateStore) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure auth state directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock auth state: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode auth state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write auth state: %w", err)
	}
	return nil
}
