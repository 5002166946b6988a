package baserow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"probenbuch/internal/config"
)

// Configuration errors surfaced before any network call is attempted.
var (
	ErrMissingBaseURL = errors.New("baserow base url not configured; run `probenbuch login` to resolve it")
	ErrMissingToken   = errors.New("api token not configured; run `probenbuch login --token <token>`")
)

func tablesFromConfig(cfg *config.Config) Tables {
	return Tables{
		Rehearsals: cfg.Baserow.RehearsalsTable,
		Players:    cfg.Baserow.PlayersTable,
		Pieces:     cfg.Baserow.PiecesTable,
	}
}

func requestTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Baserow.RequestTimeout) * time.Second
}

// Login validates the token against the remote database and persists the
// resolved base URL. The token itself is only persisted when save is set.
// The base URL is taken from config, then the saved state, then discovered
// through the shortlink.
func Login(ctx context.Context, cfg *config.Config, store StateStore, token string, save bool) (*Client, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	if token == "" {
		token = cfg.Baserow.APIToken
	}
	if token == "" {
		token = state.Token
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	baseURL := cfg.Baserow.BaseURL
	if baseURL == "" {
		baseURL = state.BaseURL
	}
	if baseURL == "" {
		resolved, err := ResolveBaseURL(ctx, &http.Client{Timeout: 5 * time.Second}, cfg.Baserow.Shortlink)
		if err != nil {
			return nil, fmt.Errorf("discover base url: %w", err)
		}
		baseURL = resolved
	}

	client, err := New(baseURL, token, tablesFromConfig(cfg), WithTimeout(requestTimeout(cfg)))
	if err != nil {
		return nil, err
	}
	if err := client.CheckAuth(ctx); err != nil {
		return nil, err
	}

	state.BaseURL = client.BaseURL()
	if save {
		state.Token = token
	}
	if err := store.Save(state); err != nil {
		return nil, err
	}
	return client, nil
}

// Logout clears the persisted token while keeping the resolved base URL.
func Logout(store StateStore) error {
	state, err := store.Load()
	if err != nil {
		return err
	}
	state.Token = ""
	return store.Save(state)
}

// ClientFromConfig builds a client from configuration and saved state
// without touching the network. Missing credentials surface as
// ErrMissingBaseURL or ErrMissingToken.
func ClientFromConfig(cfg *config.Config, store StateStore) (*Client, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.Baserow.BaseURL
	if baseURL == "" {
		baseURL = state.BaseURL
	}
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	token := cfg.Baserow.APIToken
	if token == "" {
		token = state.Token
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	return New(baseURL, token, tablesFromConfig(cfg), WithTimeout(requestTimeout(cfg)))
}
