package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized reports a rejected bearer token.
var ErrUnauthorized = errors.New("baserow token rejected")

// Tables holds the row table identifiers of the remote database.
type Tables struct {
	Rehearsals int64
	Players    int64
	Pieces     int64
}

// Client provides access to the Baserow database rows API.
type Client struct {
	baseURL    string
	token      string
	tables     Tables
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a Baserow client. The base URL is the API root, conventionally
// ending in /api/.
func New(baseURL, token string, tables Tables, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("baserow base url required")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("baserow api token required")
	}
	if tables.Rehearsals <= 0 || tables.Players <= 0 || tables.Pieces <= 0 {
		return nil, errors.New("baserow table ids must be positive")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		token:      token,
		tables:     tables,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the normalized API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) tableURL(table int64) string {
	return fmt.Sprintf("%sdatabase/rows/table/%d/?user_field_names=true", c.baseURL, table)
}

func (c *Client) rowURL(table, row int64) string {
	return fmt.Sprintf("%sdatabase/rows/table/%d/%d/?user_field_names=true", c.baseURL, table, row)
}

func (c *Client) do(ctx context.Context, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s returned %d: %w", method, target, resp.StatusCode, ErrUnauthorized)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s %s returned %d: %s", method, target, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CheckAuth probes token validity with a GET against the rehearsals table.
func (c *Client) CheckAuth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.tableURL(c.tables.Rehearsals), nil, nil)
}

// ListRehearsals fetches all rehearsal rows.
func (c *Client) ListRehearsals(ctx context.Context) ([]Rehearsal, error) {
	var payload listResponse[Rehearsal]
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.tables.Rehearsals), nil, &payload); err != nil {
		return nil, fmt.Errorf("list rehearsals: %w", err)
	}
	return payload.Results, nil
}

// GetRehearsal fetches one rehearsal row by identifier.
func (c *Client) GetRehearsal(ctx context.Context, id int64) (*Rehearsal, error) {
	if id <= 0 {
		return nil, errors.New("rehearsal id must be positive")
	}
	var payload Rehearsal
	if err := c.do(ctx, http.MethodGet, c.rowURL(c.tables.Rehearsals, id), nil, &payload); err != nil {
		return nil, fmt.Errorf("get rehearsal %d: %w", id, err)
	}
	return &payload, nil
}

// CreateRehearsal inserts a new rehearsal row.
func (c *Client) CreateRehearsal(ctx context.Context, fields map[string]any) (*Rehearsal, error) {
	if len(fields) == 0 {
		return nil, errors.New("rehearsal fields must not be empty")
	}
	var payload Rehearsal
	if err := c.do(ctx, http.MethodPost, c.tableURL(c.tables.Rehearsals), fields, &payload); err != nil {
		return nil, fmt.Errorf("create rehearsal: %w", err)
	}
	return &payload, nil
}

// UpdateRehearsal issues a partial update: only the named fields are
// replaced, everything else on the remote row is untouched.
func (c *Client) UpdateRehearsal(ctx context.Context, id int64, fields map[string]any) (*Rehearsal, error) {
	if id <= 0 {
		return nil, errors.New("rehearsal id must be positive")
	}
	if len(fields) == 0 {
		return nil, errors.New("update fields must not be empty")
	}
	var payload Rehearsal
	if err := c.do(ctx, http.MethodPatch, c.rowURL(c.tables.Rehearsals, id), fields, &payload); err != nil {
		return nil, fmt.Errorf("update rehearsal %d: %w", id, err)
	}
	return &payload, nil
}

// ListPlayers fetches all player rows in their raw shape.
func (c *Client) ListPlayers(ctx context.Context) ([]Player, error) {
	var payload listResponse[Player]
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.tables.Players), nil, &payload); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return payload.Results, nil
}

// ListPieces fetches all piece rows.
func (c *Client) ListPieces(ctx context.Context) ([]Piece, error) {
	var payload listResponse[Piece]
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.tables.Pieces), nil, &payload); err != nil {
		return nil, fmt.Errorf("list pieces: %w", err)
	}
	return payload.Results, nil
}

// CreatePiece inserts a new piece row and returns it with the
// server-assigned identifier.
func (c *Client) CreatePiece(ctx context.Context, fields map[string]any) (*Piece, error) {
	if len(fields) == 0 {
		return nil, errors.New("piece fields must not be empty")
	}
	var payload Piece
	if err := c.do(ctx, http.MethodPost, c.tableURL(c.tables.Pieces), fields, &payload); err != nil {
		return nil, fmt.Errorf("create piece: %w", err)
	}
	return &payload, nil
}
