package baserow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const loginSuffix = "/login"

// ResolveBaseURL follows the shortlink redirect chain and shapes the final
// URL into an API root: a trailing /login is stripped and /api/ is ensured.
// Nothing is persisted here; callers decide whether the result is saved.
func ResolveBaseURL(ctx context.Context, client *http.Client, shortlink string) (string, error) {
	shortlink = strings.TrimSpace(shortlink)
	if shortlink == "" {
		return "", errors.New("shortlink required")
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortlink, nil)
	if err != nil {
		return "", fmt.Errorf("build shortlink request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("follow shortlink: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortlink returned %d", resp.StatusCode)
	}

	final := resp.Request.URL.String()
	return ShapeBaseURL(final), nil
}

// ShapeBaseURL normalizes a discovered URL into the API root form.
func ShapeBaseURL(raw string) string {
	shaped := strings.TrimSpace(raw)
	shaped = strings.TrimSuffix(shaped, loginSuffix)
	if !strings.HasSuffix(shaped, "/api/") {
		shaped = strings.TrimRight(shaped, "/") + "/api/"
	}
	return shaped
}
