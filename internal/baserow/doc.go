// Package baserow provides the HTTP client for the remote Baserow database
// together with credential resolution and persistence.
//
// All row operations go through the database rows API with user field names
// enabled, authenticated by a bearer token. The resolver discovers the API
// base URL by following a fixed shortlink redirect; the resulting URL and,
// when the user opts in, the token are persisted in a small JSON state file.
//
// Every call is synchronous and carries a context; callers issue one request
// at a time and treat any non-success response as a printable status, never
// as a process failure.
package baserow
