// Package config loads, normalizes, and validates probenbuch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the .env contract of the
// original deployment: SHORTLINK, BASEROW_URL, and API_TOKEN environment
// values override the file. The Config type centralizes every knob the CLI
// needs, so table IDs, naming markers, and credential locations are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
