package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Credentials are deliberately
// not required here: their absence is surfaced by the command that needs
// them, before any network call is attempted.
func (c *Config) Validate() error {
	if err := c.validateBaserow(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateBaserow() error {
	if c.Baserow.RequestTimeout <= 0 {
		return errors.New("baserow.request_timeout must be positive")
	}
	for name, id := range map[string]int64{
		"baserow.rehearsals_table": c.Baserow.RehearsalsTable,
		"baserow.players_table":    c.Baserow.PlayersTable,
		"baserow.pieces_table":     c.Baserow.PiecesTable,
	} {
		if id <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) validateNaming() error {
	if c.Naming.Marker == "" {
		return errors.New("naming.marker must be set")
	}
	if c.Naming.PadWidth <= 0 {
		return errors.New("naming.pad_width must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
