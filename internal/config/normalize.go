package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func (c *Config) normalize() error {
	// The original deployment keeps its secrets in a .env file next to the
	// working directory. Best effort: absence is not an error.
	_ = godotenv.Load()

	c.normalizeBaserow()
	c.normalizeNaming()
	c.normalizeLogging()
	return c.normalizePaths()
}

func (c *Config) normalizeBaserow() {
	if value, ok := os.LookupEnv("SHORTLINK"); ok && strings.TrimSpace(value) != "" {
		c.Baserow.Shortlink = value
	}
	if value, ok := os.LookupEnv("BASEROW_URL"); ok && strings.TrimSpace(value) != "" {
		c.Baserow.BaseURL = value
	}
	if value, ok := os.LookupEnv("API_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.Baserow.APIToken = value
	}
	c.Baserow.Shortlink = strings.TrimSpace(c.Baserow.Shortlink)
	c.Baserow.BaseURL = strings.TrimSpace(c.Baserow.BaseURL)
	c.Baserow.APIToken = strings.TrimSpace(c.Baserow.APIToken)
	if c.Baserow.RequestTimeout == 0 {
		c.Baserow.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeNaming() {
	c.Naming.Marker = strings.TrimSpace(c.Naming.Marker)
	if c.Naming.Marker == "" {
		c.Naming.Marker = defaultNamingMarker
	}
	c.Naming.ExcludeMarker = strings.TrimSpace(c.Naming.ExcludeMarker)
	if c.Naming.PadWidth == 0 {
		c.Naming.PadWidth = defaultPadWidth
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StatePath) == "" {
		c.Paths.StatePath = defaultStatePath
	}
	var err error
	if c.Paths.StatePath, err = expandPath(c.Paths.StatePath); err != nil {
		return fmt.Errorf("paths.state_path: %w", err)
	}
	return nil
}
