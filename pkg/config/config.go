// Package config provides TOML-based configuration for tvpulse.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Refresh RefreshConfig `toml:"refresh"`
	Display DisplayConfig `toml:"display"`
}

// ServerConfig locates the TVheadend backend.
type ServerConfig struct {
	// URL is the server root, e.g. "http://recorder:9981".
	URL string `toml:"url"`

	// Timeout bounds each request. Zero disables the timeout.
	Timeout Duration `toml:"timeout"`
}

// RefreshConfig tunes the polling behavior.
type RefreshConfig struct {
	// TickInterval is the clock cadence driving redraws and the
	// program-expiry check.
	TickInterval Duration `toml:"tick_interval"`

	// EPGLimit caps the EPG grid fetch.
	EPGLimit int `toml:"epg_limit"`
}

// DisplayConfig tunes presentation.
type DisplayConfig struct {
	// Timezone is an IANA zone name for start-time labels ("" = local).
	Timezone string `toml:"timezone"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:9981",
		},
		Refresh: RefreshConfig{
			TickInterval: Duration{time.Second},
			EPGLimit:     500,
		},
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.Server.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url %q must be http or https", c.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("server url %q has no host", c.Server.URL)
	}
	if c.Refresh.TickInterval.Duration <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.Refresh.EPGLimit < 0 {
		return fmt.Errorf("epg_limit must not be negative")
	}
	return nil
}
