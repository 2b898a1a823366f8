// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the TrackVers client.
//
// Fields:
//   - ServerBaseURL: base URL of the TrackVers API (no trailing slash).
//   - LocalDBPath: path of the local SQLite file holding anonymous
//     favorites, the tutorial flag, and persisted session tokens.
//   - RequestTimeout: per-request timeout for gateway calls.
type Config struct {
	ServerBaseURL  string
	LocalDBPath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.LocalDBPath = "trackvers.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
