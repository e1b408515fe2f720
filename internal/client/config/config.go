// Package config loads runtime settings for the TutorIT CLI.
//
// Sources are layered; later sources take precedence:
//
//	defaults -> JSON file (-c/-config) -> environment -> command-line flags
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds.
package config

import "time"

// Config holds runtime settings for the TutorIT CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - CacheDSN: SQLite DSN of the local cache database.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	CacheDSN            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.CacheDSN = "tutorit.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
