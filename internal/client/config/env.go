package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for the environment layer. Only variables that are
// actually set override the config; zero values are skipped.
type envConfig struct {
	ServerBaseURL       string `env:"TUTORIT_SERVER_URL"`
	RequestTimeout      int    `env:"TUTORIT_REQUEST_TIMEOUT_SECONDS"`
	OnlineCheckInterval int    `env:"TUTORIT_ONLINE_CHECK_SECONDS"`
	CacheDSN            string `env:"TUTORIT_CACHE_DSN"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		log.Printf("error parsing environment: %s", err.Error())
		return
	}
	applyEnv(cfg, ec)
}

func applyEnv(cfg *Config, ec envConfig) {
	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = secondsToDuration(ec.RequestTimeout)
	}
	if ec.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = secondsToDuration(ec.OnlineCheckInterval)
	}
	if ec.CacheDSN != "" {
		cfg.CacheDSN = ec.CacheDSN
	}
}
