package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tutorit/internal/flagx"
)

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the backend server (default from Config)
//	-t int      per-request timeout in seconds (default from Config)
//	-i int      online check interval in seconds (default from Config)
//	-d string   local cache database DSN (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-i", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "base URL of the backend server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "per-request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "local cache database DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = secondsToDuration(*requestTimeout)
	cfg.OnlineCheckInterval = secondsToDuration(*onlineCheckInterval)
}
