package config

import (
	"flag"
	"os"
	"time"

	"github.com/trackvers/trackvers/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL (e.g., "http://localhost:8080")
//	-l string   local database path
//	-t int      request timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "server base URL")
	fs.StringVar(&config.LocalDBPath, "l", config.LocalDBPath, "local database path")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
