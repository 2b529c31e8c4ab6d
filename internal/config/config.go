package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all process-level configuration, loaded once at startup and
// injected into the server. Handlers never read the environment directly.
type Config struct {
	// EnokiPrivateKey is the sponsor credential used to authenticate against
	// the Enoki API. Required; the process refuses to start without it.
	EnokiPrivateKey string

	// EnokiAPIURL overrides the Enoki base URL, mainly for tests.
	EnokiAPIURL string

	// EnokiTimeout bounds each outbound sponsor/execute call.
	EnokiTimeout time.Duration

	// Port the HTTP server listens on.
	Port string

	// AllowedCallTargets is an optional operator-wide allow-list of move call
	// targets. When set, sponsor requests without explicit targets inherit it
	// and explicit targets must be a subset of it.
	AllowedCallTargets []string
}

const (
	defaultPort         = "3001"
	defaultEnokiTimeout = 30 * time.Second
)

// Load reads configuration from the environment. It returns an error instead
// of exiting so the caller decides how fatal a missing credential is.
func Load() (*Config, error) {
	apiKey := os.Getenv("ENOKI_PRIVATE_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ENOKI_PRIVATE_KEY environment variable is required")
	}

	cfg := &Config{
		EnokiPrivateKey: apiKey,
		EnokiAPIURL:     os.Getenv("ENOKI_API_URL"),
		EnokiTimeout:    defaultEnokiTimeout,
		Port:            defaultPort,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if secs := os.Getenv("ENOKI_TIMEOUT_SECONDS"); secs != "" {
		n, err := strconv.Atoi(secs)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("ENOKI_TIMEOUT_SECONDS must be a positive integer, got %q", secs)
		}
		cfg.EnokiTimeout = time.Duration(n) * time.Second
	}

	if targets := os.Getenv("SPONSOR_ALLOWED_TARGETS"); targets != "" {
		for _, t := range strings.Split(targets, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.AllowedCallTargets = append(cfg.AllowedCallTargets, t)
			}
		}
	}

	return cfg, nil
}
