// Package config defines service configuration structures and loading.
//
// Conventions follow the rest of the repo: defaults come from New,
// Load layers an optional YAML file and environment variables on top,
// and validation failures surface as this package's errors.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// LiveBufferSize bounds the snapshot buffer of each live feed
	// subscriber; a full buffer drops snapshots instead of blocking.
	LiveBufferSize int `koanf:"live_buffer_size"`
}

// New creates a Config with defaults. Context is accepted first to
// match the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8090",
		LiveBufferSize: 16,
	}
}
