// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers a YAML file and BLAUGRANA_* env vars over the defaults.
// - External errors are wrapped and marked with this package's sentinels.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoder: json or console.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath overrides the embedded dataset with a JSON file on disk.
	DatasetPath string `koanf:"dataset_path"`

	// MaxPlayerRows caps the aggregated players table and /api/players.
	MaxPlayerRows int `koanf:"max_player_rows"`

	// HTTP server timeouts in milliseconds.
	ReadTimeoutMS     int `koanf:"read_timeout_ms"`
	WriteTimeoutMS    int `koanf:"write_timeout_ms"`
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// MetricsIntervalMS is the system metrics refresh period.
	MetricsIntervalMS int `koanf:"metrics_interval_ms"`

	// ExportWorkers bounds concurrent renders of the static export.
	ExportWorkers int `koanf:"export_workers"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "json",
		Addr:              ":9080",
		MaxPlayerRows:     12,
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		ShutdownTimeoutMS: 30_000,
		MetricsIntervalMS: 10_000,
		ExportWorkers:     4,
	}
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration { return ms(c.ReadTimeoutMS) }

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration { return ms(c.WriteTimeoutMS) }

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration { return ms(c.ShutdownTimeoutMS) }

// MetricsInterval returns MetricsIntervalMS as a duration.
func (c *Config) MetricsInterval() time.Duration { return ms(c.MetricsIntervalMS) }

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }
