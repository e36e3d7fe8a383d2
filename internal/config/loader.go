package config

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Env names read by Load.
const (
	EnvPrefix = "BLAUGRANA_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BLAUGRANA_CONFIG is set
//  3. env (prefix BLAUGRANA_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(EnvFile))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file layer.
func LoadFile(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read config file %q", path), ErrLoadConfig)
		}
	}

	// BLAUGRANA_MAX_PLAYER_ROWS -> max_player_rows (flat keys matching koanf tags).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read env"), ErrLoadConfig)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode config"), ErrLoadConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot default away.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return errors.Mark(errors.New("addr must not be empty"), ErrInvalidConfig)
	case c.MaxPlayerRows < 1:
		return errors.Mark(errors.Newf("max_player_rows must be positive, got %d", c.MaxPlayerRows), ErrInvalidConfig)
	case c.ExportWorkers < 1:
		return errors.Mark(errors.Newf("export_workers must be positive, got %d", c.ExportWorkers), ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return errors.Mark(errors.Newf("log_format must be json or console, got %q", c.LogFormat), ErrInvalidConfig)
	}
	if c.DatasetPath != "" {
		if _, err := os.Stat(c.DatasetPath); err != nil {
			return errors.Mark(errors.Wrapf(err, "dataset_path %q", c.DatasetPath), ErrInvalidConfig)
		}
	}
	return nil
}
