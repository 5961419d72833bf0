// Package config centralizes process configuration. Values layer
// defaults, an optional YAML file named by THEMIS_CONFIG, and
// THEMIS_-prefixed environment variables, highest last.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `koanf:"service_name"`
	HTTPPort    string `koanf:"http_port"`
	PostgresDSN string `koanf:"postgres_dsn"`
	LogLevel    string `koanf:"log_level"`

	TokenSecret string        `koanf:"token_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	TokenIssuer string        `koanf:"token_issuer"`

	OutboxPollInterval time.Duration `koanf:"outbox_poll_interval"`
	OutboxBatchSize    int           `koanf:"outbox_batch_size"`
}

func defaults() Config {
	return Config{
		ServiceName:        "themis",
		HTTPPort:           "8080",
		LogLevel:           "info",
		TokenSecret:        "dev-only-secret",
		TokenTTL:           24 * time.Hour,
		TokenIssuer:        "themis",
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    100,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if THEMIS_CONFIG is set
//  3. env (prefix THEMIS_)
func Load() (Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if path := os.Getenv("THEMIS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, err
		}
	}

	// THEMIS_HTTP_PORT -> http_port, matching koanf tags on the struct.
	envProvider := env.Provider("THEMIS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "themis_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}

	if cfg.HTTPPort == "" {
		return Config{}, errors.New("http_port must not be empty")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("token_secret must not be empty")
	}
	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = defaults().OutboxBatchSize
	}
	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = defaults().OutboxPollInterval
	}
	return cfg, nil
}
