package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "themis" {
		t.Fatalf("expected default service name themis, got %s", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token ttl 24h, got %s", cfg.TokenTTL)
	}
	if cfg.OutboxBatchSize != 100 {
		t.Fatalf("expected default batch size 100, got %d", cfg.OutboxBatchSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("THEMIS_HTTP_PORT", "9999")
	t.Setenv("THEMIS_LOG_LEVEL", "debug")
	t.Setenv("THEMIS_POSTGRES_DSN", "postgres://localhost/judging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "9999" {
		t.Fatalf("expected env port override, got %s", cfg.HTTPPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level override, got %s", cfg.LogLevel)
	}
	if cfg.PostgresDSN != "postgres://localhost/judging" {
		t.Fatalf("expected env dsn override, got %s", cfg.PostgresDSN)
	}
}
