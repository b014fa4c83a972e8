package envconf

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

type testConfig struct {
	Port     uint16        `env:"TEST_PORT"`
	Level    slog.Level    `env:"TEST_LOG_LEVEL" envDefault:"INFO"`
	Interval time.Duration `env:"TEST_INTERVAL" envDefault:"5s"`
	Nested   nestedConfig
}

type nestedConfig struct {
	DSN string `env:"TEST_DSN"`
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TEST_PORT", "8080")
	t.Setenv("TEST_LOG_LEVEL", "DEBUG")
	t.Setenv("TEST_INTERVAL", "250ms")
	t.Setenv("TEST_DSN", "postgres://localhost/app")

	cfg := new(testConfig)

	err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port: want 8080, got %d", cfg.Port)
	}
	if cfg.Level != slog.LevelDebug {
		t.Errorf("Level: want DEBUG, got %v", cfg.Level)
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Errorf("Interval: want 250ms, got %v", cfg.Interval)
	}
	if cfg.Nested.DSN != "postgres://localhost/app" {
		t.Errorf("Nested.DSN: got %q", cfg.Nested.DSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_DSN", "postgres://localhost/app")

	cfg := new(testConfig)

	err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Level != slog.LevelInfo {
		t.Errorf("Level default: want INFO, got %v", cfg.Level)
	}
	if cfg.Interval != 5*time.Second {
		t.Errorf("Interval default: want 5s, got %v", cfg.Interval)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("TEST_DSN", "postgres://localhost/app")
	// TEST_PORT has no default and is not set.

	cfg := new(testConfig)

	err := Load(cfg)
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
}
