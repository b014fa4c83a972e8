package main

import (
	"log/slog"
	"time"

	"github.com/avoronov/ledgerd/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DrainInterval   time.Duration `env:"APP_DRAIN_INTERVAL" envDefault:"5s"`
	Postgres        config.PostgresConfig
}
