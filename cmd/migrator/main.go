// Command migrator applies the ledger schema migrations and, when
// APP_ENV=DEV, the seed accounts used for local development.
package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/avoronov/ledgerd/internal/infra/logging"
	"github.com/avoronov/ledgerd/pkg/envconf"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

//go:embed test_data/*.sql
var seedFS embed.FS

type migratorConfig struct {
	DSN      string     `env:"PG_DSN"`
	LogLevel slog.Level `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	AppEnv   string     `env:"APP_ENV" envDefault:""`
}

func main() {
	if err := run(); err != nil {
		slog.Error("migrator failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrator done")
}

func run() error {
	_ = godotenv.Load()

	cfg := new(migratorConfig)
	if err := envconf.Load(cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.SetupJSON("migrator", cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	//nolint:errcheck
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("init postgres driver: %w", err)
	}

	if err := apply(driver, schemaFS, "migrations", "schema"); err != nil {
		return err
	}

	// Seed data lives in a separate migration sequence so production
	// databases never see it.
	if cfg.AppEnv == "DEV" {
		if err := apply(driver, seedFS, "test_data", "dev seed"); err != nil {
			return err
		}
	}

	return nil
}

func apply(driver database.Driver, fsys embed.FS, dir, label string) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("%s source: %w", label, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%s migrate instance: %w", label, err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("migrations already current", "set", label)
	case err != nil:
		return fmt.Errorf("apply %s migrations: %w", label, err)
	default:
		version, _, verr := m.Version()
		if verr != nil {
			return fmt.Errorf("read %s migration version: %w", label, verr)
		}
		slog.Info("migrations applied", "set", label, "version", version)
	}

	return nil
}
