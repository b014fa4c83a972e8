package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/avoronov/ledgerd/internal/api"
	"github.com/avoronov/ledgerd/internal/infra/logging"
	"github.com/avoronov/ledgerd/internal/infra/pgutils"
	pgaccounts "github.com/avoronov/ledgerd/internal/repos/accounts/postgres"
	pgtransfers "github.com/avoronov/ledgerd/internal/repos/transfers/postgres"
	"github.com/avoronov/ledgerd/internal/scheduler"
	"github.com/avoronov/ledgerd/internal/services/ledger"
	"github.com/avoronov/ledgerd/pkg/envconf"
	"github.com/avoronov/ledgerd/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON("api", cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close database pool")

		return db.Close()
	})

	ledgerSvc := ledger.New(db, pgaccounts.New(db), pgtransfers.New(db))

	// --- Transfer scheduler ---
	schedCtx, schedStop := context.WithCancel(context.Background())
	sched := scheduler.New(cfg.DrainInterval, ledgerSvc.DrainPending)

	go sched.Run(schedCtx)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Stop transfer scheduler")
		schedStop()

		err := sched.Wait(c)
		if err != nil {
			return fmt.Errorf("wait scheduler: %w", err)
		}

		return nil
	})

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, ledgerSvc)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
