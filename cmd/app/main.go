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
	"time"

	"donation/cmd"
	_ "donation/docs"
	httpadapter "donation/internal/adapters/in/http"
	"donation/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, ".env")
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

// run owns every resource of the process and releases them before returning,
// so main only has to turn the error into an exit status.
func run(ctx context.Context, envFile string) error {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	gormDB, err := postgres.Open(configs.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("starting jobs: %w", err)
	}
	defer jobManager.StopAll()

	logger.Info("Starting donation service",
		"port", configs.HTTPPort,
		"pickup_embargo", app.PickupEmbargo().String(),
		"conflict_retries", configs.ConflictRetries,
		"lock_timeout", configs.LockTimeout.String(),
	)
	return startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	tokens, err := app.CreateTokenService()
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(tokens), tokens, logger)
	if err != nil {
		return fmt.Errorf("creating router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
