package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"

	"github.com/BrandonDHaskell/makerspace-crm/internal/config"
	"github.com/BrandonDHaskell/makerspace-crm/internal/db"
	"github.com/BrandonDHaskell/makerspace-crm/internal/grpcapi"
	"github.com/BrandonDHaskell/makerspace-crm/internal/httpapi"
	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	mlog.Configure(mlog.Config{Level: cfg.LogLevel, Pretty: cfg.Env == "dev"})
	logger := mlog.WithComponent("main")
	logger.Info().Str("env", cfg.Env).Str("db_path", cfg.DBPath).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, setupDI(cfg), logger); err != nil {
		logger.Error().Err(err).Msg("server exited")
		stop()
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.Config, injector do.Injector, logger zerolog.Logger) error {
	conn, err := do.Invoke[*sql.DB](injector)
	if err != nil {
		return err
	}
	defer conn.Close()

	writer := do.MustInvoke[*db.Worker](injector)
	defer writer.Close()

	httpSrv, err := do.Invoke[*httpapi.Server](injector)
	if err != nil {
		return err
	}
	pruner := do.MustInvoke[*service.AccessLogPruner](injector)

	g, ctx := errgroup.WithContext(ctx)

	pruner.Start(ctx)
	defer pruner.Stop()

	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	var grpcSrv *grpcapi.Server
	if cfg.GRPCAddr != "" {
		grpcSrv = do.MustInvoke[*grpcapi.Server](injector)
		g.Go(grpcSrv.Start)
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if grpcSrv != nil {
			grpcSrv.Shutdown(shutdownCtx)
		}
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
