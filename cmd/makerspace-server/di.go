package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/samber/do/v2"

	"github.com/BrandonDHaskell/makerspace-crm/internal/config"
	"github.com/BrandonDHaskell/makerspace-crm/internal/db"
	"github.com/BrandonDHaskell/makerspace-crm/internal/grpcapi"
	"github.com/BrandonDHaskell/makerspace-crm/internal/httpapi"
	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/service"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store/sqlite"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
)

const databaseInitTimeout = 15 * time.Second

func setupDI(cfg config.Config) do.Injector {
	injector := do.New()
	do.ProvideValue(injector, cfg)

	registerStorage(injector)
	registerServices(injector)
	registerServers(injector)
	return injector
}

func registerStorage(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*sql.DB, error) {
		cfg := do.MustInvoke[config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()

		conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if cfg.Env == "dev" {
			if err := db.SeedDev(ctx, conn, db.SeedDevOptions{Controllers: cfg.SeedControllers()}); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("seed dev database: %w", err)
			}
		}
		return conn, nil
	})
	do.Provide(injector, func(i do.Injector) (*db.Worker, error) {
		return db.NewWorker(do.MustInvoke[*sql.DB](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*sqlite.PersonStore, error) {
		return sqlite.NewPersonStore(do.MustInvoke[*sql.DB](i), do.MustInvoke[*db.Worker](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*sqlite.KeyCardStore, error) {
		return sqlite.NewKeyCardStore(do.MustInvoke[*sql.DB](i), do.MustInvoke[*db.Worker](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*sqlite.AccessLogStore, error) {
		return sqlite.NewAccessLogStore(do.MustInvoke[*sql.DB](i), do.MustInvoke[*db.Worker](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*sqlite.ControllerStore, error) {
		return sqlite.NewControllerStore(do.MustInvoke[*sql.DB](i), do.MustInvoke[*db.Worker](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*sqlite.CatalogStore, error) {
		return sqlite.NewCatalogStore(do.MustInvoke[*sql.DB](i), do.MustInvoke[*db.Worker](i)), nil
	})
}

func registerServices(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*service.AccessLogService, error) {
		return service.NewAccessLogService(
			do.MustInvoke[*sqlite.AccessLogStore](i),
			do.MustInvoke[*sqlite.KeyCardStore](i),
			do.MustInvoke[*sqlite.PersonStore](i),
			service.NewControllerRegistry(do.MustInvoke[*sqlite.ControllerStore](i)),
			mlog.Base(),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*service.HoursService, error) {
		cfg := do.MustInvoke[config.Config](i)
		return service.NewHoursService(
			do.MustInvoke[*sqlite.AccessLogStore](i),
			do.MustInvoke[*sqlite.PersonStore](i),
			service.HoursConfig{
				Readers: volunteer.Readers{
					CheckIn:  volunteer.Reader{Controller: cfg.CheckInController, Door: cfg.CheckInDoor},
					CheckOut: volunteer.Reader{Controller: cfg.CheckOutController, Door: cfg.CheckOutDoor},
				},
				IncludeDenied: cfg.HoursIncludeDenied,
				MaxEvents:     cfg.HoursMaxEvents,
			},
			mlog.Base(),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*service.PeopleService, error) {
		return service.NewPeopleService(do.MustInvoke[*sqlite.PersonStore](i), mlog.Base()), nil
	})
	do.Provide(injector, func(i do.Injector) (*service.KeyCardService, error) {
		return service.NewKeyCardService(do.MustInvoke[*sqlite.KeyCardStore](i), do.MustInvoke[*sqlite.PersonStore](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*service.CatalogService, error) {
		return service.NewCatalogService(do.MustInvoke[*sqlite.CatalogStore](i), do.MustInvoke[*sqlite.PersonStore](i), mlog.Base()), nil
	})
	do.Provide(injector, func(i do.Injector) (*service.AccessLogPruner, error) {
		cfg := do.MustInvoke[config.Config](i)
		return service.NewAccessLogPruner(do.MustInvoke[*sqlite.AccessLogStore](i), service.PrunerConfig{
			RetentionDays: cfg.AccessLogRetentionDays,
			IntervalHours: cfg.PruneIntervalHours,
		}, mlog.Base()), nil
	})
}

func registerServers(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*httpapi.Server, error) {
		cfg := do.MustInvoke[config.Config](i)
		return httpapi.NewServer(httpapi.Dependencies{
			Logger:       mlog.Base(),
			Addr:         cfg.HTTPAddr,
			RateLimitRPM: cfg.RateLimitRPM,
			AccessLog:    do.MustInvoke[*service.AccessLogService](i),
			Hours:        do.MustInvoke[*service.HoursService](i),
			People:       do.MustInvoke[*service.PeopleService](i),
			KeyCards:     do.MustInvoke[*service.KeyCardService](i),
			Catalog:      do.MustInvoke[*service.CatalogService](i),
		}), nil
	})
	do.Provide(injector, func(i do.Injector) (*grpcapi.Server, error) {
		cfg := do.MustInvoke[config.Config](i)
		return grpcapi.NewServer(cfg.GRPCAddr, mlog.Base()), nil
	})
}
