package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogo/internal/config"
	"github.com/kailas-cloud/catalogo/internal/db/sqldb"
	"github.com/kailas-cloud/catalogo/internal/db/sqlite"
	"github.com/kailas-cloud/catalogo/internal/db/sqlserver"
	"github.com/kailas-cloud/catalogo/internal/metrics"
	specimenrepo "github.com/kailas-cloud/catalogo/internal/repository/specimen"
	"github.com/kailas-cloud/catalogo/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

// app is the composition root shared by serve and check.
type app struct {
	store   *sqldb.Store
	catalog *catalog.Service
	health  *healthuc.Service
}

func openStore(cfg config.DatabaseConfig, logger *zap.Logger) (*sqldb.Store, error) {
	opts := []sqldb.Option{
		sqldb.WithLogger(logger),
		sqldb.WithObserver(metrics.QueryObserver{}),
		sqldb.WithPool(sqldb.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime(),
		}),
	}
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN, opts...)
	case "sqlserver":
		return sqlserver.Open(cfg.DSN, opts...)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	metrics.RegisterQueryMetrics()

	store, err := openStore(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("table", cfg.Database.Table),
	)

	repo, err := specimenrepo.New(store, cfg.Database.Table)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("specimen repository: %w", err)
	}

	pagination, err := catalog.ParsePagination(cfg.Catalog.Pagination)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svc := catalog.New(repo, logger).
		WithPageSize(cfg.Catalog.PageSize).
		WithImageSeparator(cfg.Catalog.ImageSeparator).
		WithPagination(pagination)

	return &app{
		store:   store,
		catalog: svc,
		health:  healthuc.New(store, svc),
	}, nil
}

func (a *app) Close() error { return a.store.Close() }
