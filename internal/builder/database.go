package builder

import (
	"context"
	"fmt"

	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// stores bundles the repositories selected by FORM_STORE with the function
// that releases their connections.
type stores struct {
	forms     repository.FormRepository
	responses repository.ResponseRepository
	close     func()
}

func setupStores(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*stores, error) {
	switch cfg.Kind {
	case config.StorePostgres:
		db, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		return &stores{
			forms:     repository.NewFormPostgres(db),
			responses: repository.NewResponsePostgres(db),
			close:     db.Close,
		}, nil

	case config.StoreSQLite:
		logger.Info("Running database migrations", zap.String("path", cfg.SQLitePath))
		if err := repository.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		db, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("setup sqlite: %w", err)
		}
		logger.Info("sqlite database opened", zap.String("path", cfg.SQLitePath))

		return &stores{
			forms:     repository.NewFormSQLite(db),
			responses: repository.NewResponseSQLite(db),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("close sqlite database", zap.Error(err))
				}
			},
		}, nil

	case config.StoreMemory:
		logger.Warn("Using in-memory store, forms are lost on restart")
		db := repository.NewMemoryDB(repository.WithOrphanTTL(cfg.MemoryOrphanTTL))

		return &stores{
			forms:     repository.NewFormMemory(db),
			responses: repository.NewResponseMemory(db),
			close:     func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown form store %q", cfg.Kind)
	}
}

// setupDatabase creates a new database connection pool
func setupDatabase(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
		zap.Duration("max_conn_idle_time", poolConfig.MaxConnIdleTime),
		zap.Duration("health_check_period", poolConfig.HealthCheckPeriod),
	)

	return pool, nil
}
