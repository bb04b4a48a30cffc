package repository

import (
	"context"
	"fmt"

	"portfolio/internal/config"
	"portfolio/internal/infrastructure/migration"
	"portfolio/internal/usecase"
	infra "portfolio/pkg/infrastructure"
)

// Open connects the store selected by cfg.StoreDriver and brings its schema
// up to date. The returned func releases the connection.
func Open(ctx context.Context, cfg *config.Config) (usecase.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := infra.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s := NewGormStore(db)
		if err := s.AutoMigrate(); err != nil {
			_ = infra.CloseSQLite(db)
			return nil, nil, err
		}
		return s, func() { _ = infra.CloseSQLite(db) }, nil
	case config.DriverPostgres:
		pool, err := infra.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewPostgresStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
