// Package store opens the product repository selected by configuration.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"padaria/internal/config"
	"padaria/internal/db"
	productrepo "padaria/internal/repository/product"
)

const defaultSQLiteDSN = "padaria.db"

// Handle is an opened store. Pool is set only for the postgres driver.
type Handle struct {
	Products productrepo.Repository
	Pool     *pgxpool.Pool
	close    func()
}

func (h *Handle) Close() {
	if h.close != nil {
		h.close()
	}
}

// Open connects to the store named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Handle, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres, "":
		pool, err := db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Handle{
			Products: productrepo.NewPostgres(pool, &logger),
			Pool:     pool,
			close:    pool.Close,
		}, nil
	case config.StoreSQLite:
		gdb, err := productrepo.OpenSQLite(sqliteDSN(cfg.DBConnString), &logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Handle{
			Products: productrepo.NewSQLite(gdb, &logger),
			close: func() {
				if sqlDB, err := gdb.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// sqliteDSN ignores a postgres URL left over from the default configuration.
func sqliteDSN(dsn string) string {
	if dsn == "" || strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return defaultSQLiteDSN
	}
	return dsn
}
