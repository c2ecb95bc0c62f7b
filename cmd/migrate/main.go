package main

import (
	"context"
	"flag"

	"padaria/internal/config"
	"padaria/internal/db"
	"padaria/internal/logging"
	"padaria/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "Roll back every migration instead of applying")
	flag.Parse()

	cfg := config.FromEnv()
	logger := logging.New("migrate", cfg.IsDevelopment())

	if cfg.StoreDriver == config.StoreSQLite {
		logger.Info().Msg("sqlite store migrates itself on open, nothing to do")
		return
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if *down {
		if err := migrate.Rollback(ctx, pool, logger); err != nil {
			logger.Fatal().Err(err).Msg("rollback migrations")
		}
		logger.Info().Msg("migrations rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool, logger); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied")
}
