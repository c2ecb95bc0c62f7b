package main

import (
	"context"

	"padaria/internal/config"
	"padaria/internal/logging"
	"padaria/internal/seed"
	productsvc "padaria/internal/service/product"
	"padaria/internal/store"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("seed", cfg.IsDevelopment())

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	catalog := productsvc.New(st.Products, nil, nil, logger)
	n, err := seed.Apply(ctx, catalog, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	logger.Info().Int("inserted", n).Msg("seed applied")
}
