package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"padaria/internal/config"
	"padaria/internal/events"
	"padaria/internal/httpserver"
	"padaria/internal/logging"
	"padaria/internal/metrics"
	productsvc "padaria/internal/service/product"
	"padaria/internal/store"
	"padaria/internal/telemetry"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("api", cfg.IsDevelopment())

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, cfg.ServiceName, cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("init tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store")
	}
	defer st.Close()

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	m := metrics.New()
	productService := productsvc.New(st.Products, publisher, m, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		ProductSvc:  productService,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logStartup(logger, cfg)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

func newPublisher(cfg config.Config, logger zerolog.Logger) events.Publisher {
	if cfg.RabbitMQURL == "" {
		return events.Nop{}
	}
	pub, err := events.DialAMQP(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("rabbitmq unavailable, product events disabled")
		return events.Nop{}
	}
	return pub
}

func logStartup(logger zerolog.Logger, cfg config.Config) {
	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("store", cfg.StoreDriver).
		Str("environment", cfg.Environment).
		Msg("starting http server")
	for _, route := range httpserver.AvailableRoutes {
		logger.Info().Str("route", route).Msg("route available")
	}
}
