package httpserver

import (
	"context"
	"errors"
	"time"

	"padaria/internal/domain"
	"padaria/internal/metrics"
	productsvc "padaria/internal/service/product"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AvailableRoutes is reported by the catch-all handler.
var AvailableRoutes = []string{
	"GET /api/test",
	"GET /api/produtos",
	"POST /api/produtos",
	"DELETE /api/produtos/:id",
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type ProductService interface {
	Pinger
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// Deps carries the collaborators the router needs.
type Deps struct {
	ProductSvc  ProductService
	Metrics     *metrics.Metrics
	CORSOrigins []string
	Now         func() time.Time
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil {
		return nil, errors.New("httpserver: product service is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		requestID(),
		tracing(),
		requestLogger(logger),
		observe(deps.Metrics),
		recoverer(logger),
		cors.New(corsConfig(deps.CORSOrigins)),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.ProductSvc))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := &productHandler{svc: deps.ProductSvc, logger: logger, now: deps.Now}
	api := router.Group("/api")
	api.GET("/test", h.test)
	api.GET("/produtos", h.list)
	api.POST("/produtos", h.create)
	api.DELETE("/produtos/:id", h.delete)

	router.NoRoute(notFoundHandler)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
