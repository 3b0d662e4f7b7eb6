package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"elegance-storefront/internal/catalog"
	"elegance-storefront/internal/config"
	"elegance-storefront/internal/draft"
	custommiddleware "elegance-storefront/internal/middleware"
	"elegance-storefront/internal/notify"
	"elegance-storefront/internal/service"
	"elegance-storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrRedisRequired = errors.New("redis client required by configuration")

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer assembles the storefront API. redisClient may be nil unless the
// configuration asks for the redis draft store or rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) (*Server, error) {
	if cfg.UsesRedis() && redisClient == nil {
		return nil, ErrRedisRequired
	}

	products, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := custommiddleware.NewMetrics(registry, "elegance-storefront")

	// Create router
	router := chi.NewRouter()
	router.NotFound(custommiddleware.NotFoundHandler)
	router.MethodNotAllowed(custommiddleware.MethodNotAllowedHandler)

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Handler)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	s := &Server{
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Initialize services
	notifier := notify.NewLogNotifier(logger)
	catalogService := service.NewCatalogService(products, notifier)
	draftService := service.NewDraftService(s.draftStore(), service.NewLogSink(logger), notifier)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	draftHandler := transport.NewDraftHandler(draftService, logger, cfg.Drafts.UploadMaxMB<<20)

	// Register routes
	router.Group(func(r chi.Router) {
		if cfg.RateLimit.Requests > 0 {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "rate_limit",
			}, logger))
		}

		catalogHandler.RegisterRoutes(r)
		draftHandler.RegisterRoutes(r)
	})

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("Server assembled",
		zap.Int("products", products.Len()),
		zap.String("draft_store", cfg.Drafts.Store),
		zap.Bool("rate_limit", cfg.RateLimit.Requests > 0),
	)

	return s, nil
}

func (s *Server) draftStore() draft.Store {
	if s.config.Drafts.Store == "redis" {
		return draft.NewRedisStore(s.redis, s.config.Drafts.TTL)
	}
	return draft.NewMemoryStore()
}

// health reports the server and, when one is configured, the redis
// connection. A failing redis check answers 503.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := map[string]string{"status": "ok"}

	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.logger.Warn("Redis health check failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			resp["status"] = "degraded"
			resp["redis"] = "down"
		} else {
			resp["redis"] = "up"
		}
	}

	custommiddleware.RespondWithJSON(w, status, resp)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
