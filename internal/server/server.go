package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sales-api/internal/config"
	"sales-api/internal/database"
	custommiddleware "sales-api/internal/middleware"
	"sales-api/internal/repository"
	"sales-api/internal/repository/memory"
	"sales-api/internal/service"
	"sales-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          database.Service
	redisClient *redis.Client
}

// NewServer wires the API. A nil db selects the in-memory store and a nil
// redisClient disables rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	var store repository.Store
	if db != nil {
		store = repository.NewMongoStore(db.Database())
	} else {
		store = memory.NewStore().Repositories()
	}

	// Initialize services
	userService := service.NewUserService(store.Users, cfg.JWT.Secret, cfg.JWT.Expiry)
	resolver := transport.NewResolver(transport.Services{
		Users:     userService,
		Customers: service.NewCustomerService(store.Customers),
		Products:  service.NewProductService(store.Products),
		Orders:    service.NewOrderService(store.Orders, store.Customers, store.Products, logger),
		Reports:   service.NewReportService(store.Reports),
	}, logger)

	schema, err := transport.NewSchema(resolver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := custommiddleware.NewMetrics(registry)

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, !cfg.IsProduction()))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)
	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "sales_api_rate_limit",
		}, logger))
	}
	router.Use(custommiddleware.AuthMiddleware(userService, logger))

	server := &Server{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	// Health check endpoint
	router.Get("/health", server.health)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Register routes
	transport.NewGraphQLHandler(schema, logger).RegisterRoutes(router)

	server.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	store := map[string]string{"driver": config.StoreDriverMemory, "status": "up"}
	if s.db != nil {
		store = s.db.Health(r.Context())
		store["driver"] = config.StoreDriverMongo
	}

	statusCode, status := http.StatusOK, "ok"
	if store["status"] != "up" {
		statusCode, status = http.StatusServiceUnavailable, "unavailable"
	}

	custommiddleware.RespondWithJSON(w, statusCode, map[string]interface{}{
		"status": status,
		"store":  store,
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
