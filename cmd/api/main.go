package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sales-api/internal/config"
	"sales-api/internal/database"
	"sales-api/internal/logger"
	"sales-api/internal/server"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// openStore connects to MongoDB unless the in-memory driver is selected.
// A nil service means the in-memory store.
func openStore(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (database.Service, error) {
	if cfg.Driver == config.StoreDriverMemory {
		log.Warn("Using in-memory store; data is lost on restart")
		return nil, nil
	}

	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Database health check", zap.Any("health", db.Health(ctx)))

	if err := database.EnsureIndexes(ctx, db.Database(), log); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}
	return db, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		// The limiter fails open, so an unreachable Redis only costs the limit
		log.Warn("Redis unreachable, rate limiting degraded", zap.Error(err))
	}
	return client
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("Starting sales API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
	)

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET (or SECRET_WORD) must be set")
	}

	ctx := context.Background()

	// Initialize database
	db, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}

	redisClient := openRedis(ctx, cfg.Redis, log)

	// Create server
	srv, err := server.NewServer(cfg, log, db, redisClient)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
