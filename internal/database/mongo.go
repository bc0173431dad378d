package database

import (
	"context"
	"fmt"
	"time"

	"sales-api/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Service owns the MongoDB client for the lifetime of the process.
type Service interface {
	Database() *mongo.Database
	Health(ctx context.Context) map[string]string
	Close(ctx context.Context) error
}

type service struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the primary is reachable.
func New(ctx context.Context, cfg config.StoreConfig) (Service, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetAppName("sales-api")

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &service{client: client, db: client.Database(cfg.Database)}, nil
}

func (s *service) Database() *mongo.Database {
	return s.db
}

// Health pings the primary and reports the outcome.
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	stats := map[string]string{"database": s.db.Name()}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}
	stats["status"] = "up"
	return stats
}

func (s *service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
