package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names
const (
	UsersCollection     = "users"
	CustomersCollection = "customers"
	ProductsCollection  = "products"
	OrdersCollection    = "orders"
)

// Indexes lists the indexes each collection needs. Email uniqueness and
// product text search depend on them.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("users_email_key"),
			},
		},
		CustomersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("customers_email_key"),
			},
			{
				Keys:    bson.D{{Key: "seller", Value: 1}},
				Options: options.Index().SetName("customers_seller_idx"),
			},
		},
		ProductsCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
				Options: options.Index().SetName("products_text_idx"),
			},
		},
		OrdersCollection: {
			{
				Keys:    bson.D{{Key: "seller", Value: 1}, {Key: "state", Value: 1}},
				Options: options.Index().SetName("orders_seller_state_idx"),
			},
			{
				Keys:    bson.D{{Key: "customer", Value: 1}},
				Options: options.Index().SetName("orders_customer_idx"),
			},
		},
	}
}

// EnsureIndexes creates any missing indexes. CreateMany is idempotent for
// identical definitions.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for collection, models := range Indexes() {
		logger.Info("Ensuring indexes", zap.String("collection", collection), zap.Int("count", len(models)))

		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			logger.Error("Failed to create indexes", zap.String("collection", collection), zap.Error(err))
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		logger.Debug("Indexes ready", zap.String("collection", collection), zap.Strings("names", names))
	}

	logger.Info("Indexes ensured successfully")
	return nil
}
