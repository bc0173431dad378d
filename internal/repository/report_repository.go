package repository

import (
	"context"

	"sales-api/internal/database"
	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type reportRepository struct {
	orders *mongo.Collection
}

// NewReportRepository creates a ReportRepository over the orders collection
func NewReportRepository(db *mongo.Database) ReportRepository {
	return &reportRepository{orders: db.Collection(database.OrdersCollection)}
}

// BestCustomers sums completed order totals per customer, highest first
func (r *reportRepository) BestCustomers(ctx context.Context, limit int) ([]*domain.CustomerTotal, error) {
	pipeline := totalsPipeline("$customer", database.CustomersCollection, "customer", limit)

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeError("aggregate best customers", err)
	}

	rows := []*domain.CustomerTotal{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storeError("decode best customers", err)
	}

	return rows, nil
}

// BestSellers sums completed order totals per seller, highest first
func (r *reportRepository) BestSellers(ctx context.Context, limit int) ([]*domain.SellerTotal, error) {
	pipeline := totalsPipeline("$seller", database.UsersCollection, "seller", limit)

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeError("aggregate best sellers", err)
	}

	rows := []*domain.SellerTotal{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storeError("decode best sellers", err)
	}

	return rows, nil
}

// totalsPipeline groups COMPLETED orders by groupField, joins the profile
// from collection into as, then sorts before limiting.
func totalsPipeline(groupField, collection, as string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "state", Value: domain.OrderStateCompleted}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: groupField},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}
