package repository

import (
	"context"
	"errors"

	"sales-api/internal/database"
	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection(database.OrdersCollection)}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return storeError("create order", err)
	}

	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return storeError("update order", err)
	}

	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id, ErrOrderNotFound)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete order", err)
	}

	if result.DeletedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := ParseID(id, ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, storeError("find order by ID", err)
	}

	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{"seller": sellerID})
}

func (r *orderRepository) ListBySellerAndState(ctx context.Context, sellerID primitive.ObjectID, state domain.OrderState) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{"seller": sellerID, "state": state})
}

func (r *orderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("list orders", err)
	}

	orders := []*domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeError("decode orders", err)
	}

	return orders, nil
}
