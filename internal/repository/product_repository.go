package repository

import (
	"context"
	"errors"
	"strings"

	"sales-api/internal/database"
	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{collection: db.Collection(database.ProductsCollection)}
}

// Create inserts a new product and assigns its ID
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return storeError("create product", err)
	}

	return nil
}

// Update replaces the stored product document. Stock decrements go through
// here too, one write per line item.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return storeError("update product", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id, ErrProductNotFound)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete product", err)
	}

	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := ParseID(id, ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, storeError("find product by ID", err)
	}

	return product, nil
}

// List retrieves every product
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, bson.M{}, opts, "list products")
}

// Search runs a $text query against products_text_idx, best matches first
func (r *productRepository) Search(ctx context.Context, text string, limit int) ([]*domain.Product, error) {
	if strings.TrimSpace(text) == "" {
		return []*domain.Product{}, nil
	}

	score := bson.M{"score": bson.M{"$meta": "textScore"}}
	opts := options.Find().
		SetProjection(score).
		SetSort(score).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{"$text": bson.M{"$search": text}}, opts, "search products")
}

func (r *productRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions, op string) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError(op, err)
	}

	products := []*domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeError(op, err)
	}

	return products, nil
}
