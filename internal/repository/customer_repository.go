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

type customerRepository struct {
	collection *mongo.Collection
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db *mongo.Database) CustomerRepository {
	return &customerRepository{collection: db.Collection(database.CustomersCollection)}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return storeError("create customer", err)
	}

	return nil
}

// Update replaces the stored customer document
func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": customer.ID}, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return storeError("update customer", err)
	}

	if result.MatchedCount == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id, ErrCustomerNotFound)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete customer", err)
	}

	if result.DeletedCount == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, err := ParseID(id, ErrCustomerNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, "find customer by ID")
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email}, "find customer by email")
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	return r.find(ctx, bson.M{})
}

// ListBySeller retrieves the customers owned by a seller
func (r *customerRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Customer, error) {
	return r.find(ctx, bson.M{"seller": sellerID})
}

func (r *customerRepository) findOne(ctx context.Context, filter bson.M, op string) (*domain.Customer, error) {
	customer := &domain.Customer{}
	if err := r.collection.FindOne(ctx, filter).Decode(customer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, storeError(op, err)
	}
	return customer, nil
}

func (r *customerRepository) find(ctx context.Context, filter bson.M) ([]*domain.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("list customers", err)
	}

	customers := []*domain.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, storeError("decode customers", err)
	}

	return customers, nil
}
