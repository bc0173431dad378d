package repository

import (
	"context"
	"errors"

	"sales-api/internal/database"
	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection(database.UsersCollection)}
}

// Create inserts a new user and assigns its ID
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		// users_email_key guards against a registration racing past the pre-check
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return storeError("create user", err)
	}

	return nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, storeError("find user by email", err)
	}

	return user, nil
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := ParseID(id, ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	user := &domain.User{}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, storeError("find user by ID", err)
	}

	return user, nil
}
