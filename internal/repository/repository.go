package repository

import (
	"context"
	"fmt"

	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", domain.ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", domain.ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", domain.ErrNotFound)
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Customer, error)
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, text string, limit int) ([]*domain.Product, error)
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Order, error)
	ListBySellerAndState(ctx context.Context, sellerID primitive.ObjectID, state domain.OrderState) ([]*domain.Order, error)
}

// ReportRepository aggregates completed orders.
type ReportRepository interface {
	BestCustomers(ctx context.Context, limit int) ([]*domain.CustomerTotal, error)
	BestSellers(ctx context.Context, limit int) ([]*domain.SellerTotal, error)
}

// ParseID converts an opaque identifier into an ObjectID. A malformed id can
// never match a stored document, so it reports notFound.
func ParseID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}
