// Package memory keeps every collection in process memory. It backs
// STORE_DRIVER=memory for local runs and the service-level tests.
package memory

import (
	"sort"
	"sync"

	"sales-api/internal/domain"
	"sales-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds the collections behind one lock so reports can join across
// them. The lock protects the maps only; it does not make a read followed by
// a write atomic.
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]*domain.User
	customers map[primitive.ObjectID]*domain.Customer
	products  map[primitive.ObjectID]*domain.Product
	orders    map[primitive.ObjectID]*domain.Order
}

func NewStore() *Store {
	return &Store{
		users:     make(map[primitive.ObjectID]*domain.User),
		customers: make(map[primitive.ObjectID]*domain.Customer),
		products:  make(map[primitive.ObjectID]*domain.Product),
		orders:    make(map[primitive.ObjectID]*domain.Order),
	}
}

func (s *Store) Users() *UserRepository         { return &UserRepository{s: s} }
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }
func (s *Store) Products() *ProductRepository   { return &ProductRepository{s: s} }
func (s *Store) Orders() *OrderRepository       { return &OrderRepository{s: s} }
func (s *Store) Reports() *ReportRepository     { return &ReportRepository{s: s} }

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Users:     s.Users(),
		Customers: s.Customers(),
		Products:  s.Products(),
		Orders:    s.Orders(),
		Reports:   s.Reports(),
	}
}

// ObjectIDs embed their creation second plus a counter, so ordering by ID
// matches insertion order.
func sortByID[T any](items []*T, id func(*T) primitive.ObjectID) {
	sort.Slice(items, func(i, j int) bool {
		a, b := id(items[i]), id(items[j])
		return a.Hex() < b.Hex()
	})
}
