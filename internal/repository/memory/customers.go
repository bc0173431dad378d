package memory

import (
	"context"

	"sales-api/internal/domain"
	"sales-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomerRepository struct{ s *Store }

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(customer.Email, primitive.NilObjectID) {
		return domain.ErrDuplicateEmail
	}

	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	stored := *customer
	r.s.customers[customer.ID] = &stored
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	if r.emailTaken(customer.Email, customer.ID) {
		return domain.ErrDuplicateEmail
	}

	stored := *customer
	r.s.customers[customer.ID] = &stored
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	oid, err := repository.ParseID(id, repository.ErrCustomerNotFound)
	if err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[oid]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(r.s.customers, oid)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, err := repository.ParseID(id, repository.ErrCustomerNotFound)
	if err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customer, ok := r.s.customers[oid]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	found := *customer
	return &found, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, customer := range r.s.customers {
		if customer.Email == email {
			found := *customer
			return &found, nil
		}
	}
	return nil, repository.ErrCustomerNotFound
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	return r.filter(ctx, func(*domain.Customer) bool { return true }), nil
}

func (r *CustomerRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Customer, error) {
	return r.filter(ctx, func(c *domain.Customer) bool { return c.Seller == sellerID }), nil
}

func (r *CustomerRepository) filter(ctx context.Context, keep func(*domain.Customer) bool) []*domain.Customer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customers := []*domain.Customer{}
	for _, customer := range r.s.customers {
		if keep(customer) {
			found := *customer
			customers = append(customers, &found)
		}
	}
	sortByID(customers, func(c *domain.Customer) primitive.ObjectID { return c.ID })
	return customers
}

// emailTaken must be called with the lock held.
func (r *CustomerRepository) emailTaken(email string, except primitive.ObjectID) bool {
	for id, existing := range r.s.customers {
		if id != except && existing.Email == email {
			return true
		}
	}
	return false
}
