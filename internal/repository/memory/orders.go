package memory

import (
	"context"

	"sales-api/internal/domain"
	"sales-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository struct{ s *Store }

var _ repository.OrderRepository = (*OrderRepository)(nil)

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.LineItem(nil), o.Items...)
	return &c
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := repository.ParseID(id, repository.ErrOrderNotFound)
	if err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[oid]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.s.orders, oid)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := repository.ParseID(id, repository.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	order, ok := r.s.orders[oid]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.filter(ctx, func(*domain.Order) bool { return true }), nil
}

func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Order, error) {
	return r.filter(ctx, func(o *domain.Order) bool { return o.Seller == sellerID }), nil
}

func (r *OrderRepository) ListBySellerAndState(ctx context.Context, sellerID primitive.ObjectID, state domain.OrderState) ([]*domain.Order, error) {
	return r.filter(ctx, func(o *domain.Order) bool { return o.Seller == sellerID && o.State == state }), nil
}

func (r *OrderRepository) filter(ctx context.Context, keep func(*domain.Order) bool) []*domain.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := []*domain.Order{}
	for _, order := range r.s.orders {
		if keep(order) {
			orders = append(orders, cloneOrder(order))
		}
	}
	sortByID(orders, func(o *domain.Order) primitive.ObjectID { return o.ID })
	return orders
}
