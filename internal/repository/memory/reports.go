package memory

import (
	"context"
	"sort"

	"sales-api/internal/domain"
	"sales-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportRepository struct{ s *Store }

var _ repository.ReportRepository = (*ReportRepository)(nil)

type groupTotal struct {
	id    primitive.ObjectID
	total float64
}

// completedTotals sums COMPLETED order totals by key, sorted descending and
// capped at limit. Ties break on id for a stable result. Caller holds the lock.
func (r *ReportRepository) completedTotals(key func(*domain.Order) primitive.ObjectID, limit int) []groupTotal {
	sums := map[primitive.ObjectID]float64{}
	for _, order := range r.s.orders {
		if order.State != domain.OrderStateCompleted {
			continue
		}
		sums[key(order)] += order.Total
	}

	groups := make([]groupTotal, 0, len(sums))
	for id, total := range sums {
		groups = append(groups, groupTotal{id: id, total: total})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].total != groups[j].total {
			return groups[i].total > groups[j].total
		}
		return groups[i].id.Hex() < groups[j].id.Hex()
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

func (r *ReportRepository) BestCustomers(ctx context.Context, limit int) ([]*domain.CustomerTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	groups := r.completedTotals(func(o *domain.Order) primitive.ObjectID { return o.Customer }, limit)

	rows := make([]*domain.CustomerTotal, 0, len(groups))
	for _, g := range groups {
		row := &domain.CustomerTotal{ID: g.id, Total: g.total, Customer: []domain.Customer{}}
		if customer, ok := r.s.customers[g.id]; ok {
			row.Customer = append(row.Customer, *customer)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *ReportRepository) BestSellers(ctx context.Context, limit int) ([]*domain.SellerTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	groups := r.completedTotals(func(o *domain.Order) primitive.ObjectID { return o.Seller }, limit)

	rows := make([]*domain.SellerTotal, 0, len(groups))
	for _, g := range groups {
		row := &domain.SellerTotal{ID: g.id, Total: g.total, Seller: []domain.User{}}
		if user, ok := r.s.users[g.id]; ok {
			row.Seller = append(row.Seller, *user)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
