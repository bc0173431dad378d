package transport

import (
	"context"
	"errors"
	"time"

	"sales-api/internal/domain"

	graphql "github.com/graph-gophers/graphql-go"
)

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type userResolver struct {
	user *domain.User
}

func (r *userResolver) ID() graphql.ID     { return graphql.ID(r.user.ID.Hex()) }
func (r *userResolver) Name() string       { return r.user.Name }
func (r *userResolver) LastName() string   { return r.user.LastName }
func (r *userResolver) Email() string      { return r.user.Email }
func (r *userResolver) CreatedAt() *string { return formatTime(r.user.CreatedAt) }

type tokenResolver struct {
	token string
}

func (r *tokenResolver) Token() string { return r.token }

type productResolver struct {
	product *domain.Product
}

func (r *productResolver) ID() graphql.ID       { return graphql.ID(r.product.ID.Hex()) }
func (r *productResolver) Name() string         { return r.product.Name }
func (r *productResolver) Description() *string { return optionalString(r.product.Description) }
func (r *productResolver) Stock() int32         { return int32(r.product.Stock) }
func (r *productResolver) Price() float64       { return r.product.Price }
func (r *productResolver) CreatedAt() *string   { return formatTime(r.product.CreatedAt) }

func productResolvers(products []*domain.Product) []*productResolver {
	resolvers := make([]*productResolver, 0, len(products))
	for _, p := range products {
		resolvers = append(resolvers, &productResolver{product: p})
	}
	return resolvers
}

type customerResolver struct {
	customer *domain.Customer
}

func (r *customerResolver) ID() graphql.ID     { return graphql.ID(r.customer.ID.Hex()) }
func (r *customerResolver) Name() string       { return r.customer.Name }
func (r *customerResolver) LastName() string   { return r.customer.LastName }
func (r *customerResolver) Company() string    { return r.customer.Company }
func (r *customerResolver) Email() string      { return r.customer.Email }
func (r *customerResolver) CellPhone() *string { return optionalString(r.customer.CellPhone) }
func (r *customerResolver) Seller() graphql.ID { return graphql.ID(r.customer.Seller.Hex()) }
func (r *customerResolver) CreatedAt() *string { return formatTime(r.customer.CreatedAt) }

func customerResolvers(customers []*domain.Customer) []*customerResolver {
	resolvers := make([]*customerResolver, 0, len(customers))
	for _, c := range customers {
		resolvers = append(resolvers, &customerResolver{customer: c})
	}
	return resolvers
}

type lineItemResolver struct {
	item domain.LineItem
}

func (r *lineItemResolver) ID() graphql.ID  { return graphql.ID(r.item.Product.Hex()) }
func (r *lineItemResolver) Quantity() int32 { return int32(r.item.Quantity) }
func (r *lineItemResolver) Name() string    { return r.item.Name }
func (r *lineItemResolver) Price() float64  { return r.item.Price }

type orderResolver struct {
	order *domain.Order
	root  *Resolver
}

func (r *orderResolver) ID() graphql.ID     { return graphql.ID(r.order.ID.Hex()) }
func (r *orderResolver) Total() float64     { return r.order.Total }
func (r *orderResolver) Seller() graphql.ID { return graphql.ID(r.order.Seller.Hex()) }
func (r *orderResolver) CreatedAt() *string { return formatTime(r.order.CreatedAt) }
func (r *orderResolver) State() string      { return string(r.order.State) }

func (r *orderResolver) Order() []*lineItemResolver {
	items := make([]*lineItemResolver, 0, len(r.order.Items))
	for _, item := range r.order.Items {
		items = append(items, &lineItemResolver{item: item})
	}
	return items
}

// Customer loads the order's customer on behalf of the order's own seller.
// A customer deleted after the order was placed resolves to null.
func (r *orderResolver) Customer(ctx context.Context) (*customerResolver, error) {
	customer, err := r.root.customers.Get(ctx, r.order.Seller.Hex(), r.order.Customer.Hex())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, r.root.fail(ctx, err)
	}
	return &customerResolver{customer: customer}, nil
}

func (r *Resolver) orderResolvers(orders []*domain.Order) []*orderResolver {
	resolvers := make([]*orderResolver, 0, len(orders))
	for _, o := range orders {
		resolvers = append(resolvers, &orderResolver{order: o, root: r})
	}
	return resolvers
}

type bestCustomersResolver struct {
	row *domain.CustomerTotal
}

func (r *bestCustomersResolver) Total() float64 { return r.row.Total }

func (r *bestCustomersResolver) Customer() []*customerResolver {
	resolvers := make([]*customerResolver, 0, len(r.row.Customer))
	for i := range r.row.Customer {
		resolvers = append(resolvers, &customerResolver{customer: &r.row.Customer[i]})
	}
	return resolvers
}

type bestSellersResolver struct {
	row *domain.SellerTotal
}

func (r *bestSellersResolver) Total() float64 { return r.row.Total }

func (r *bestSellersResolver) Seller() []*userResolver {
	resolvers := make([]*userResolver, 0, len(r.row.Seller))
	for i := range r.row.Seller {
		resolvers = append(resolvers, &userResolver{user: &r.row.Seller[i]})
	}
	return resolvers
}
