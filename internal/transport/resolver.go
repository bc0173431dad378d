package transport

import (
	"context"
	_ "embed"

	"sales-api/internal/domain"
	"sales-api/internal/middleware"
	"sales-api/internal/service"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// Services groups the business services the resolvers delegate to
type Services struct {
	Users     service.UserService
	Customers service.CustomerService
	Products  service.ProductService
	Orders    service.OrderService
	Reports   service.ReportService
}

// Resolver is the root of every query and mutation
type Resolver struct {
	users     service.UserService
	customers service.CustomerService
	products  service.ProductService
	orders    service.OrderService
	reports   service.ReportService
	logger    *zap.Logger
}

// NewResolver creates the root resolver
func NewResolver(services Services, logger *zap.Logger) *Resolver {
	return &Resolver{
		users:     services.Users,
		customers: services.Customers,
		products:  services.Products,
		orders:    services.Orders,
		reports:   services.Reports,
		logger:    logger,
	}
}

// NewSchema parses the embedded schema and binds it to resolver
func NewSchema(resolver *Resolver, logger *zap.Logger) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, resolver,
		graphql.Logger(panicLogger{logger: logger}),
		graphql.MaxDepth(12),
	)
}

// seller returns the caller's id or an Unauthenticated error
func (r *Resolver) seller(ctx context.Context) (string, error) {
	identity, err := middleware.RequireIdentity(ctx)
	if err != nil {
		return "", r.fail(ctx, err)
	}
	return identity.ID, nil
}

func (r *Resolver) validate(ctx context.Context, input interface{}) error {
	if err := middleware.ValidateInput(input); err != nil {
		return r.fail(ctx, err)
	}
	return nil
}

// Users

func (r *Resolver) GetUser(ctx context.Context) (*userResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := r.users.GetUserByID(ctx, sellerID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &userResolver{user: user}, nil
}

func (r *Resolver) NewUser(ctx context.Context, args struct{ Input userInput }) (*userResolver, error) {
	if err := r.validate(ctx, args.Input); err != nil {
		return nil, err
	}
	user, err := r.users.Register(ctx, service.NewUserInput{
		Name:     args.Input.Name,
		LastName: args.Input.LastName,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &userResolver{user: user}, nil
}

func (r *Resolver) AuthUser(ctx context.Context, args struct{ Input authInput }) (*tokenResolver, error) {
	if err := r.validate(ctx, args.Input); err != nil {
		return nil, err
	}
	token, err := r.users.Authenticate(ctx, args.Input.Email, args.Input.Password)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &tokenResolver{token: token}, nil
}

// Products

func (r *Resolver) GetAllProducts(ctx context.Context) ([]*productResolver, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return productResolvers(products), nil
}

func (r *Resolver) GetProduct(ctx context.Context, args struct{ ID graphql.ID }) (*productResolver, error) {
	product, err := r.products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &productResolver{product: product}, nil
}

func (r *Resolver) NewProduct(ctx context.Context, args struct{ Input productInput }) (*productResolver, error) {
	if err := r.validate(ctx, args.Input); err != nil {
		return nil, err
	}
	product, err := r.products.Create(ctx, args.Input.toService())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &productResolver{product: product}, nil
}

func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ID    graphql.ID
	Input productInput
}) (*productResolver, error) {
	if err := r.validate(ctx, args.Input); err != nil {
		return nil, err
	}
	product, err := r.products.Update(ctx, string(args.ID), args.Input.toService())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &productResolver{product: product}, nil
}

func (r *Resolver) RemoveProduct(ctx context.Context, args struct{ ID graphql.ID }) (string, error) {
	message, err := r.products.Remove(ctx, string(args.ID))
	if err != nil {
		return "", r.fail(ctx, err)
	}
	return message, nil
}

func (r *Resolver) SearchForProduct(ctx context.Context, args struct{ Text string }) ([]*productResolver, error) {
	products, err := r.products.Search(ctx, args.Text)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return productResolvers(products), nil
}

// Customers

func (r *Resolver) GetAllCustomers(ctx context.Context) ([]*customerResolver, error) {
	customers, err := r.customers.List(ctx)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return customerResolvers(customers), nil
}

func (r *Resolver) GetCustomerSellers(ctx context.Context) ([]*customerResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := r.customers.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return customerResolvers(customers), nil
}

func (r *Resolver) GetCustomer(ctx context.Context, args struct{ ID graphql.ID }) (*customerResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	customer, err := r.customers.Get(ctx, sellerID, string(args.ID))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &customerResolver{customer: customer}, nil
}

func (r *Resolver) AddNewCustomer(ctx context.Context, args struct{ Input customerInput }) (*customerResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.validate(ctx, args.Input); err != nil {
		return nil, err
	}
	customer, err := r.customers.Create(ctx, sellerID, args.Input.toService())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &customerResolver{customer: customer}, nil
}

func (r *Resolver) UpdateCustomer(ctx context.Context, args struct {
	ID    graphql.ID
	Input customerInput
}) (*customerResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.validate(ctx, args.Input); err != nil {
		return nil, err
	}
	customer, err := r.customers.Update(ctx, sellerID, string(args.ID), args.Input.toService())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &customerResolver{customer: customer}, nil
}

func (r *Resolver) DeleteCustomer(ctx context.Context, args struct{ ID graphql.ID }) (string, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return "", err
	}
	message, err := r.customers.Delete(ctx, sellerID, string(args.ID))
	if err != nil {
		return "", r.fail(ctx, err)
	}
	return message, nil
}

// Orders

func (r *Resolver) GetAllOrders(ctx context.Context) ([]*orderResolver, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.orderResolvers(orders), nil
}

func (r *Resolver) GetOrderByCustomer(ctx context.Context) ([]*orderResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := r.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.orderResolvers(orders), nil
}

func (r *Resolver) GetOrder(ctx context.Context, args struct{ ID graphql.ID }) (*orderResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	order, err := r.orders.Get(ctx, sellerID, string(args.ID))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &orderResolver{order: order, root: r}, nil
}

func (r *Resolver) GetOrdersByState(ctx context.Context, args struct{ State string }) ([]*orderResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := r.orders.ListByState(ctx, sellerID, domain.OrderState(args.State))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.orderResolvers(orders), nil
}

func (r *Resolver) NewOrder(ctx context.Context, args struct{ Input orderInput }) (*orderResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	if args.Input.Customer == nil || *args.Input.Customer == "" {
		return nil, r.fail(ctx, &domain.ValidationError{Fields: []string{"customer"}})
	}
	if err := args.Input.validate(); err != nil {
		return nil, r.fail(ctx, err)
	}
	order, err := r.orders.Create(ctx, sellerID, args.Input.toService())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &orderResolver{order: order, root: r}, nil
}

func (r *Resolver) UpdateOrder(ctx context.Context, args struct {
	ID    graphql.ID
	Input orderInput
}) (*orderResolver, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return nil, err
	}
	if err := args.Input.validate(); err != nil {
		return nil, r.fail(ctx, err)
	}
	order, err := r.orders.Update(ctx, sellerID, string(args.ID), args.Input.toService())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &orderResolver{order: order, root: r}, nil
}

func (r *Resolver) RemoveOrder(ctx context.Context, args struct{ ID graphql.ID }) (string, error) {
	sellerID, err := r.seller(ctx)
	if err != nil {
		return "", err
	}
	message, err := r.orders.Remove(ctx, sellerID, string(args.ID))
	if err != nil {
		return "", r.fail(ctx, err)
	}
	return message, nil
}

// Reports

func (r *Resolver) GetBestCustomers(ctx context.Context) ([]*bestCustomersResolver, error) {
	rows, err := r.reports.BestCustomers(ctx)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	resolvers := make([]*bestCustomersResolver, 0, len(rows))
	for _, row := range rows {
		resolvers = append(resolvers, &bestCustomersResolver{row: row})
	}
	return resolvers, nil
}

func (r *Resolver) GetBestSellers(ctx context.Context) ([]*bestSellersResolver, error) {
	rows, err := r.reports.BestSellers(ctx)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	resolvers := make([]*bestSellersResolver, 0, len(rows))
	for _, row := range rows {
		resolvers = append(resolvers, &bestSellersResolver{row: row})
	}
	return resolvers, nil
}
