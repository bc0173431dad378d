package service

import (
	"context"
	"testing"
	"time"

	"sales-api/internal/domain"
	"sales-api/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fixture struct {
	store     *memory.Store
	customers CustomerService
	products  ProductService
	orders    OrderService
	reports   ReportService
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:     store,
		customers: NewCustomerService(store.Customers()),
		products:  NewProductService(store.Products()),
		orders:    NewOrderService(store.Orders(), store.Customers(), store.Products(), zap.NewNop()),
		reports:   NewReportService(store.Reports()),
	}
}

func newSellerID() string {
	return primitive.NewObjectID().Hex()
}

func (f *fixture) seller(t *testing.T, name string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: name + "@example.com", CreatedAt: time.Now()}
	require.NoError(t, f.store.Users().Create(context.Background(), user))
	return user
}

func (f *fixture) customer(t *testing.T, sellerID, email string) *domain.Customer {
	t.Helper()
	customer, err := f.customers.Create(context.Background(), sellerID, CustomerInput{
		Name:     "Luis",
		LastName: "Perez",
		Company:  "Acme",
		Email:    email,
	})
	require.NoError(t, err)
	return customer
}

func (f *fixture) product(t *testing.T, name string, stock int, price float64) *domain.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), ProductInput{Name: name, Stock: stock, Price: price})
	require.NoError(t, err)
	return product
}
