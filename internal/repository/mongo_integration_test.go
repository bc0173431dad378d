package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"sales-api/internal/database"
	"sales-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var testDB *mongo.Database

func setupTestDB() (teardown func(context.Context) error, err error) {
	// testcontainers panics when no Docker host can be found
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, err
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		return func(ctx context.Context) error { return container.Terminate(ctx) }, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return func(ctx context.Context) error { return container.Terminate(ctx) }, err
	}

	testDB = client.Database("sales_test")
	if err := database.EnsureIndexes(ctx, testDB, zap.NewNop()); err != nil {
		return func(ctx context.Context) error { return container.Terminate(ctx) }, err
	}

	return func(ctx context.Context) error {
		_ = client.Disconnect(ctx)
		return testcontainers.TerminateContainer(container)
	}, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Printf("mongo container unavailable, integration tests will be skipped: %v", err)
		testDB = nil
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown mongo container: %v", err)
		}
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testDB == nil {
		t.Skip("mongo container not available")
	}
	return testDB
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, primitive.NewObjectID().Hex())
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := requireDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Name:         "Ada",
		LastName:     "Lovelace",
		Email:        uniqueEmail("ada"),
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.False(t, user.ID.IsZero())

	byEmail, err := repo.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = repo.FindByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := requireDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	email := uniqueEmail("dup")
	require.NoError(t, repo.Create(ctx, &domain.User{Name: "A", Email: email}))

	err := repo.Create(ctx, &domain.User{Name: "B", Email: email})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestProductRepository_UpdateAndSearch(t *testing.T) {
	db := requireDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	marker := "zanzibar" + primitive.NewObjectID().Hex()[18:]
	product := &domain.Product{Name: "Mechanical keyboard " + marker, Stock: 5, Price: 99.5, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, product))

	product.Stock = 2
	require.NoError(t, repo.Update(ctx, product))

	stored, err := repo.FindByID(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)

	found, err := repo.Search(ctx, marker, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, product.ID, found[0].ID)

	require.NoError(t, repo.Delete(ctx, product.ID.Hex()))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID.Hex()), ErrProductNotFound)
}

func TestCustomerRepository_ListBySeller(t *testing.T) {
	db := requireDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	seller := primitive.NewObjectID()
	other := primitive.NewObjectID()
	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Mine", Email: uniqueEmail("mine"), Seller: seller}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Theirs", Email: uniqueEmail("theirs"), Seller: other}))

	customers, err := repo.ListBySeller(ctx, seller)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Mine", customers[0].Name)
}

func TestReportRepository_BestSellers(t *testing.T) {
	db := requireDB(t)
	// Reports read the whole collection, so start clean.
	require.NoError(t, db.Collection(database.OrdersCollection).Drop(context.Background()))

	users := NewUserRepository(db)
	orders := NewOrderRepository(db)
	reports := NewReportRepository(db)
	ctx := context.Background()

	totals := []float64{10, 20, 30}
	for i, total := range totals {
		seller := &domain.User{Name: fmt.Sprintf("Seller %d", i), Email: uniqueEmail("seller")}
		require.NoError(t, users.Create(ctx, seller))
		require.NoError(t, orders.Create(ctx, &domain.Order{Seller: seller.ID, Total: total, State: domain.OrderStateCompleted}))
		require.NoError(t, orders.Create(ctx, &domain.Order{Seller: seller.ID, Total: 1000, State: domain.OrderStatePending}))
		require.NoError(t, orders.Create(ctx, &domain.Order{Seller: seller.ID, Total: 1000, State: domain.OrderStateRejected}))
	}

	rows, err := reports.BestSellers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []float64{30, 20, 10}, []float64{rows[0].Total, rows[1].Total, rows[2].Total})
	require.Len(t, rows[0].Seller, 1)
	assert.Equal(t, "Seller 2", rows[0].Seller[0].Name)
}
