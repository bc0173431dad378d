package repository

import "go.mongodb.org/mongo-driver/mongo"

// Store bundles one implementation of every repository
type Store struct {
	Users     UserRepository
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
	Reports   ReportRepository
}

// NewMongoStore builds every repository over db
func NewMongoStore(db *mongo.Database) Store {
	return Store{
		Users:     NewUserRepository(db),
		Customers: NewCustomerRepository(db),
		Products:  NewProductRepository(db),
		Orders:    NewOrderRepository(db),
		Reports:   NewReportRepository(db),
	}
}
