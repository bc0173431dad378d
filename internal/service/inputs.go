package service

import "sales-api/internal/domain"

// NewUserInput carries a registration request
type NewUserInput struct {
	Name     string
	LastName string
	Email    string
	Password string
}

// ProductInput creates or replaces a product's editable fields
type ProductInput struct {
	Name        string
	Description *string
	Stock       int
	Price       float64
}

// CustomerInput creates or replaces a customer's profile. The owning seller
// is never part of the input.
type CustomerInput struct {
	Name      string
	LastName  string
	Company   string
	Email     string
	CellPhone *string
}

// LineItemInput requests Quantity units of a product
type LineItemInput struct {
	ProductID string
	Quantity  int
}

// OrderInput places or updates an order. Items is nil when the caller did
// not supply a list; Total and State are optional.
type OrderInput struct {
	CustomerID string
	Items      []LineItemInput
	Total      *float64
	State      *domain.OrderState
}
