package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderState is a label set by the caller; nothing derives it.
type OrderState string

const (
	OrderStatePending   OrderState = "PENDING"
	OrderStateCompleted OrderState = "COMPLETED"
	OrderStateRejected  OrderState = "REJECTED"
)

// Valid reports whether s is one of the known states.
func (s OrderState) Valid() bool {
	switch s {
	case OrderStatePending, OrderStateCompleted, OrderStateRejected:
		return true
	}
	return false
}

// LineItem is one product/quantity pair with a name and price snapshot.
type LineItem struct {
	Product  primitive.ObjectID `bson:"id" json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
}

// Order belongs to the seller that owns its customer.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items     []LineItem         `bson:"order" json:"order"`
	Total     float64            `bson:"total" json:"total"`
	Customer  primitive.ObjectID `bson:"customer" json:"customer"`
	Seller    primitive.ObjectID `bson:"seller" json:"seller"`
	State     OrderState         `bson:"state" json:"state"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CustomerTotal is one row of the best customers report.
type CustomerTotal struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Total    float64            `bson:"total" json:"total"`
	Customer []Customer         `bson:"customer" json:"customer"`
}

// SellerTotal is one row of the best sellers report.
type SellerTotal struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Total  float64            `bson:"total" json:"total"`
	Seller []User             `bson:"seller" json:"seller"`
}
