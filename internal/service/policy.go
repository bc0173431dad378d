package service

import (
	"fmt"

	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAccess reports whether the acting seller owns the entity. Ownership is
// the only authorization criterion.
func CanAccess(actingSellerID string, owner primitive.ObjectID) bool {
	return !owner.IsZero() && owner.Hex() == actingSellerID
}

func authorize(actingSellerID string, owner primitive.ObjectID) error {
	if !CanAccess(actingSellerID, owner) {
		return domain.ErrForbidden
	}
	return nil
}

// sellerObjectID converts the identity carried by a token into the id
// stored on customers and orders.
func sellerObjectID(sellerID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed seller id", domain.ErrInvalidToken)
	}
	return oid, nil
}

func authorizeCustomer(actingSellerID string, customer *domain.Customer) error {
	return authorize(actingSellerID, customer.Seller)
}

func authorizeOrder(actingSellerID string, order *domain.Order) error {
	return authorize(actingSellerID, order.Seller)
}
