package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a client owned by exactly one seller.
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Company   string             `bson:"company" json:"company"`
	Email     string             `bson:"email" json:"email"`
	CellPhone string             `bson:"cellPhone,omitempty" json:"cellPhone,omitempty"`
	Seller    primitive.ObjectID `bson:"seller" json:"seller"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
