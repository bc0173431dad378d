package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product in the catalog
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Price       float64            `bson:"price" json:"price"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
