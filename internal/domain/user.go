package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered seller
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Identity returns the claims a session token carries for u.
func (u *User) Identity() Identity {
	return Identity{
		ID:       u.ID.Hex(),
		Name:     u.Name,
		LastName: u.LastName,
		Email:    u.Email,
	}
}
