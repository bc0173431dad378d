package service

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feature: sales-api, Property 4: Access is granted exactly to the owning seller
func TestProperty_CanAccessIsOwnership(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("only the owner passes", prop.ForAll(
		func(a, b int64) bool {
			owner := primitive.NewObjectIDFromTimestamp(time.Unix(a, 0))
			other := primitive.NewObjectIDFromTimestamp(time.Unix(b, 0))
			return CanAccess(owner.Hex(), owner) && CanAccess(other.Hex(), owner) == (owner == other)
		},
		gen.Int64Range(0, 1<<31),
		gen.Int64Range(0, 1<<31),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCanAccess_ZeroOwner(t *testing.T) {
	assert.False(t, CanAccess(primitive.NilObjectID.Hex(), primitive.NilObjectID))
	assert.False(t, CanAccess("", primitive.NilObjectID))
}
