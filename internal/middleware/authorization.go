package middleware

import (
	"context"

	"sales-api/internal/domain"
)

// RequireIdentity returns the caller's identity or ErrUnauthenticated.
// GraphQL resolvers call it per field since one endpoint serves both public
// and protected operations.
func RequireIdentity(ctx context.Context) (*domain.Identity, error) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}
