package repository

import (
	"context"
	"errors"
	"fmt"

	"sales-api/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// storeError wraps a driver error, tagging it StoreUnavailable when the
// server could not be reached.
func storeError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUnavailable(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected)
}
