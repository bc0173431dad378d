package domain

import (
	"errors"
	"fmt"
)

// Kind classifies every error the API can surface to a caller.
type Kind string

const (
	KindDuplicateEmail     Kind = "DUPLICATE_EMAIL"
	KindUnknownUser        Kind = "UNKNOWN_USER"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindInvalidToken       Kind = "INVALID_TOKEN"
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindNotFound           Kind = "NOT_FOUND"
	KindForbidden          Kind = "FORBIDDEN"
	KindInsufficientStock  Kind = "INSUFFICIENT_STOCK"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindStoreUnavailable   Kind = "STORE_UNAVAILABLE"
	KindInternal           Kind = "INTERNAL"
)

var (
	ErrDuplicateEmail     = errors.New("the email is already registered")
	ErrUnknownUser        = errors.New("this user is not registered")
	ErrInvalidCredentials = errors.New("the credentials don't match")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you don't have permissions")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrValidation         = errors.New("validation failed")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// InsufficientStockError names the product whose stock could not cover a line item.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("there is insufficient stock for the product %s", e.Product)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationError lists the input fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: invalid fields %v", ErrValidation.Error(), e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrDuplicateEmail, KindDuplicateEmail},
	{ErrUnknownUser, KindUnknownUser},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrInvalidToken, KindInvalidToken},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrInsufficientStock, KindInsufficientStock},
	{ErrValidation, KindValidation},
	{ErrStoreUnavailable, KindStoreUnavailable},
}

// KindOf reports the kind of err. Errors outside the known set are KindInternal.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
