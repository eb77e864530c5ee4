package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrCustomerNotFound is returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository holds the customer bucket.
type CustomerRepository interface {
	Collection[entity.Customer]

	// FindByName returns the customer whose full name matches exactly.
	FindByName(ctx context.Context, name string) (*entity.Customer, error)

	// Search returns customers whose name contains query, case-insensitively.
	Search(ctx context.Context, query string) ([]*entity.Customer, error)
}
