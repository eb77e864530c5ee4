package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository holds the product catalogue.
type ProductRepository interface {
	Collection[entity.Product]

	// FindByName returns the product whose name matches exactly.
	FindByName(ctx context.Context, name string) (*entity.Product, error)

	// Search returns products whose name contains query, case-insensitively.
	Search(ctx context.Context, query string) ([]*entity.Product, error)
}
