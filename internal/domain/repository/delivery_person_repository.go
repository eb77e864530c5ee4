package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrDeliveryPersonNotFound is returned when a delivery person is not found.
var ErrDeliveryPersonNotFound = errors.New("delivery person not found")

// DeliveryPersonRepository holds the delivery person bucket.
type DeliveryPersonRepository interface {
	Collection[entity.DeliveryPerson]

	// FindByName returns the delivery person whose full name matches exactly.
	FindByName(ctx context.Context, name string) (*entity.DeliveryPerson, error)

	// Search returns delivery persons whose name contains query, case-insensitively.
	Search(ctx context.Context, query string) ([]*entity.DeliveryPerson, error)
}
