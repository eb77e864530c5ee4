package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrDepositNotFound is returned when a deposit is not found.
var ErrDepositNotFound = errors.New("deposit not found")

// DepositRepository holds deposits nested by customer id.
type DepositRepository interface {
	Loader

	// List returns every deposit, grouped by customer id then ascending by id.
	List(ctx context.Context) ([]*entity.DepositEntry, error)

	// ListForCustomer returns the customer's deposits ascending by id.
	ListForCustomer(ctx context.Context, customerID string) ([]*entity.DepositEntry, error)

	// FindByID returns one deposit of a customer.
	FindByID(ctx context.Context, customerID, id string) (*entity.DepositEntry, error)

	// Save writes the deposit under its customer.
	Save(ctx context.Context, deposit *entity.DepositEntry) error

	// Delete removes one deposit of a customer.
	Delete(ctx context.Context, customerID, id string) error

	// CustomerHasData reports whether the customer has any deposit.
	CustomerHasData(ctx context.Context, customerID string) (bool, error)
}
