package usecase

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// CustomerUsecase manages customer profiles.
type CustomerUsecase interface {
	// List returns every customer ordered by id.
	List(ctx context.Context) ([]*entity.Customer, error)

	// Get returns one customer.
	Get(ctx context.Context, id string) (*entity.Customer, error)

	// Save creates the customer when it has no id, otherwise replaces it.
	Save(ctx context.Context, customer *entity.Customer, adminID string) (*entity.Customer, error)

	// Delete removes a customer that no transaction references.
	Delete(ctx context.Context, id string) error

	// AddShippingAddress appends an address; empty and known addresses are ignored.
	AddShippingAddress(ctx context.Context, id, address string) (*entity.Customer, error)

	// SetUpdateStatus flags whether the profile has been reviewed.
	SetUpdateStatus(ctx context.Context, id string, updated bool) error

	// Name returns the live name of the customer, or fallback when it is gone.
	Name(ctx context.Context, id, fallback string) string

	// Address returns the customer's main address.
	Address(ctx context.Context, id string) (string, error)
}

// DeliveryPersonUsecase manages delivery person profiles.
type DeliveryPersonUsecase interface {
	List(ctx context.Context) ([]*entity.DeliveryPerson, error)
	Get(ctx context.Context, id string) (*entity.DeliveryPerson, error)
	Save(ctx context.Context, person *entity.DeliveryPerson, adminID string) (*entity.DeliveryPerson, error)

	// Delete removes a delivery person no transaction lists.
	Delete(ctx context.Context, id string) error

	// FindByNames resolves "a, b" into snapshots. Unknown names keep an empty id.
	FindByNames(ctx context.Context, names string) ([]entity.UserData, error)
}
