package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrEntryNotFound is returned when a transaction is not found.
var ErrEntryNotFound = errors.New("transaction not found")

// EntryRepository holds the full transaction map.
type EntryRepository interface {
	Collection[entity.EntryTransaction]

	// ListForCustomer returns the customer's entries ascending by transaction id.
	ListForCustomer(ctx context.Context, customerID string) ([]*entity.EntryTransaction, error)

	// ListForDeliveryPerson returns entries naming the person in their delivery
	// list, ascending by transaction id.
	ListForDeliveryPerson(ctx context.Context, personID string) ([]*entity.EntryTransaction, error)

	// CustomerHasData reports whether any entry references the customer.
	CustomerHasData(ctx context.Context, customerID string) (bool, error)

	// DeliveryPersonHasData reports whether any entry lists the delivery person.
	DeliveryPersonHasData(ctx context.Context, personID string) (bool, error)

	// SaveEach writes every entry individually, merges the ones that were
	// written and emits a single change event. Failed ids map to their error.
	SaveEach(ctx context.Context, entries []*entity.EntryTransaction) (saved []string, failed map[string]error)
}
