package document

import (
	"context"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// customerRepository mirrors customer/bucket.
type customerRepository struct {
	*bucket[entity.Customer]
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.CustomerRepository {
	return &customerRepository{
		bucket: newBucket(store, notifier, constants.PathCustomers, constants.TopicCustomers,
			func(c *entity.Customer) string { return c.Data.UserID },
			(*entity.Customer).Clone,
		),
	}
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.find(ctx, id, repository.ErrCustomerNotFound)
}

func (r *customerRepository) FindByName(ctx context.Context, name string) (*entity.Customer, error) {
	return r.findFirst(ctx, func(c *entity.Customer) bool {
		return c.Data.FullName == name
	}, repository.ErrCustomerNotFound)
}

func (r *customerRepository) Search(ctx context.Context, query string) ([]*entity.Customer, error) {
	return r.filter(ctx, func(c *entity.Customer) bool {
		return containsFold(c.Data.FullName, query)
	})
}

func (r *customerRepository) Save(ctx context.Context, customer *entity.Customer) error {
	return r.put(ctx, customer, domainerrors.CodeSaveCustomer)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, domainerrors.CodeDeleteCustomer, repository.ErrCustomerNotFound)
}
