package document

import (
	"context"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// deliveryPersonRepository mirrors deliveryPerson/bucket.
type deliveryPersonRepository struct {
	*bucket[entity.DeliveryPerson]
}

// NewDeliveryPersonRepository is the constructor for deliveryPersonRepository.
func NewDeliveryPersonRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.DeliveryPersonRepository {
	return &deliveryPersonRepository{
		bucket: newBucket(store, notifier, constants.PathDeliveryPersons, constants.TopicDeliveryPersons,
			func(d *entity.DeliveryPerson) string { return d.Data.UserID },
			(*entity.DeliveryPerson).Clone,
		),
	}
}

func (r *deliveryPersonRepository) FindByID(ctx context.Context, id string) (*entity.DeliveryPerson, error) {
	return r.find(ctx, id, repository.ErrDeliveryPersonNotFound)
}

func (r *deliveryPersonRepository) FindByName(ctx context.Context, name string) (*entity.DeliveryPerson, error) {
	return r.findFirst(ctx, func(d *entity.DeliveryPerson) bool {
		return d.Data.FullName == name
	}, repository.ErrDeliveryPersonNotFound)
}

func (r *deliveryPersonRepository) Search(ctx context.Context, query string) ([]*entity.DeliveryPerson, error) {
	return r.filter(ctx, func(d *entity.DeliveryPerson) bool {
		return containsFold(d.Data.FullName, query)
	})
}

func (r *deliveryPersonRepository) Save(ctx context.Context, person *entity.DeliveryPerson) error {
	return r.put(ctx, person, domainerrors.CodeSaveDeliveryPerson)
}

func (r *deliveryPersonRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, domainerrors.CodeDeleteDeliveryPerson, repository.ErrDeliveryPersonNotFound)
}
