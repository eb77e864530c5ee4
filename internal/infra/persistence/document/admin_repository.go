package document

import (
	"context"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// adminRepository mirrors admin.
type adminRepository struct {
	*bucket[entity.Admin]
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.AdminRepository {
	return &adminRepository{
		bucket: newBucket(store, notifier, constants.PathAdmins, constants.TopicAdmins,
			func(a *entity.Admin) string { return a.Data.UserID },
			(*entity.Admin).Clone,
		),
	}
}

func (r *adminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	return r.find(ctx, id, repository.ErrAdminNotFound)
}

func (r *adminRepository) Search(ctx context.Context, query string) ([]*entity.Admin, error) {
	return r.filter(ctx, func(a *entity.Admin) bool {
		return containsFold(a.Data.FullName, query)
	})
}

func (r *adminRepository) Save(ctx context.Context, admin *entity.Admin) error {
	return r.put(ctx, admin, domainerrors.CodeAdmin)
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, domainerrors.CodeAdmin, repository.ErrAdminNotFound)
}

// AccessKey is read straight from the store so a rotated key applies at once.
func (r *adminRepository) AccessKey(ctx context.Context) (string, error) {
	var key string
	if err := r.store.Get(ctx, constants.PathAccessKey, &key); err != nil {
		return "", domainerrors.NewStoreError(err, domainerrors.CodeAdmin)
	}

	return key, nil
}
