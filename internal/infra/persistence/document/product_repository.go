package document

import (
	"context"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// productRepository mirrors productList.
type productRepository struct {
	*bucket[entity.Product]
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.ProductRepository {
	return &productRepository{
		bucket: newBucket(store, notifier, constants.PathProducts, constants.TopicProducts,
			func(p *entity.Product) string { return p.Data.ProductID },
			(*entity.Product).Clone,
		),
	}
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.find(ctx, id, repository.ErrProductNotFound)
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.findFirst(ctx, func(p *entity.Product) bool {
		return p.Data.Name == name
	}, repository.ErrProductNotFound)
}

func (r *productRepository) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	return r.filter(ctx, func(p *entity.Product) bool {
		return containsFold(p.Data.Name, query)
	})
}

func (r *productRepository) Save(ctx context.Context, product *entity.Product) error {
	return r.put(ctx, product, domainerrors.CodeSaveProduct)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, domainerrors.CodeDeleteProduct, repository.ErrProductNotFound)
}
