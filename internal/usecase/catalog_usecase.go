package usecase

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// ProductUsecase manages the product catalogue.
type ProductUsecase interface {
	List(ctx context.Context) ([]*entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Save(ctx context.Context, product *entity.Product, adminID string) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// TagUsecase manages transaction tags.
type TagUsecase interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	Get(ctx context.Context, id string) (*entity.Tag, error)
	Save(ctx context.Context, tag *entity.Tag, adminID string) (*entity.Tag, error)
	Delete(ctx context.Context, id string) error
}
