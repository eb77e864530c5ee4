package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/usecase"
	"fuelflow/internal/util"

	"github.com/pkg/errors"
)

type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
	now         clock
}

// NewProductService creates the product usecase.
func NewProductService(productRepo repository.ProductRepository, logger *slog.Logger) usecase.ProductUsecase {
	return &productService{
		productRepo: productRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (srv *productService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, repository.ErrProductNotFound, "product")
	}

	return product, nil
}

func (srv *productService) Save(ctx context.Context, product *entity.Product, adminID string) (*entity.Product, error) {
	product.Data.Name = strings.TrimSpace(product.Data.Name)
	var invalid []string
	if product.Data.Name == "" {
		invalid = append(invalid, "name")
	}
	if product.Data.Rate < 0 {
		invalid = append(invalid, "rate")
	}
	if len(invalid) > 0 {
		return nil, validationError(invalid)
	}

	nowMillis := util.EpochMillis(srv.now())
	if product.Data.ProductID == "" {
		product.Data.ProductID = util.UserID()
		product.Others = entity.Audit{CreatedBy: adminID, CreatedTime: nowMillis}
	} else if existing, err := srv.productRepo.FindByID(ctx, product.Data.ProductID); err == nil {
		product.Others = existing.Others
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, errors.Wrap(err, "failed to find product")
	}
	product.Others.EditedBy = adminID
	product.Others.EditedTime = nowMillis

	if err := srv.productRepo.Save(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to save product")
	}
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Product saved", slog.String("product_id", product.Data.ProductID))

	return product, nil
}

func (srv *productService) Delete(ctx context.Context, id string) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return notFound(err, repository.ErrProductNotFound, "product")
	}

	return nil
}

type tagService struct {
	tagRepo repository.TagRepository
	now     clock
}

// NewTagService creates the tag usecase.
func NewTagService(tagRepo repository.TagRepository) usecase.TagUsecase {
	return &tagService{
		tagRepo: tagRepo,
		now:     time.Now,
	}
}

func (srv *tagService) List(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := srv.tagRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	return tags, nil
}

func (srv *tagService) Get(ctx context.Context, id string) (*entity.Tag, error) {
	tag, err := srv.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, repository.ErrTagNotFound, "tag")
	}

	return tag, nil
}

func (srv *tagService) Save(ctx context.Context, tag *entity.Tag, adminID string) (*entity.Tag, error) {
	tag.Data.Name = strings.TrimSpace(tag.Data.Name)
	if tag.Data.Name == "" {
		return nil, validationError([]string{"name"})
	}

	now := srv.now()
	if tag.Data.TagID == "" {
		tag.Data.TagID = util.TagID(now)
		tag.Others = entity.Audit{CreatedBy: adminID, CreatedTime: util.EpochMillis(now)}
	} else if existing, err := srv.tagRepo.FindByID(ctx, tag.Data.TagID); err == nil {
		tag.Others = existing.Others
	} else if !errors.Is(err, repository.ErrTagNotFound) {
		return nil, errors.Wrap(err, "failed to find tag")
	}
	tag.Others.EditedBy = adminID
	tag.Others.EditedTime = util.EpochMillis(now)

	if err := srv.tagRepo.Save(ctx, tag); err != nil {
		return nil, errors.Wrap(err, "failed to save tag")
	}

	return tag, nil
}

func (srv *tagService) Delete(ctx context.Context, id string) error {
	if err := srv.tagRepo.Delete(ctx, id); err != nil {
		return notFound(err, repository.ErrTagNotFound, "tag")
	}

	return nil
}
