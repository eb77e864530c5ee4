package document

import (
	"context"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// tagRepository mirrors tagList.
type tagRepository struct {
	*bucket[entity.Tag]
}

// NewTagRepository is the constructor for tagRepository.
func NewTagRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.TagRepository {
	return &tagRepository{
		bucket: newBucket(store, notifier, constants.PathTags, constants.TopicTags,
			func(t *entity.Tag) string { return t.Data.TagID },
			(*entity.Tag).Clone,
		),
	}
}

func (r *tagRepository) FindByID(ctx context.Context, id string) (*entity.Tag, error) {
	return r.find(ctx, id, repository.ErrTagNotFound)
}

func (r *tagRepository) Save(ctx context.Context, tag *entity.Tag) error {
	return r.put(ctx, tag, domainerrors.CodeSaveTag)
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, domainerrors.CodeDeleteTag, repository.ErrTagNotFound)
}
