package document

import (
	"context"
	"slices"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// moveHistoryRepository mirrors moveEntryHistory.
type moveHistoryRepository struct {
	*bucket[entity.MoveEntryPayload]
}

// NewMoveHistoryRepository is the constructor for moveHistoryRepository.
func NewMoveHistoryRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.MoveHistoryRepository {
	return &moveHistoryRepository{
		bucket: newBucket(store, notifier, constants.PathMoveHistory, constants.TopicMoveHistory,
			func(m *entity.MoveEntryPayload) string { return m.MoveID },
			(*entity.MoveEntryPayload).Clone,
		),
	}
}

// List orders by move time because move ids start with DDMMYYYY and do not sort.
func (r *moveHistoryRepository) List(ctx context.Context) ([]*entity.MoveEntryPayload, error) {
	all, err := r.bucket.List(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(all, func(a, b *entity.MoveEntryPayload) int {
		switch {
		case a.MoveTime > b.MoveTime:
			return -1
		case a.MoveTime < b.MoveTime:
			return 1
		default:
			return 0
		}
	})

	return all, nil
}

func (r *moveHistoryRepository) FindByID(ctx context.Context, moveID string) (*entity.MoveEntryPayload, error) {
	return r.find(ctx, moveID, repository.ErrMoveNotFound)
}

func (r *moveHistoryRepository) Append(ctx context.Context, payload *entity.MoveEntryPayload) error {
	return r.put(ctx, payload, domainerrors.CodeMoveHistory)
}
