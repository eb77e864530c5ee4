package document

import (
	"context"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// entryRepository mirrors transactionList.
type entryRepository struct {
	*bucket[entity.EntryTransaction]
}

// NewEntryRepository is the constructor for entryRepository.
func NewEntryRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.EntryRepository {
	return &entryRepository{
		bucket: newBucket(store, notifier, constants.PathTransactions, constants.TopicTransactions,
			(*entity.EntryTransaction).ID,
			(*entity.EntryTransaction).Clone,
		),
	}
}

func (r *entryRepository) FindByID(ctx context.Context, id string) (*entity.EntryTransaction, error) {
	return r.find(ctx, id, repository.ErrEntryNotFound)
}

func (r *entryRepository) ListForCustomer(ctx context.Context, customerID string) ([]*entity.EntryTransaction, error) {
	return r.filter(ctx, func(e *entity.EntryTransaction) bool {
		return e.Data.Customer.UserID == customerID
	})
}

func (r *entryRepository) ListForDeliveryPerson(ctx context.Context, personID string) ([]*entity.EntryTransaction, error) {
	return r.filter(ctx, func(e *entity.EntryTransaction) bool {
		return e.HasDeliveryPerson(personID)
	})
}

func (r *entryRepository) CustomerHasData(ctx context.Context, customerID string) (bool, error) {
	return r.exists(ctx, func(e *entity.EntryTransaction) bool {
		return e.Data.Customer.UserID == customerID
	})
}

func (r *entryRepository) DeliveryPersonHasData(ctx context.Context, personID string) (bool, error) {
	return r.exists(ctx, func(e *entity.EntryTransaction) bool {
		return e.HasDeliveryPerson(personID)
	})
}

// Save strips the import row index, which only lives in drafts.
func (r *entryRepository) Save(ctx context.Context, entry *entity.EntryTransaction) error {
	stored := entry.Clone()
	stored.Data.ImportIndex = nil

	return r.put(ctx, stored, domainerrors.CodeSaveEntry)
}

func (r *entryRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, domainerrors.CodeDeleteEntry, domainerrors.NewStoreError(repository.ErrEntryNotFound, domainerrors.CodeMissingEntry))
}

func (r *entryRepository) SaveEach(ctx context.Context, entries []*entity.EntryTransaction) ([]string, map[string]error) {
	saved := make([]string, 0, len(entries))
	failed := map[string]error{}
	merged := make([]*entity.EntryTransaction, 0, len(entries))

	for _, entry := range entries {
		stored := entry.Clone()
		stored.Data.ImportIndex = nil

		if err := r.store.Set(ctx, r.path(stored.ID()), stored); err != nil {
			failed[stored.ID()] = domainerrors.NewStoreError(err, domainerrors.CodeSaveEntry)

			continue
		}
		saved = append(saved, stored.ID())
		merged = append(merged, stored)
	}

	r.mu.Lock()
	for _, entry := range merged {
		r.items[entry.ID()] = entry
	}
	r.mu.Unlock()

	r.emit(ctx, entity.ChangeMoved, "", len(saved) > 0)

	return saved, failed
}
