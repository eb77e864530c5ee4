package document

import (
	"context"
	"slices"
	"sync"
	"time"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// depositRepository mirrors depositObjectList/{customerId}/{transactionId}.
type depositRepository struct {
	store    repository.DocumentStore
	notifier service.ChangeNotifier

	loadMu    sync.Mutex
	mu        sync.RWMutex
	byCust    map[string]map[string]*entity.DepositEntry
	loaded    bool
	refreshed time.Time
}

// NewDepositRepository is the constructor for depositRepository.
func NewDepositRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.DepositRepository {
	return &depositRepository{
		store:    store,
		notifier: notifier,
		byCust:   map[string]map[string]*entity.DepositEntry{},
	}
}

func (r *depositRepository) Topic() string {
	return constants.TopicDeposits
}

func (r *depositRepository) Load(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	return r.fetch(ctx)
}

func (r *depositRepository) Refresh(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	err := r.fetch(ctx)
	r.emit(ctx, entity.ChangeRefreshed, "", err == nil)

	return err
}

func (r *depositRepository) fetch(ctx context.Context) error {
	byCust := map[string]map[string]*entity.DepositEntry{}
	if err := r.store.Get(ctx, constants.PathDeposits, &byCust); err != nil {
		return domainerrors.NewStoreError(err, domainerrors.CodeRead)
	}
	for custID, deposits := range byCust {
		for id, d := range deposits {
			if d == nil {
				delete(deposits, id)
			}
		}
		if len(deposits) == 0 {
			delete(byCust, custID)
		}
	}

	r.mu.Lock()
	r.byCust = byCust
	r.loaded = true
	r.refreshed = time.Now()
	r.mu.Unlock()

	return nil
}

func (r *depositRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, deposits := range r.byCust {
		n += len(deposits)
	}

	return n
}

func (r *depositRepository) LastRefreshed() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.refreshed
}

func (r *depositRepository) List(ctx context.Context) ([]*entity.DepositEntry, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	custIDs := make([]string, 0, len(r.byCust))
	for custID := range r.byCust {
		custIDs = append(custIDs, custID)
	}
	slices.Sort(custIDs)

	var out []*entity.DepositEntry
	for _, custID := range custIDs {
		out = append(out, sortedDeposits(r.byCust[custID])...)
	}

	return out, nil
}

func (r *depositRepository) ListForCustomer(ctx context.Context, customerID string) ([]*entity.DepositEntry, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedDeposits(r.byCust[customerID]), nil
}

func sortedDeposits(deposits map[string]*entity.DepositEntry) []*entity.DepositEntry {
	ids := make([]string, 0, len(deposits))
	for id := range deposits {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*entity.DepositEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, deposits[id].Clone())
	}

	return out
}

func (r *depositRepository) FindByID(ctx context.Context, customerID, id string) (*entity.DepositEntry, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byCust[customerID][id]
	if !ok {
		return nil, repository.ErrDepositNotFound
	}

	return d.Clone(), nil
}

func (r *depositRepository) CustomerHasData(ctx context.Context, customerID string) (bool, error) {
	if err := r.Load(ctx); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byCust[customerID]) > 0, nil
}

func depositPath(customerID, id string) string {
	return constants.PathDeposits + "/" + customerID + "/" + id
}

func (r *depositRepository) Save(ctx context.Context, deposit *entity.DepositEntry) error {
	custID := deposit.Data.Customer.UserID
	id := deposit.ID()
	if custID == "" || id == "" {
		return domainerrors.ErrValidationFailed.WithDetails("deposit customer and id are required")
	}

	if err := r.store.Set(ctx, depositPath(custID, id), deposit); err != nil {
		r.emit(ctx, entity.ChangeSaved, id, false)

		return domainerrors.NewStoreError(err, domainerrors.CodeSaveDeposit)
	}

	r.mu.Lock()
	if r.byCust[custID] == nil {
		r.byCust[custID] = map[string]*entity.DepositEntry{}
	}
	r.byCust[custID][id] = deposit.Clone()
	r.mu.Unlock()

	r.emit(ctx, entity.ChangeSaved, id, true)

	return nil
}

func (r *depositRepository) Delete(ctx context.Context, customerID, id string) error {
	if _, err := r.FindByID(ctx, customerID, id); err != nil {
		return err
	}

	if err := r.store.Delete(ctx, depositPath(customerID, id)); err != nil {
		r.emit(ctx, entity.ChangeDeleted, id, false)

		return domainerrors.NewStoreError(err, domainerrors.CodeDeleteDeposit)
	}

	r.mu.Lock()
	delete(r.byCust[customerID], id)
	if len(r.byCust[customerID]) == 0 {
		delete(r.byCust, customerID)
	}
	r.mu.Unlock()

	r.emit(ctx, entity.ChangeDeleted, id, true)

	return nil
}

func (r *depositRepository) emit(ctx context.Context, action entity.ChangeAction, id string, success bool) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(ctx, entity.ChangeEvent{
		Topic:   constants.TopicDeposits,
		Action:  action,
		ID:      id,
		Success: success,
	})
}
