// Package document implements the repositories on top of a DocumentStore.
// Each repository mirrors one root of the store in memory and follows the
// same write contract: the remote write must succeed before the map changes.
package document

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// bucket is the in-memory mirror of a root whose children are records keyed by id.
type bucket[T any] struct {
	store    repository.DocumentStore
	notifier service.ChangeNotifier
	root     string
	topic    string
	idOf     func(*T) string
	clone    func(*T) *T

	loadMu    sync.Mutex
	mu        sync.RWMutex
	items     map[string]*T
	loaded    bool
	refreshed time.Time
}

func newBucket[T any](
	store repository.DocumentStore,
	notifier service.ChangeNotifier,
	root, topic string,
	idOf func(*T) string,
	clone func(*T) *T,
) *bucket[T] {
	return &bucket[T]{
		store:    store,
		notifier: notifier,
		root:     root,
		topic:    topic,
		idOf:     idOf,
		clone:    clone,
		items:    map[string]*T{},
	}
}

func (b *bucket[T]) Topic() string {
	return b.topic
}

func (b *bucket[T]) Load(ctx context.Context) error {
	b.loadMu.Lock()
	defer b.loadMu.Unlock()

	b.mu.RLock()
	loaded := b.loaded
	b.mu.RUnlock()
	if loaded {
		return nil
	}

	return b.fetch(ctx)
}

func (b *bucket[T]) Refresh(ctx context.Context) error {
	b.loadMu.Lock()
	defer b.loadMu.Unlock()

	err := b.fetch(ctx)
	b.emit(ctx, entity.ChangeRefreshed, "", err == nil)

	return err
}

func (b *bucket[T]) fetch(ctx context.Context) error {
	items := map[string]*T{}
	if err := b.store.Get(ctx, b.root, &items); err != nil {
		return domainerrors.NewStoreError(err, domainerrors.CodeRead)
	}
	for id, item := range items {
		if item == nil {
			delete(items, id)
		}
	}

	b.mu.Lock()
	b.items = items
	b.loaded = true
	b.refreshed = time.Now()
	b.mu.Unlock()

	return nil
}

func (b *bucket[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.items)
}

func (b *bucket[T]) LastRefreshed() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.refreshed
}

// List returns clones ordered by id.
func (b *bucket[T]) List(ctx context.Context) ([]*T, error) {
	return b.filter(ctx, nil)
}

func (b *bucket[T]) filter(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	if err := b.Load(ctx); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.items))
	for id, item := range b.items {
		if keep == nil || keep(item) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.clone(b.items[id]))
	}

	return out, nil
}

// exists reports whether some record satisfies match.
func (b *bucket[T]) exists(ctx context.Context, match func(*T) bool) (bool, error) {
	if err := b.Load(ctx); err != nil {
		return false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, item := range b.items {
		if match(item) {
			return true, nil
		}
	}

	return false, nil
}

func (b *bucket[T]) find(ctx context.Context, id string, notFound error) (*T, error) {
	if err := b.Load(ctx); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	item, ok := b.items[id]
	if !ok {
		return nil, notFound
	}

	return b.clone(item), nil
}

// findFirst returns the first record, in id order, that satisfies match.
func (b *bucket[T]) findFirst(ctx context.Context, match func(*T) bool, notFound error) (*T, error) {
	found, err := b.filter(ctx, match)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, notFound
	}

	return found[0], nil
}

func (b *bucket[T]) path(id string) string {
	return b.root + "/" + id
}

// put writes one record and merges it once the store accepted it.
func (b *bucket[T]) put(ctx context.Context, item *T, code int) error {
	id := b.idOf(item)
	if strings.TrimSpace(id) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("record id is required")
	}

	if err := b.store.Set(ctx, b.path(id), item); err != nil {
		b.emit(ctx, entity.ChangeSaved, id, false)

		return domainerrors.NewStoreError(err, code)
	}

	b.mu.Lock()
	b.items[id] = b.clone(item)
	b.mu.Unlock()

	b.emit(ctx, entity.ChangeSaved, id, true)

	return nil
}

// remove deletes one record remotely and then locally.
func (b *bucket[T]) remove(ctx context.Context, id string, code int, notFound error) error {
	if err := b.Load(ctx); err != nil {
		return err
	}

	b.mu.RLock()
	_, ok := b.items[id]
	b.mu.RUnlock()
	if !ok {
		return notFound
	}

	if err := b.store.Delete(ctx, b.path(id)); err != nil {
		b.emit(ctx, entity.ChangeDeleted, id, false)

		return domainerrors.NewStoreError(err, code)
	}

	b.mu.Lock()
	delete(b.items, id)
	b.mu.Unlock()

	b.emit(ctx, entity.ChangeDeleted, id, true)

	return nil
}

func (b *bucket[T]) emit(ctx context.Context, action entity.ChangeAction, id string, success bool) {
	if b.notifier == nil {
		return
	}
	b.notifier.Notify(ctx, entity.ChangeEvent{
		Topic:   b.topic,
		Action:  action,
		ID:      id,
		Success: success,
	})
}

func containsFold(s, query string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(query)))
}
