package metrics

import (
	"context"

	"fuelflow/internal/domain/repository"
)

type instrumentedStore struct {
	next    repository.DocumentStore
	metrics *Metrics
}

// InstrumentStore counts every operation passing through the store.
func InstrumentStore(next repository.DocumentStore, m *Metrics) repository.DocumentStore {
	if m == nil {
		return next
	}

	return &instrumentedStore{next: next, metrics: m}
}

func (s *instrumentedStore) Get(ctx context.Context, path string, dest any) error {
	err := s.next.Get(ctx, path, dest)
	s.metrics.ObserveStore("get", err)

	return err
}

func (s *instrumentedStore) Set(ctx context.Context, path string, value any) error {
	err := s.next.Set(ctx, path, value)
	s.metrics.ObserveStore("set", err)

	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, path string) error {
	err := s.next.Delete(ctx, path)
	s.metrics.ObserveStore("delete", err)

	return err
}
