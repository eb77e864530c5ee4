package usecase

import (
	"context"
	"time"

	"fuelflow/internal/domain/entity"
)

// RepositoryStatus describes one in-memory repository.
type RepositoryStatus struct {
	Topic         string    `json:"topic"`
	Count         int       `json:"count"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

// SyncUsecase loads the repositories and keeps them in step with other instances.
type SyncUsecase interface {
	// LoadAll fetches every repository in parallel.
	LoadAll(ctx context.Context) error

	// Refresh reloads the repository behind topic.
	Refresh(ctx context.Context, topic string) error

	// ApplyRemoteChange refreshes the repository an event from another
	// instance touched. Events this instance produced are ignored.
	ApplyRemoteChange(ctx context.Context, event *entity.ChangeEvent) (bool, error)

	// Status lists every repository in topic order.
	Status() []RepositoryStatus
}
