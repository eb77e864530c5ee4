package service

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// EventPublisher defines the interface for publishing change events to a message queue
// so that other instances can refresh their in-memory repositories.
type EventPublisher interface {
	// PublishChangeEvent publishes a change event for async processing
	PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
