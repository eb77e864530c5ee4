package service

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// ChangeNotifier fans repository change events out to in-process consumers.
type ChangeNotifier interface {
	// Notify records the event and delivers it to every subscriber without blocking.
	Notify(ctx context.Context, event entity.ChangeEvent)

	// Subscribe returns a channel of events and a function that cancels the subscription.
	Subscribe(buffer int) (<-chan entity.ChangeEvent, func())

	// Version increases with every successful change and lets views detect staleness.
	Version() uint64

	// Origin identifies this instance on the events it produces.
	Origin() string
}
