// Package broadcast fans repository change events out to in-process
// subscribers and forwards local changes to other instances.
package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/lifecycle"
	"fuelflow/internal/domain/service"
	"fuelflow/internal/infra/metrics"

	"github.com/google/uuid"
)

// Hub implements service.ChangeNotifier.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan entity.ChangeEvent
	nextID uint64

	version   atomic.Uint64
	origin    string
	publisher service.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	inflight  sync.WaitGroup
}

// NewHub creates a hub. publisher may be nil.
func NewHub(publisher service.EventPublisher, m *metrics.Metrics, logger *slog.Logger) *Hub {
	return &Hub{
		subs:      map[uint64]chan entity.ChangeEvent{},
		origin:    uuid.NewString(),
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

var _ service.ChangeNotifier = (*Hub)(nil)

// Origin identifies this instance on forwarded events.
func (h *Hub) Origin() string {
	return h.origin
}

// Version implements service.ChangeNotifier.
func (h *Hub) Version() uint64 {
	return h.version.Load()
}

// Notify implements service.ChangeNotifier. Slow subscribers miss events
// rather than stall the writer.
func (h *Hub) Notify(ctx context.Context, event entity.ChangeEvent) {
	if event.Origin == "" {
		event.Origin = h.origin
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if event.RequestID == "" {
		event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	}

	h.metrics.ObserveChange(event.Topic, event.Success)
	if event.Success {
		h.version.Add(1)
	}

	h.mu.RLock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	h.mu.RUnlock()

	if h.shouldForward(event) {
		h.forward(ctx, event)
	}
}

// Only successful local writes travel; refreshes would echo between instances.
func (h *Hub) shouldForward(event entity.ChangeEvent) bool {
	return h.publisher != nil &&
		event.Success &&
		event.Origin == h.origin &&
		event.Action != entity.ChangeRefreshed
}

func (h *Hub) forward(ctx context.Context, event entity.ChangeEvent) {
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
		defer cancel()

		if err := h.publisher.PublishChangeEvent(pubCtx, &event); err != nil {
			h.logger.Error("Failed to publish change event",
				slog.String("topic", event.Topic),
				slog.String("id", event.ID),
				slog.Any("error", err),
			)
		}
	}()
}

// Subscribe implements service.ChangeNotifier.
func (h *Hub) Subscribe(buffer int) (<-chan entity.ChangeEvent, func()) {
	ch := make(chan entity.ChangeEvent, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Wait blocks until every forwarded event has been handed to the publisher.
func (h *Hub) Wait() {
	h.inflight.Wait()
}
