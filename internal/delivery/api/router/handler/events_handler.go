package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/service"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	eventBuffer    = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxClientFrame = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandlerParams holds dependencies for EventsHandler, injected by Fx.
type EventsHandlerParams struct {
	fx.In

	Lc       fx.Lifecycle `optional:"true"`
	Notifier service.ChangeNotifier
}

// EventsHandler streams repository change events to browsers
type EventsHandler struct {
	notifier service.ChangeNotifier

	done      chan struct{}
	closeOnce sync.Once
}

// NewEventsHandler is the constructor for EventsHandler
func NewEventsHandler(params EventsHandlerParams) *EventsHandler {
	h := &EventsHandler{
		notifier: params.Notifier,
		done:     make(chan struct{}),
	}

	// Hijacked connections are not closed by the HTTP server shutdown
	if params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				h.Shutdown()

				return nil
			},
		})
	}

	return h
}

// Shutdown sends a going-away close frame on every open stream and ends it.
func (h *EventsHandler) Shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Stream upgrades the request and writes every change event as JSON until
// the client goes away.
func (h *EventsHandler) Stream(c echo.Context) error {
	logger := deliverycontext.Logger(c.Request().Context())

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the error response
		logger.Warn("WebSocket upgrade failed", slog.Any("error", err))

		return nil
	}
	defer conn.Close()

	events, cancel := h.notifier.Subscribe(eventBuffer)
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)

		conn.SetReadLimit(maxClientFrame)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return nil
		case <-h.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))

			return nil
		case event, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))

				return nil
			}
			if err := conn.WriteJSON(event); err != nil {
				logger.Debug("WebSocket client gone", slog.Any("error", err))

				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
