package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// localHTTPPublisher implements EventPublisher by sending HTTP POST requests
// to a local endpoint, simulating Pub/Sub push behavior for development
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// PushMessage represents the structure of a Pub/Sub push message.
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func eventAttributes(event *entity.ChangeEvent) map[string]string {
	attributes := map[string]string{
		"topic":  event.Topic,
		"action": string(event.Action),
		"origin": event.Origin,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// NewPushMessage wraps a change event the way a push subscription delivers it.
func NewPushMessage(event *entity.ChangeEvent) (*PushMessage, error) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pushMsg := &PushMessage{
		Subscription: "projects/local/subscriptions/fuelflow-changes",
	}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	pushMsg.Message.MessageID = uuid.NewString()
	pushMsg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	pushMsg.Message.Attributes = eventAttributes(event)

	return pushMsg, nil
}

// PublishChangeEvent publishes an event by sending HTTP POST to the local endpoint
func (p *localHTTPPublisher) PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error {
	pushMsg, err := NewPushMessage(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Add X-Request-Id header for tracing
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("worker returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Debug("[LocalPubSub] Change event published",
		slog.String("endpoint", p.endpoint),
		slog.String("topic", event.Topic),
		slog.String("id", event.ID),
	)

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}
