package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fuelflow/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PostsPushMessage(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)

			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	event := &entity.ChangeEvent{
		Topic:     "transactions",
		Action:    entity.ChangeSaved,
		ID:        "20240301_100000_aaaaa",
		Success:   true,
		Origin:    "instance-a",
		RequestID: "req-9",
	}

	require.NoError(t, publisher.PublishChangeEvent(context.Background(), event))

	assert.Equal(t, "req-9", requestID)
	assert.Equal(t, "transactions", received.Message.Attributes["topic"])
	assert.Equal(t, "instance-a", received.Message.Attributes["origin"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded entity.ChangeEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Error(t, publisher.PublishChangeEvent(context.Background(), &entity.ChangeEvent{Topic: "tags"}))
}
