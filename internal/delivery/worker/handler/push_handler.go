package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"fuelflow/config"
	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/infra/pubsub"
	"fuelflow/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// TokenValidator checks the OIDC token of a push request.
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler applies change events pushed by Pub/Sub from other instances
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validate       TokenValidator
	logger         *slog.Logger
	syncUC         usecase.SyncUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	SyncUC usecase.SyncUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Determine if we need to verify push auth based on config
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	audience := ""
	if params.Config.PubSub != nil {
		audience = params.Config.PubSub.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       audience,
		validate:       idtoken.Validate,
		logger:         params.Logger,
		syncUC:         params.SyncUC,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	// Verify Pub/Sub token in production for Google provider
	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	// Parse Pub/Sub message
	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Decode base64 message data
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event entity.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse change event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Extract request_id for distributed tracing
	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)

	// Create request-scoped logger with request_id
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	// Update context with request_id and logger
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing change event",
		slog.String("topic", event.Topic),
		slog.String("action", string(event.Action)),
		slog.String("id", event.ID),
		slog.String("origin", event.Origin),
	)

	applied, err := h.applyChange(ctx, &event)
	if err != nil {
		reqLogger.Error("[Worker] Failed to apply change event",
			slog.String("topic", event.Topic),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Change event handled",
		slog.String("topic", event.Topic),
		slog.Bool("applied", applied),
	)

	return c.NoContent(http.StatusOK)
}

// applyChange refreshes the repository named by the event. Unknown topics
// are dropped; store failures are retried.
func (h *PushHandler) applyChange(ctx context.Context, event *entity.ChangeEvent) (bool, error) {
	applied, err := h.syncUC.ApplyRemoteChange(ctx, event)
	if err == nil {
		return applied, nil
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return false, err
	}

	return false, newRetryableError(err)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *entity.ChangeEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// Set by RequestIDMiddleware from the X-Request-Id header
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// Without a configured audience the push endpoint URL is expected
	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
