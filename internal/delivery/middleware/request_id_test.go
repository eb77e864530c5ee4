package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "fuelflow/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestIDFixtures struct {
	echo *echo.Echo
	logs *bytes.Buffer
}

func createTestRequestID(t *testing.T) *requestIDFixtures {
	t.Helper()

	logs := &bytes.Buffer{}
	e := echo.New()
	e.Use(NewRequestIDMiddleware(slog.New(slog.NewTextHandler(logs, nil))).Process)
	e.GET("/customers/:id", func(c echo.Context) error {
		ctx := c.Request().Context()
		deliverycontext.Logger(ctx).Info("handled")

		return c.String(http.StatusOK, deliverycontext.GetRequestIDFromContext(ctx))
	})

	return &requestIDFixtures{echo: e, logs: logs}
}

func (f *requestIDFixtures) get(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/customers/C1", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func TestRequestIDMiddleware_ReusesClientID(t *testing.T) {
	f := createTestRequestID(t)

	rec := f.get("push-42.a_b")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "push-42.a_b", rec.Body.String())
	assert.Equal(t, "push-42.a_b", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, f.logs.String(), "request_id=push-42.a_b")
	assert.Contains(t, f.logs.String(), "method=GET")
	assert.Contains(t, f.logs.String(), "route=/customers/:id")
}

func TestRequestIDMiddleware_ReplacesMalformedID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "spaces", header: "id with spaces"},
		{name: "too long", header: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestRequestID(t)

			rec := f.get(tt.header)
			require.Equal(t, http.StatusOK, rec.Code)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.NotEqual(t, tt.header, got)
			assert.Len(t, got, 36)
			assert.Equal(t, got, rec.Body.String())
		})
	}
}
