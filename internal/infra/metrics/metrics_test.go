package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuelflow/internal/infra/persistence/memory"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentStore_CountsOperations(t *testing.T) {
	m := New()
	store := InstrumentStore(memory.NewStore(), m)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tagList/T1", map[string]string{"name": "urgent"}))
	var out map[string]string
	require.NoError(t, store.Get(ctx, "tagList/T1", &out))
	require.NoError(t, store.Delete(ctx, "tagList/T1"))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, store.Get(cancelled, "tagList", &out))

	assert.InDelta(t, 1, testutil.ToFloat64(m.storeOps.WithLabelValues("set", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.storeOps.WithLabelValues("get", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.storeOps.WithLabelValues("delete", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.storeOps.WithLabelValues("get", "error")), 0)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	m.ObserveStore("get", nil)
	m.ObserveCache("customer/bucket", true)
	m.ObserveChange("customers", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMiddleware_RecordsRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/products/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/P1", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/v1/products/:id", "204")), 0)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), "fuelflow_http_requests_total"))
}
