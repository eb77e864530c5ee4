// Package metrics exposes Prometheus collectors for the store, the cache and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they need.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	storeOps        *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	changeEvents    *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers every collector.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fuelflow_store_operations_total",
			Help: "Document store operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fuelflow_cache_lookups_total",
			Help: "Snapshot cache lookups by root and result.",
		}, []string{"root", "result"}),
		changeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fuelflow_change_events_total",
			Help: "Repository change events by topic and success.",
		}, []string{"topic", "success"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fuelflow_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fuelflow_http_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	registry.MustRegister(
		m.storeOps,
		m.cacheLookups,
		m.changeEvents,
		m.requestsTotal,
		m.requestDuration,
		prometheus.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// Handler returns the /metrics handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}

	return m.handler
}

// ObserveStore counts one store operation.
func (m *Metrics) ObserveStore(op string, err error) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, outcome(err)).Inc()
}

// ObserveCache counts one cache lookup.
func (m *Metrics) ObserveCache(root string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(root, result).Inc()
}

// ObserveChange counts one change event.
func (m *Metrics) ObserveChange(topic string, success bool) {
	if m == nil {
		return
	}
	m.changeEvents.WithLabelValues(topic, strconv.FormatBool(success)).Inc()
}

// Middleware records request count and latency per echo route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
