// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	CompletionRequests *prometheus.CounterVec
	CompletionDuration *prometheus.HistogramVec
	ResponsesRecorded  prometheus.Counter
}

// New registers every collector on reg. Passing a fresh registry keeps tests isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexthire",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nexthire",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CompletionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexthire",
			Name:      "completion_requests_total",
			Help:      "Calls to the completion service by operation and outcome.",
		}, []string{"operation", "outcome"}),
		CompletionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nexthire",
			Name:      "completion_duration_seconds",
			Help:      "Completion service latency by operation.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}, []string{"operation"}),
		ResponsesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nexthire",
			Name:      "responses_recorded_total",
			Help:      "Evaluated answers persisted.",
		}),
	}
	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.CompletionRequests,
		m.CompletionDuration,
		m.ResponsesRecorded,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveCompletion records one completion call.
func (m *Metrics) ObserveCompletion(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CompletionRequests.WithLabelValues(operation, outcome).Inc()
	m.CompletionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Middleware counts requests per registered route path, not raw URL, to bound cardinality.
// statusOf maps a handler error to the status the error handler will write; the
// response has not been written yet when the error passes through here.
func (m *Metrics) Middleware(statusOf func(error) int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				switch {
				case statusOf != nil:
					status = statusOf(err)
				case errors.As(err, &he):
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
