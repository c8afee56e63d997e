// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
)

var (
	// RequestsTotal counts handled HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulsecheck_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// RequestDuration samples request latency by method and route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulsecheck_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// TokensIssued counts successful logins.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulsecheck_tokens_issued_total",
		Help: "Session tokens issued.",
	})

	// ChecksCreated counts successfully registered checks.
	ChecksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulsecheck_checks_created_total",
		Help: "Uptime checks registered.",
	})

	// ChecksOrphaned counts checks persisted but never linked to their owner.
	ChecksOrphaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulsecheck_checks_orphaned_total",
		Help: "Checks left unreferenced after a partial failure.",
	})
)

// Middleware records request counts and latencies. The route pattern, not the
// raw path, is used as the label to keep cardinality bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// At this point the error handler has not run yet, so the response
		// status still reads 200 for failed requests; the status the client
		// will see lives on the error itself.
		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			var appErr *apperror.Error
			var fiberErr *fiber.Error
			switch {
			case errors.As(err, &appErr):
				status = appErr.Status
			case errors.As(err, &fiberErr):
				status = fiberErr.Code
			default:
				status = fiber.StatusInternalServerError
			}
		}
		RequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
