package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/todoflow-labs/todo-api/internal/logging"
)

// Operation results used as the "result" label.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	TodoOperationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_api_operations_total",
			Help: "Todo item operations by operation and result.",
		},
		[]string{"operation", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_api_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	EventPublishCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_api_events_published_total",
			Help: "Todo change events handed to the broker, by type and result.",
		},
		[]string{"type", "result"},
	)
)

// Init serves /metrics on addr in the background. An empty addr disables it.
func Init(addr string, logger *logging.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	logger.Info().Msgf("metrics server listening on %s", addr)
}
