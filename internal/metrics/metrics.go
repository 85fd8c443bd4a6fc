// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealshare_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealshare_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mealshare_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Shopping List Metrics
	ShoppingRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mealshare_shopping_render_duration_seconds",
			Help:    "Time spent rendering a shopping list PDF",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	ShoppingListLines = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mealshare_shopping_list_lines",
			Help:    "Number of aggregated lines per shopping list",
			Buckets: []float64{0, 1, 5, 10, 25, 30, 50, 100, 250},
		},
	)

	ShoppingRenderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_shopping_render_errors_total",
			Help: "Total number of failed shopping list renders",
		},
		[]string{"op"},
	)

	ShoppingUnitConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealshare_shopping_unit_conflicts_total",
			Help: "Ingredient names merged across differing measurement units",
		},
	)

	ShoppingRenderThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealshare_shopping_render_throttled_total",
			Help: "Downloads rejected because the render limiter was exhausted",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mealshare_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Metrics
	ListMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_list_mutations_total",
			Help: "Shopping cart and favorites changes",
		},
		[]string{"list", "action"}, // list: cart, favorites; action: add, remove
	)

	CatalogCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_catalog_cache_requests_total",
			Help: "Tag and ingredient listing lookups served from or missing the cache",
		},
		[]string{"kind", "result"}, // kind: tags, ingredients; result: hit, miss
	)

	CatalogCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mealshare_catalog_cache_entries",
			Help: "Catalog cache entries left after the last sweep",
		},
		[]string{"kind"},
	)

	SeedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_seed_records_total",
			Help: "Records imported from the seed fixture",
		},
		[]string{"kind"},
	)

	// Authorization Metrics
	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealshare_authz_decisions_total",
			Help: "Casbin authorization decisions",
		},
		[]string{"object", "action", "result"}, // result: allowed, denied, error
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mealshare_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mealshare_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
}

// errorType buckets query errors into a small label set.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "query"
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordShoppingRender records one PDF render. op is empty on success and
// names the failed stage otherwise.
func RecordShoppingRender(lines int, duration time.Duration, op string) {
	ShoppingListLines.Observe(float64(lines))
	if op != "" {
		ShoppingRenderErrors.WithLabelValues(op).Inc()
		return
	}
	ShoppingRenderDuration.Observe(duration.Seconds())
}

// RecordUnitConflicts counts merged names whose units differed.
func RecordUnitConflicts(n int) {
	if n > 0 {
		ShoppingUnitConflicts.Add(float64(n))
	}
}

// RecordListMutation counts a cart or favorites change.
func RecordListMutation(list, action string) {
	ListMutations.WithLabelValues(list, action).Inc()
}

// RecordCatalogCache counts a catalog cache lookup.
func RecordCatalogCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CatalogCacheRequests.WithLabelValues(kind, result).Inc()
}

// RecordAuthzDecision counts one authorization decision.
func RecordAuthzDecision(object, action, result string) {
	AuthzDecisions.WithLabelValues(object, action, result).Inc()
}
