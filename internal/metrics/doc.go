// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are served by promhttp at /metrics.

# Available Metrics

HTTP:
  - mealshare_api_requests_total{method,endpoint,status_code}
  - mealshare_api_request_duration_seconds{method,endpoint}
  - mealshare_api_active_requests
  - mealshare_api_rate_limit_hits_total{endpoint}

Database:
  - mealshare_db_query_duration_seconds{operation,table}
  - mealshare_db_query_errors_total{operation,table,error_type}

Shopping list:
  - mealshare_shopping_render_duration_seconds
  - mealshare_shopping_list_lines
  - mealshare_shopping_render_errors_total{op}
  - mealshare_shopping_unit_conflicts_total
  - mealshare_shopping_render_throttled_total

Circuit breaker (cart reads):
  - mealshare_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - mealshare_circuit_breaker_requests_total{name,result}
  - mealshare_circuit_breaker_state_transitions_total{name,from_state,to_state}

Catalog:
  - mealshare_list_mutations_total{list,action}
  - mealshare_seed_records_total{kind}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "recipes", time.Since(start), err)

The endpoint label always carries the chi route pattern, never the raw path,
so recipe IDs do not create new series.
*/
package metrics
