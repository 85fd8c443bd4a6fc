// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package middleware provides infrastructure HTTP middleware shared by the API router.

Components:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for JSON catalog responses

All middleware has the http.HandlerFunc shape. The router adapts it to chi's
func(http.Handler) http.Handler with a small wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Authentication and authorization middleware live in the auth and authz
packages.
*/
package middleware
