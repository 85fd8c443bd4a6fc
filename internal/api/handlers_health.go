// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	SchemaVersion     int     `json:"schema_version"`
	CartBreaker       string  `json:"cart_breaker"`
	Uptime            float64 `json:"uptime"`
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Reports database connectivity, schema version, cart breaker state and uptime
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	var schemaVersion int
	if dbConnected {
		schemaVersion, _ = h.store.GetCurrentSchemaVersion(r.Context())
	}

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	NewResponseWriter(w, r).Success(HealthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		SchemaVersion:     schemaVersion,
		CartBreaker:       h.cart.State().String(),
		Uptime:            time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles liveness probe requests
//
// @Summary Liveness probe
// @Description Returns 200 while the process is running, regardless of dependencies
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests
//
// @Summary Readiness probe
// @Description Returns 200 when the database answers a ping, 503 otherwise
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.store == nil || h.store.Ping(r.Context()) != nil {
		rw.ServiceUnavailable("database is not reachable")
		return
	}
	rw.Success(map[string]interface{}{"ready": true})
}
