// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package authz

import (
	"net/http"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/models"
)

// DenyFunc writes the response for a refused request. status is 401 for
// anonymous callers, 403 for authenticated ones and 500 on enforcer errors.
type DenyFunc func(w http.ResponseWriter, r *http.Request, status int, message string)

// Middleware authorizes requests against the casbin policy.
type Middleware struct {
	enforcer *Enforcer
	deny     DenyFunc
	security *logging.SecurityLogger
}

// NewMiddleware creates authorization middleware. A nil deny uses http.Error.
func NewMiddleware(enforcer *Enforcer, deny DenyFunc) *Middleware {
	if deny == nil {
		deny = func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{
		enforcer: enforcer,
		deny:     deny,
		security: logging.NewSecurityLogger(),
	}
}

// Authorize checks the caller's role against object, with the action taken
// from the HTTP method. It must run after auth middleware has set claims.
func (m *Middleware) Authorize(object string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := models.RoleAnonymous
		var userID int64
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			role, userID = claims.Role, claims.UserID
		}

		action := methodToAction(r.Method)
		allowed, err := m.enforcer.Enforce(role, object, action)
		if err != nil {
			metrics.RecordAuthzDecision(object, action, "error")
			logging.Ctx(r.Context()).Error().Err(err).Str("object", object).Msg("Authorization error")
			m.deny(w, r, http.StatusInternalServerError, "authorization failed")
			return
		}

		if !allowed {
			metrics.RecordAuthzDecision(object, action, "denied")
			m.security.LogAccessDenied(userID, role, object, action, r.RemoteAddr)
			if role == models.RoleAnonymous {
				m.deny(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			m.deny(w, r, http.StatusForbidden, "insufficient permissions")
			return
		}

		metrics.RecordAuthzDecision(object, action, "allowed")
		next(w, r)
	}
}

// methodToAction maps HTTP methods to casbin actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return ActionWrite
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionRead
	}
}
