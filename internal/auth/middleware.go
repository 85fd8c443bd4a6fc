// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mealshare/internal/logging"
)

type contextKey string

// ClaimsContextKey is the context key holding *Claims.
const ClaimsContextKey contextKey = "claims"

// TokenCookieName is the cookie checked when no Authorization header is sent.
const TokenCookieName = "token"

var (
	errMissingToken  = errors.New("missing token")
	errInvalidHeader = errors.New("invalid authorization header")
)

// Middleware authenticates requests with JWT bearer tokens.
type Middleware struct {
	jwtManager *JWTManager
	security   *logging.SecurityLogger
}

// NewMiddleware creates authentication middleware around a JWT manager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		security:   logging.NewSecurityLogger(),
	}
}

// Authenticate rejects requests without a valid token with 401.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			writeUnauthorized(w, r, "authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.security.LogTokenRejected(token, r.RemoteAddr, r.URL.Path, err.Error())
			writeUnauthorized(w, r, "invalid token")
			return
		}

		next(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

// OptionalAuthenticate attaches claims when a valid token is present and
// otherwise passes the request through as anonymous.
func (m *Middleware) OptionalAuthenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			next(w, r)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.security.LogTokenRejected(token, r.RemoteAddr, r.URL.Path, err.Error())
			next(w, r)
			return
		}

		next(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the authenticated user ID or 0 for anonymous.
func UserIDFromContext(ctx context.Context) int64 {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return 0
}

// ContextWithClaims stores claims in ctx. Used by tests and internal callers.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return withClaims(ctx, claims)
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return logging.ContextWithUserID(ctx, claims.UserID)
}

// extractToken reads the Authorization header, falling back to the token cookie.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			return "", errMissingToken
		}
		return cookie.Value, nil
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errInvalidHeader
	}
	return strings.TrimSpace(token), nil
}

type errorBody struct {
	Success bool       `json:"success"`
	Error   errorInner `json:"error"`
}

type errorInner struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeUnauthorized writes the same envelope the API layer uses.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="mealshare"`)
	w.WriteHeader(http.StatusUnauthorized)

	body := errorBody{Error: errorInner{
		Code:      "UNAUTHORIZED",
		Message:   message,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode auth error")
	}
}
