// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityLogger emits access-control events under a fixed component so they
// can be filtered out of the general request log.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on top of the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("security")}
}

// NewSecurityLoggerWithLogger creates a security logger with a specific logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// LogTokenRejected records a bearer token that failed verification.
func (l *SecurityLogger) LogTokenRejected(token, ip, path, reason string) {
	l.logger.Warn().
		Str("event", "token_rejected").
		Str("token", SanitizeToken(token)).
		Str("ip", ip).
		Str("path", path).
		Str("reason", SanitizeError(reason)).
		Msg("Authentication token rejected")
}

// LogAccessDenied records an authorization decision that refused a request.
func (l *SecurityLogger) LogAccessDenied(userID int64, role, object, action, ip string) {
	l.logger.Warn().
		Str("event", "access_denied").
		Int64("user_id", userID).
		Str("role", role).
		Str("object", object).
		Str("action", action).
		Str("ip", ip).
		Msg("Access denied")
}

// SanitizeToken keeps only the first and last four characters of a token.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "[REDACTED]"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// sensitiveMarkers are substrings that cause an error message to be redacted.
var sensitiveMarkers = []string{"secret", "password", "bearer "}

// SanitizeError truncates an error message and drops it entirely when it
// appears to contain credential material.
func SanitizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(lower, marker) {
			return "[REDACTED]"
		}
	}
	return truncateString(msg, 200)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
