// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package logging provides centralized zerolog-based structured logging for Mealshare.
//
// A single global logger is configured once at startup from LOG_LEVEL,
// LOG_FORMAT and LOG_CALLER and used through package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int64("user_id", id).Msg("Shopping list rendered")
//
// # Request Context
//
// The HTTP middleware stores a request ID and, once authenticated, the user
// ID in the request context. Ctx and CtxWith attach both to every line:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Cart read failed")
//
// # slog Bridge
//
// SlogHandler forwards log/slog records to zerolog. The supervisor tree uses
// it through sutureslog so service restarts appear in the same JSON stream.
//
// # Security Events
//
// SecurityLogger records rejected tokens and authorization denials. Tokens are
// passed through SanitizeToken before they are written.
package logging
