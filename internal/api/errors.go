// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import "errors"

var (
	// ErrStoreUnavailable is returned when the cart circuit breaker is open
	// and store reads are being shed.
	ErrStoreUnavailable = errors.New("store temporarily unavailable")

	// errInvalidQuery marks a query parameter that could not be parsed.
	errInvalidQuery = errors.New("invalid query parameter")
)
