// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/shopping"
)

const (
	cartBreakerName         = "cart-store"
	defaultFailureThreshold = 5
)

// CartReader loads the raw ingredient lines of a user's cart.
type CartReader interface {
	CartLines(ctx context.Context, userID int64) ([]shopping.CartLine, error)
}

// cartSource reads cart lines through a circuit breaker so a failing store
// is shed quickly instead of tying up PDF downloads.
//
// Only connection-level failures and deadlines count against the breaker;
// query errors and client cancellations do not.
type cartSource struct {
	reader CartReader
	cb     *gobreaker.CircuitBreaker[[]shopping.CartLine]
	name   string
}

func newCartSource(reader CartReader, cfg config.BreakerConfig) *cartSource {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = defaultFailureThreshold
	}

	metrics.CircuitBreakerState.WithLabelValues(cartBreakerName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]shopping.CartLine](gobreaker.Settings{
		Name:        cartBreakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures < threshold {
				return false
			}
			logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			return true
		},

		IsSuccessful: func(err error) bool {
			return err == nil || !(database.IsConnectionError(err) || errors.Is(err, context.DeadlineExceeded))
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &cartSource{reader: reader, cb: cb, name: cartBreakerName}
}

// Lines returns the cart lines for userID. When the breaker rejects the call
// the error wraps ErrStoreUnavailable.
func (c *cartSource) Lines(ctx context.Context, userID int64) ([]shopping.CartLine, error) {
	lines, err := c.cb.Execute(func() ([]shopping.CartLine, error) {
		return c.reader.CartLines(ctx, userID)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	return lines, nil
}

// State returns the breaker state for health reporting.
func (c *cartSource) State() gobreaker.State {
	return c.cb.State()
}

// stateToFloat converts circuit breaker state to a gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
