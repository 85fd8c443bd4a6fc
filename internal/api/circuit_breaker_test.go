// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mealshare/internal/config"
)

func TestCartSource_OpensOnConnectionErrors(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.cartErr = errors.New("sql: database is closed")
	src := newCartSource(store, config.BreakerConfig{FailureThreshold: 2, Timeout: time.Hour})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := src.Lines(ctx, 1); err == nil || errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("call %d error = %v, want the store error", i, err)
		}
	}
	if src.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", src.State())
	}

	_, err := src.Lines(ctx, 1)
	if !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("open breaker error = %v", err)
	}
	if store.cartRead != 2 {
		t.Errorf("store read %d times, want 2 (open breaker must not call it)", store.cartRead)
	}
}

func TestCartSource_QueryErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.cartErr = errors.New("Binder Error: column not found")
	src := newCartSource(store, config.BreakerConfig{FailureThreshold: 1, Timeout: time.Hour})

	for i := 0; i < 5; i++ {
		if _, err := src.Lines(context.Background(), 1); err == nil {
			t.Fatal("expected error")
		}
	}
	if src.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", src.State())
	}
}

func TestCartSource_Recovers(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.cartErr = context.DeadlineExceeded
	src := newCartSource(store, config.BreakerConfig{FailureThreshold: 1, Timeout: 10 * time.Millisecond})

	if _, err := src.Lines(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if src.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", src.State())
	}

	store.mu.Lock()
	store.cartErr = nil
	store.mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	if _, err := src.Lines(context.Background(), 1); err != nil {
		t.Fatalf("half-open probe error = %v", err)
	}
	if src.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed after a successful probe", src.State())
	}
}

func TestDownloadShoppingCart_BreakerOpen(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.cartErr = errors.New("driver: bad connection")
	cfg := testConfig()
	cfg.Breaker.FailureThreshold = 1
	srv := newTestServer(t, store, cfg)
	token := srv.token(t, 1, "user")

	srv.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token)
	rec := srv.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	// Health reports the breaker.
	health := httptest.NewRecorder()
	srv.api.Health(health, newRequest(http.MethodGet, "/", 0, ""))
	var status HealthStatus
	decodeData(t, health, &status)
	if status.CartBreaker != "open" {
		t.Errorf("CartBreaker = %q, want open", status.CartBreaker)
	}
}

func TestStateToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
		{gobreaker.State(99), -1},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
