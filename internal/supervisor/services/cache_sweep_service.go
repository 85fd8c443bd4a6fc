// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package services

import (
	"context"
	"time"

	"github.com/tomtom215/mealshare/internal/logging"
)

// CacheSweeper drops expired cache entries and reports how many it removed.
// *api.Handler satisfies it.
type CacheSweeper interface {
	SweepCatalog() int
}

// CacheSweepService calls SweepCatalog on a fixed interval until the context
// is canceled.
type CacheSweepService struct {
	sweeper  CacheSweeper
	interval time.Duration
}

// NewCacheSweepService creates a sweep service. Intervals below one second
// are raised to one second.
func NewCacheSweepService(sweeper CacheSweeper, interval time.Duration) *CacheSweepService {
	if interval < time.Second {
		interval = time.Second
	}
	return &CacheSweepService{sweeper: sweeper, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.sweeper.SweepCatalog(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Swept expired catalog cache entries")
			}
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (s *CacheSweepService) String() string {
	return "catalog-cache-sweeper"
}
