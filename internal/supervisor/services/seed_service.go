// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package services

import (
	"context"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/logging"
)

// Seeder imports fixture data. *database.DB satisfies it.
type Seeder interface {
	Seed(ctx context.Context, data *database.SeedData) (*database.SeedResult, error)
}

// SeedService imports the seed file once. Bad fixtures are logged and not
// retried; connection errors are returned so the supervisor retries with
// backoff.
type SeedService struct {
	seeder Seeder
	path   string
	done   chan struct{}
	result *database.SeedResult
}

// NewSeedService creates a seed service for path. An empty path makes the
// service a no-op.
func NewSeedService(seeder Seeder, path string) *SeedService {
	return &SeedService{
		seeder: seeder,
		path:   path,
		done:   make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (s *SeedService) Serve(ctx context.Context) error {
	if s.path == "" {
		logging.Debug().Msg("No seed file configured")
		s.finish(nil)
		return suture.ErrDoNotRestart
	}

	data, err := database.LoadSeedFile(s.path)
	if err != nil {
		logging.Error().Err(err).Str("path", s.path).Msg("Seed file rejected")
		s.finish(nil)
		return suture.ErrDoNotRestart
	}

	result, err := s.seeder.Seed(ctx, data)
	if err != nil {
		if database.IsConnectionError(err) {
			return fmt.Errorf("seed %s: %w", s.path, err)
		}
		logging.Error().Err(err).Str("path", s.path).Msg("Seed import failed")
		s.finish(nil)
		return suture.ErrDoNotRestart
	}

	if result.Skipped {
		logging.Info().Str("path", s.path).Msg("Seed file unchanged, skipped")
	} else {
		logging.Info().
			Str("path", s.path).
			Int("users", result.Users).
			Int("tags", result.Tags).
			Int("ingredients", result.Ingredients).
			Int("recipes", result.Recipes).
			Int("cart_entries", result.CartEntries).
			Int("favorites", result.Favorites).
			Msg("Seed data imported")
	}
	s.finish(result)
	return suture.ErrDoNotRestart
}

func (s *SeedService) finish(result *database.SeedResult) {
	s.result = result
	close(s.done)
}

// Done is closed once the service has finished, successfully or not.
func (s *SeedService) Done() <-chan struct{} {
	return s.done
}

// Result returns the import summary, or nil if nothing was imported. Only
// meaningful after Done is closed.
func (s *SeedService) Result() *database.SeedResult {
	return s.result
}

// String implements fmt.Stringer for suture logs.
func (s *SeedService) String() string {
	return "seed-importer"
}
