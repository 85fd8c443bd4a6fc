// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/models"
	"github.com/tomtom215/mealshare/internal/shopping"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/mealshare/internal/api.Version=...".
var Version = "dev"

const defaultShoppingListTitle = "Shopping list"

// Store is the persistence surface the handlers need. *database.DB
// satisfies it.
type Store interface {
	CartReader

	Ping(ctx context.Context) error
	GetCurrentSchemaVersion(ctx context.Context) (int, error)

	ListTags(ctx context.Context) ([]models.Tag, error)
	ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
	ListRecipes(ctx context.Context, f models.RecipeFilter) (*models.RecipePage, error)
	GetRecipe(ctx context.Context, id, viewerID int64) (*models.Recipe, error)

	AddToCart(ctx context.Context, userID, recipeID int64) (models.ShortRecipe, error)
	RemoveFromCart(ctx context.Context, userID, recipeID int64) error
	AddFavorite(ctx context.Context, userID, recipeID int64) (models.ShortRecipe, error)
	RemoveFavorite(ctx context.Context, userID, recipeID int64) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health, liveness and readiness probes
//   - handlers_catalog.go: tags, ingredients and recipes
//   - handlers_lists.go: shopping cart and favorites
//   - handlers_shopping.go: aggregated shopping list and PDF download
type Handler struct {
	store         Store
	cart          *cartSource
	catalog       *catalogCache
	renderer      *shopping.Renderer
	renderLimiter *rate.Limiter
	title         string
	apiConfig     config.APIConfig
	startTime     time.Time
}

// NewHandler creates the API handler. cfg may be nil in tests, in which case
// defaults are used.
func NewHandler(store Store, renderer *shopping.Renderer, cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = &config.Config{}
	}

	apiCfg := cfg.API
	if apiCfg.DefaultPageSize <= 0 {
		apiCfg.DefaultPageSize = 6
	}
	if apiCfg.MaxPageSize <= 0 {
		apiCfg.MaxPageSize = 100
	}

	title := cfg.PDF.Title
	if title == "" {
		title = defaultShoppingListTitle
	}

	var limiter *rate.Limiter
	if cfg.PDF.RendersPerSecond > 0 {
		burst := cfg.PDF.RenderBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.PDF.RendersPerSecond), burst)
	}

	return &Handler{
		store:         store,
		cart:          newCartSource(store, cfg.Breaker),
		catalog:       newCatalogCache(apiCfg),
		renderer:      renderer,
		renderLimiter: limiter,
		title:         title,
		apiConfig:     apiCfg,
		startTime:     time.Now(),
	}
}

// InvalidateCatalog drops cached tag and ingredient listings. Call it after
// importing seed data.
func (h *Handler) InvalidateCatalog() {
	h.catalog.clear()
}

// SweepCatalog drops expired catalog cache entries and returns how many were
// removed. It is a no-op when the cache is disabled.
func (h *Handler) SweepCatalog() int {
	return h.catalog.sweep()
}
