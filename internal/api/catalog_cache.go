// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"strings"

	"github.com/tomtom215/mealshare/internal/cache"
	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/models"
)

const tagsCacheKey = "tags"

// catalogCache keeps tag and ingredient listings in memory. A nil
// *catalogCache reads straight through to the store.
type catalogCache struct {
	tags        *cache.LRU[[]models.Tag]
	ingredients *cache.LRU[[]models.Ingredient]
}

func newCatalogCache(cfg config.APIConfig) *catalogCache {
	if cfg.CatalogCacheTTL <= 0 {
		return nil
	}
	return &catalogCache{
		tags:        cache.NewLRU[[]models.Tag](1, cfg.CatalogCacheTTL),
		ingredients: cache.NewLRU[[]models.Ingredient](cfg.CatalogCacheSize, cfg.CatalogCacheTTL),
	}
}

func (c *catalogCache) listTags(ctx context.Context, store Store) ([]models.Tag, error) {
	if c == nil {
		return store.ListTags(ctx)
	}
	if tags, ok := c.tags.Get(tagsCacheKey); ok {
		metrics.RecordCatalogCache("tags", true)
		return tags, nil
	}
	metrics.RecordCatalogCache("tags", false)

	tags, err := store.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	c.tags.Set(tagsCacheKey, tags)
	return tags, nil
}

// listIngredients caches per lowercased prefix, matching the store's
// case-insensitive search.
func (c *catalogCache) listIngredients(ctx context.Context, store Store, prefix string) ([]models.Ingredient, error) {
	if c == nil {
		return store.ListIngredients(ctx, prefix)
	}
	key := strings.ToLower(prefix)
	if ingredients, ok := c.ingredients.Get(key); ok {
		metrics.RecordCatalogCache("ingredients", true)
		return ingredients, nil
	}
	metrics.RecordCatalogCache("ingredients", false)

	ingredients, err := store.ListIngredients(ctx, prefix)
	if err != nil {
		return nil, err
	}
	c.ingredients.Set(key, ingredients)
	return ingredients, nil
}

// sweep drops expired entries from both caches and publishes their sizes.
func (c *catalogCache) sweep() int {
	if c == nil {
		return 0
	}
	removed := c.tags.CleanupExpired() + c.ingredients.CleanupExpired()

	tagHits, tagMisses, tagSize := c.tags.Stats()
	ingHits, ingMisses, ingSize := c.ingredients.Stats()
	metrics.CatalogCacheEntries.WithLabelValues("tags").Set(float64(tagSize))
	metrics.CatalogCacheEntries.WithLabelValues("ingredients").Set(float64(ingSize))
	logging.Debug().
		Int64("tag_hits", tagHits).Int64("tag_misses", tagMisses).
		Int64("ingredient_hits", ingHits).Int64("ingredient_misses", ingMisses).
		Int("removed", removed).
		Msg("Catalog cache swept")
	return removed
}

func (c *catalogCache) clear() {
	if c == nil {
		return
	}
	c.tags.Clear()
	c.ingredients.Clear()
}
