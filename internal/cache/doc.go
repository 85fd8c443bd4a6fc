// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package cache provides a thread-safe LRU cache with per-entry TTL.
//
// The API uses it to serve tag and ingredient listings from memory. Those
// only change when seed data is imported, at which point the cache is
// cleared.
//
//	c := cache.NewLRU[[]models.Tag](128, time.Minute)
//	if tags, ok := c.Get("tags"); ok {
//	    return tags
//	}
//
// Expired entries are dropped lazily on access or by CleanupExpired.
package cache
