// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package database is the DuckDB-backed store for recipes, the shared
// catalog and each user's cart and favorites.
//
// # Architecture
//
//   - database.go: lifecycle (open, initialize, checkpoint, close)
//   - database_connection.go: DSN and connection pool configuration
//   - database_schema.go: tables and indexes
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - recipes.go: recipe detail and filtered, paginated listing
//   - catalog.go: tags, ingredient search and user profiles
//   - cart.go, favorites.go, lists.go: per-user recipe lists
//   - seed.go: YAML fixture import
//
// # Shopping Cart
//
// CartLines flattens the cart into (name, unit, amount) rows for the
// shopping package. Order follows cart insertion, then ingredient position
// within each recipe:
//
//	lines, err := db.CartLines(ctx, userID)
//	if err != nil {
//	    return err
//	}
//	merged := shopping.Aggregate(lines)
//
// # Errors
//
// Lookups return ErrNotFound for missing rows. Adding a recipe that is
// already in a cart or favorites returns ErrAlreadyExists. Every query is
// timed into the mealshare_db_query_duration_seconds histogram.
//
// # Thread Safety
//
// DB is safe for concurrent use; database/sql pools the connections.
package database
