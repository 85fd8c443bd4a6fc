// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
database_schema.go - Database Schema Management

Tables:
  - users: authors and list owners, keyed by the account service's user ID
  - tags, ingredients: the shared catalog
  - recipes: one row per recipe; name is unique
  - recipe_tags, recipe_ingredients: recipe associations; sort_order keeps the
    ingredient order a recipe was written in
  - favorites, carts: per-user recipe lists; seq keeps insertion order

Foreign keys are not declared. DuckDB rewrites updates on referenced rows as
delete plus insert, so referential checks live in the query layer instead
(see recipeExists).
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS tags_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS ingredients_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS recipes_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS list_entry_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username VARCHAR NOT NULL UNIQUE,
			email VARCHAR NOT NULL DEFAULT '',
			first_name VARCHAR NOT NULL DEFAULT '',
			last_name VARCHAR NOT NULL DEFAULT '',
			role VARCHAR NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS tags (
			id BIGINT PRIMARY KEY DEFAULT nextval('tags_id_seq'),
			name VARCHAR NOT NULL UNIQUE,
			color VARCHAR NOT NULL UNIQUE,
			slug VARCHAR NOT NULL UNIQUE
		);`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id BIGINT PRIMARY KEY DEFAULT nextval('ingredients_id_seq'),
			name VARCHAR NOT NULL,
			measurement_unit VARCHAR NOT NULL,
			UNIQUE (name, measurement_unit)
		);`,

		`CREATE TABLE IF NOT EXISTS recipes (
			id BIGINT PRIMARY KEY DEFAULT nextval('recipes_id_seq'),
			author_id BIGINT NOT NULL,
			name VARCHAR NOT NULL UNIQUE,
			image VARCHAR NOT NULL DEFAULT '',
			text VARCHAR NOT NULL DEFAULT '',
			cooking_time INTEGER NOT NULL,
			pub_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_tags (
			recipe_id BIGINT NOT NULL,
			tag_id BIGINT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id BIGINT NOT NULL,
			ingredient_id BIGINT NOT NULL,
			amount BIGINT NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS favorites (
			user_id BIGINT NOT NULL,
			recipe_id BIGINT NOT NULL,
			seq BIGINT NOT NULL DEFAULT nextval('list_entry_seq'),
			added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		);`,

		`CREATE TABLE IF NOT EXISTS carts (
			user_id BIGINT NOT NULL,
			recipe_id BIGINT NOT NULL,
			seq BIGINT NOT NULL DEFAULT nextval('list_entry_seq'),
			added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		);`,
	}
}

// createIndexes creates database indexes for query optimization.
// Skips index creation if cfg.SkipIndexes is true (for fast test setup).
func (db *DB) createIndexes() error {
	if db.cfg != nil && db.cfg.SkipIndexes {
		return nil
	}

	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements.
// Columns that seeding updates in place are left unindexed.
func getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_recipes_pub_date ON recipes(pub_date DESC, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_recipe ON recipe_tags(recipe_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id, sort_order);`,
		`CREATE INDEX IF NOT EXISTS idx_carts_user_seq ON carts(user_id, seq);`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_user_seq ON favorites(user_id, seq);`,
	}
}
