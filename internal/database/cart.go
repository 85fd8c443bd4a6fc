// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/mealshare/internal/models"
	"github.com/tomtom215/mealshare/internal/shopping"
)

// CartLines returns every ingredient line of every recipe in the user's
// cart, flattened. Rows are ordered by when each recipe was added to the
// cart, then by the ingredient's position within its recipe, so the
// aggregated shopping list keeps a stable first-seen order.
func (db *DB) CartLines(ctx context.Context, userID int64) (lines []shopping.CartLine, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	done := track("select", "carts")
	defer func() { done(err) }()

	query := `SELECT i.name, i.measurement_unit, ri.amount
		FROM carts c
		JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE c.user_id = ?
		ORDER BY c.seq, ri.sort_order`

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer closeWithLog(rows, nil, "cart rows")

	lines = make([]shopping.CartLine, 0)
	for rows.Next() {
		var line shopping.CartLine
		if err := rows.Scan(&line.Name, &line.Unit, &line.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// AddToCart puts a recipe in the user's shopping cart.
// Returns ErrNotFound for an unknown recipe and ErrAlreadyExists when the
// recipe is already in the cart.
func (db *DB) AddToCart(ctx context.Context, userID, recipeID int64) (models.ShortRecipe, error) {
	return db.addToList(ctx, listCart, userID, recipeID)
}

// RemoveFromCart takes a recipe out of the user's cart.
// Returns ErrNotFound when the recipe is not in the cart.
func (db *DB) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return db.removeFromList(ctx, listCart, userID, recipeID)
}

// IsInCart reports whether the recipe is in the user's cart.
func (db *DB) IsInCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.inList(ctx, listCart, userID, recipeID)
}
