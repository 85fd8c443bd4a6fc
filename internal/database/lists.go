// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/models"
)

// recipeList is a per-user recipe list table. Values are fixed table names,
// never user input.
type recipeList string

const (
	listCart      recipeList = "carts"
	listFavorites recipeList = "favorites"
)

// label is the metric label for the list.
func (l recipeList) label() string {
	if l == listCart {
		return "cart"
	}
	return "favorites"
}

// addToList appends a recipe to one of the user's lists and returns the
// recipe's short form. It returns ErrNotFound for an unknown recipe and
// ErrAlreadyExists when the recipe is already listed.
func (db *DB) addToList(ctx context.Context, list recipeList, userID, recipeID int64) (short models.ShortRecipe, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	short, err = db.getShortRecipe(ctx, recipeID)
	if err != nil {
		return models.ShortRecipe{}, err
	}

	listed, err := db.inList(ctx, list, userID, recipeID)
	if err != nil {
		return models.ShortRecipe{}, err
	}
	if listed {
		return models.ShortRecipe{}, ErrAlreadyExists
	}

	done := track("insert", string(list))
	defer func() { done(err) }()

	query := fmt.Sprintf(`INSERT INTO %s (user_id, recipe_id) VALUES (?, ?)`, list)
	if _, err = db.conn.ExecContext(ctx, query, userID, recipeID); err != nil {
		// A concurrent add won the race
		if isUniqueConstraintError(err) {
			return models.ShortRecipe{}, ErrAlreadyExists
		}
		return models.ShortRecipe{}, fmt.Errorf("failed to add recipe %d to %s: %w", recipeID, list.label(), err)
	}

	metrics.RecordListMutation(list.label(), "add")
	return short, nil
}

// removeFromList deletes a recipe from one of the user's lists. It returns
// ErrNotFound when the recipe was not listed.
func (db *DB) removeFromList(ctx context.Context, list recipeList, userID, recipeID int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	done := track("delete", string(list))
	defer func() { done(err) }()

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = ? AND recipe_id = ?`, list)
	res, err := db.conn.ExecContext(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove recipe %d from %s: %w", recipeID, list.label(), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	metrics.RecordListMutation(list.label(), "remove")
	return nil
}

// inList reports whether the recipe is on one of the user's lists.
func (db *DB) inList(ctx context.Context, list recipeList, userID, recipeID int64) (listed bool, err error) {
	done := track("select", string(list))
	defer func() { done(err) }()

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = ? AND recipe_id = ?`, list)
	var count int64
	if err = db.conn.QueryRowContext(ctx, query, userID, recipeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", list.label(), err)
	}
	return count > 0, nil
}
