// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"

	"github.com/tomtom215/mealshare/internal/models"
)

// AddFavorite marks a recipe as one of the user's favorites.
// Returns ErrNotFound for an unknown recipe and ErrAlreadyExists when it is
// already a favorite.
func (db *DB) AddFavorite(ctx context.Context, userID, recipeID int64) (models.ShortRecipe, error) {
	return db.addToList(ctx, listFavorites, userID, recipeID)
}

// RemoveFavorite unmarks a favorite. Returns ErrNotFound when the recipe was
// not a favorite.
func (db *DB) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return db.removeFromList(ctx, listFavorites, userID, recipeID)
}

// IsFavorited reports whether the user has favorited the recipe.
func (db *DB) IsFavorited(ctx context.Context, userID, recipeID int64) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.inList(ctx, listFavorites, userID, recipeID)
}
