// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/models"
)

// listOps binds one per-user recipe list to its store calls and messages.
type listOps struct {
	name      string
	add       func(ctx context.Context, userID, recipeID int64) (models.ShortRecipe, error)
	remove    func(ctx context.Context, userID, recipeID int64) error
	duplicate string
	missing   string
}

func (h *Handler) cartOps() listOps {
	return listOps{
		name:      "cart",
		add:       h.store.AddToCart,
		remove:    h.store.RemoveFromCart,
		duplicate: "Recipe is already in the shopping cart",
		missing:   "Recipe is not in the shopping cart",
	}
}

func (h *Handler) favoriteOps() listOps {
	return listOps{
		name:      "favorites",
		add:       h.store.AddFavorite,
		remove:    h.store.RemoveFavorite,
		duplicate: "Recipe is already in favorites",
		missing:   "Recipe is not in favorites",
	}
}

// AddToCart puts a recipe in the caller's shopping cart
//
// @Summary Add a recipe to the shopping cart
// @Tags Shopping cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} APIResponse{data=models.ShortRecipe}
// @Failure 400 {object} APIResponse "Already in the cart"
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse "Unknown recipe"
// @Router /recipes/{id}/shopping_cart [post]
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.addToList(w, r, h.cartOps())
}

// RemoveFromCart takes a recipe out of the caller's shopping cart
//
// @Summary Remove a recipe from the shopping cart
// @Tags Shopping cart
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse "Not in the cart"
// @Router /recipes/{id}/shopping_cart [delete]
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.removeFromList(w, r, h.cartOps())
}

// AddFavorite marks a recipe as a favorite of the caller
//
// @Summary Add a recipe to favorites
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} APIResponse{data=models.ShortRecipe}
// @Failure 400 {object} APIResponse "Already a favorite"
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse "Unknown recipe"
// @Router /recipes/{id}/favorite [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.addToList(w, r, h.favoriteOps())
}

// RemoveFavorite unmarks a favorite recipe
//
// @Summary Remove a recipe from favorites
// @Tags Favorites
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse "Not a favorite"
// @Router /recipes/{id}/favorite [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.removeFromList(w, r, h.favoriteOps())
}

func (h *Handler) addToList(w http.ResponseWriter, r *http.Request, ops listOps) {
	rw := NewResponseWriter(w, r)

	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		rw.Unauthorized("authentication required")
		return
	}
	recipeID, ok := recipeIDParam(r)
	if !ok {
		rw.NotFound("Recipe not found")
		return
	}

	short, err := ops.add(r.Context(), userID, recipeID)
	if err != nil {
		writeStoreError(rw, err, "Recipe not found", ops.duplicate)
		return
	}

	logging.Ctx(r.Context()).Debug().Str("list", ops.name).Int64("recipe_id", recipeID).Msg("Recipe added")
	rw.Created(short)
}

func (h *Handler) removeFromList(w http.ResponseWriter, r *http.Request, ops listOps) {
	rw := NewResponseWriter(w, r)

	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		rw.Unauthorized("authentication required")
		return
	}
	recipeID, ok := recipeIDParam(r)
	if !ok {
		rw.NotFound(ops.missing)
		return
	}

	if err := ops.remove(r.Context(), userID, recipeID); err != nil {
		writeStoreError(rw, err, ops.missing, "")
		return
	}

	logging.Ctx(r.Context()).Debug().Str("list", ops.name).Int64("recipe_id", recipeID).Msg("Recipe removed")
	rw.NoContent()
}
