// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/models"
)

// maxIngredientPrefix bounds the ingredient search term.
const maxIngredientPrefix = 200

// ListTags returns every tag
//
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.Tag}
// @Router /tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	tags, err := h.catalog.listTags(r.Context(), h.store)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(tags)
}

// ListIngredients searches ingredients by name prefix
//
// @Summary Search ingredients
// @Description Case-insensitive name prefix match; no name returns every ingredient
// @Tags Catalog
// @Produce json
// @Param name query string false "Name prefix"
// @Success 200 {object} APIResponse{data=[]models.Ingredient}
// @Failure 400 {object} APIResponse
// @Router /ingredients [get]
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	prefix := strings.TrimSpace(r.URL.Query().Get("name"))
	if len(prefix) > maxIngredientPrefix {
		rw.ValidationError("name is too long", map[string]interface{}{"field": "name"})
		return
	}

	ingredients, err := h.catalog.listIngredients(r.Context(), h.store, prefix)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(ingredients)
}

// ListRecipes returns one page of recipes, newest first
//
// @Summary List recipes
// @Description Tags and authors are OR-ed within themselves and AND-ed together. The favorite and cart flags apply only to signed-in callers.
// @Tags Recipes
// @Produce json
// @Param page query int false "1-based page" default(1) maximum(1000000)
// @Param limit query int false "Page size"
// @Param tags query []string false "Tag slugs" collectionFormat(multi)
// @Param author query []int false "Author IDs" collectionFormat(multi)
// @Param is_favorited query int false "Only the caller's favorites (1/0)"
// @Param is_in_shopping_cart query int false "Only recipes in the caller's cart (1/0)"
// @Success 200 {object} APIResponse{data=models.RecipePage}
// @Failure 400 {object} APIResponse
// @Router /recipes [get]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	filter, err := h.parseRecipeFilter(r, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeQueryError(rw, err)
		return
	}
	if apiErr := validateRequest(&filter); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	page, err := h.store.ListRecipes(r.Context(), filter)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if page.Recipes == nil {
		page.Recipes = []models.Recipe{}
	}

	rw.SuccessWithPagination(page, &PaginationMeta{
		Total:   page.Total,
		Count:   len(page.Recipes),
		Page:    filter.Page,
		Limit:   filter.Limit,
		Offset:  filter.Offset(),
		HasMore: page.HasMore(filter),
	})
}

// GetRecipe returns one recipe with tags, ingredients and viewer flags
//
// @Summary Get a recipe
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} APIResponse{data=models.Recipe}
// @Failure 404 {object} APIResponse
// @Router /recipes/{id} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := recipeIDParam(r)
	if !ok {
		rw.NotFound("Recipe not found")
		return
	}

	recipe, err := h.store.GetRecipe(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeStoreError(rw, err, "Recipe not found", "")
		return
	}
	rw.Success(recipe)
}
