// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package models defines the data structures shared by the store and the HTTP
API.

Catalog Models:
  - Tag: colored label with a unique slug
  - Ingredient: name plus measurement unit
  - Recipe: author, tags, ingredient amounts and the viewer flags
  - ShortRecipe: the compact form returned by cart and favorite endpoints
  - User: public author profile

Query Models:
  - RecipeFilter: tag slugs, author IDs, viewer flags and page-number
    pagination for recipe listings
  - RecipePage: one page of recipes plus the total match count

Role Models:
  - RoleAnonymous, RoleUser and RoleAdmin match the subjects in the
    authorization policy embedded in internal/authz.

Usage Example:

	filter := models.RecipeFilter{
	    Tags:     []string{"breakfast"},
	    ViewerID: claims.UserID,
	    Page:     1,
	    Limit:    6,
	}
	page, err := db.ListRecipes(ctx, filter)

Thread Safety:

Models carry no behavior beyond small pure helpers and are safe to share
once constructed.
*/
package models
