// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package models

import (
	"math"
	"time"
)

// User is the public profile of a recipe author.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"-"`
}

// Tag labels recipes. Name, Color and Slug are each unique.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Ingredient is a catalog entry referenced by recipes.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredient is an ingredient with the amount one recipe needs.
type RecipeIngredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

// Recipe is the full recipe representation. IsFavorited and IsInShoppingCart
// are computed for the requesting user and are false for anonymous viewers.
type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           User               `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	PubDate          time.Time          `json:"pub_date"`
}

// ShortRecipe is returned when a recipe is added to a cart or favorites.
type ShortRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Short returns the compact representation of r.
func (r *Recipe) Short() ShortRecipe {
	return ShortRecipe{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// RecipeFilter selects recipes for a listing.
//
// Tags and Authors are each OR-ed internally and AND-ed together.
// IsFavorited and IsInShoppingCart only apply when ViewerID is non-zero.
// Page is 1-based.
type RecipeFilter struct {
	Tags             []string `query:"tags" validate:"max=50,dive,slug"`
	Authors          []int64  `query:"author" validate:"max=50,dive,gt=0"`
	IsFavorited      bool     `query:"is_favorited"`
	IsInShoppingCart bool     `query:"is_in_shopping_cart"`
	ViewerID         int64    `query:"-"`
	Page             int      `query:"page" validate:"min=1,max=1000000"`
	Limit            int      `query:"limit" validate:"min=1,max=100"`
}

// Offset returns the row offset for the filter's page.
func (f RecipeFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	// Saturate instead of overflowing into a negative offset.
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

// RecipePage is one page of a recipe listing.
type RecipePage struct {
	Recipes []Recipe `json:"results"`
	Total   int64    `json:"count"`
}

// HasMore reports whether rows exist past this page.
func (p RecipePage) HasMore(f RecipeFilter) bool {
	offset := int64(f.Offset())
	if offset >= p.Total {
		return false
	}
	return offset+int64(len(p.Recipes)) < p.Total
}
