// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/mealshare/internal/shopping"
)

func TestCartLines_OrderAndAggregation(t *testing.T) {
	db := setupTestDB(t)
	ids := seedTestDB(t, db)
	ctx := context.Background()

	// Bread first, then Pancakes: lines follow cart order.
	for _, name := range []string{"Bread", "Pancakes"} {
		if _, err := db.AddToCart(ctx, 2, ids[name]); err != nil {
			t.Fatalf("AddToCart(%s) error = %v", name, err)
		}
	}

	lines, err := db.CartLines(ctx, 2)
	if err != nil {
		t.Fatalf("CartLines() error = %v", err)
	}

	want := []shopping.CartLine{
		{Name: "Flour", Unit: "g", Amount: 500},
		{Name: "Salt", Unit: "g", Amount: 2},
		{Name: "Flour", Unit: "g", Amount: 200},
		{Name: "Salt", Unit: "g", Amount: 5},
		{Name: "Sugar", Unit: "g", Amount: 3},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("CartLines() = %+v, want %+v", lines, want)
	}

	merged := shopping.Aggregate(lines)
	wantMerged := []shopping.AggregatedLine{
		{Name: "Flour", Unit: "g", TotalAmount: 700},
		{Name: "Salt", Unit: "g", TotalAmount: 7},
		{Name: "Sugar", Unit: "g", TotalAmount: 3},
	}
	if !reflect.DeepEqual(merged, wantMerged) {
		t.Errorf("Aggregate(CartLines()) = %+v, want %+v", merged, wantMerged)
	}
}

func TestCartLines_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)

	lines, err := db.CartLines(context.Background(), 1)
	if err != nil {
		t.Fatalf("CartLines() error = %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Errorf("CartLines() = %#v, want empty non-nil slice", lines)
	}
}

func TestCartLines_PerUser(t *testing.T) {
	db := setupTestDB(t)
	ids := seedTestDB(t, db)
	ctx := context.Background()

	if _, err := db.AddToCart(ctx, 1, ids["Soup"]); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	lines, err := db.CartLines(ctx, 2)
	if err != nil {
		t.Fatalf("CartLines() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("user 2 sees %d lines from user 1's cart", len(lines))
	}
}

func TestAddToCart(t *testing.T) {
	db := setupTestDB(t)
	ids := seedTestDB(t, db)
	ctx := context.Background()

	short, err := db.AddToCart(ctx, 1, ids["Pancakes"])
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if short.ID != ids["Pancakes"] || short.Name != "Pancakes" || short.CookingTime != 20 {
		t.Errorf("AddToCart() = %+v", short)
	}

	if _, err := db.AddToCart(ctx, 1, ids["Pancakes"]); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate AddToCart() error = %v, want ErrAlreadyExists", err)
	}

	if _, err := db.AddToCart(ctx, 1, 99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddToCart(unknown) error = %v, want ErrNotFound", err)
	}

	in, err := db.IsInCart(ctx, 1, ids["Pancakes"])
	if err != nil || !in {
		t.Errorf("IsInCart() = %v, %v; want true", in, err)
	}
}

func TestRemoveFromCart(t *testing.T) {
	db := setupTestDB(t)
	ids := seedTestDB(t, db)
	ctx := context.Background()

	if err := db.RemoveFromCart(ctx, 1, ids["Bread"]); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveFromCart(not in cart) error = %v, want ErrNotFound", err)
	}

	if _, err := db.AddToCart(ctx, 1, ids["Bread"]); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	// Another user's removal must not touch this cart.
	if err := db.RemoveFromCart(ctx, 2, ids["Bread"]); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveFromCart(other user) error = %v, want ErrNotFound", err)
	}
	if err := db.RemoveFromCart(ctx, 1, ids["Bread"]); err != nil {
		t.Fatalf("RemoveFromCart() error = %v", err)
	}

	in, err := db.IsInCart(ctx, 1, ids["Bread"])
	if err != nil || in {
		t.Errorf("IsInCart() after remove = %v, %v; want false", in, err)
	}

	// Re-adding after removal works and moves the recipe to the end.
	if _, err := db.AddToCart(ctx, 1, ids["Bread"]); err != nil {
		t.Errorf("re-add error = %v", err)
	}
}

func TestFavorites(t *testing.T) {
	db := setupTestDB(t)
	ids := seedTestDB(t, db)
	ctx := context.Background()

	if _, err := db.AddFavorite(ctx, 2, ids["Soup"]); err != nil {
		t.Fatalf("AddFavorite() error = %v", err)
	}
	if _, err := db.AddFavorite(ctx, 2, ids["Soup"]); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate AddFavorite() error = %v, want ErrAlreadyExists", err)
	}
	if _, err := db.AddFavorite(ctx, 2, -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddFavorite(unknown) error = %v, want ErrNotFound", err)
	}

	fav, err := db.IsFavorited(ctx, 2, ids["Soup"])
	if err != nil || !fav {
		t.Errorf("IsFavorited() = %v, %v; want true", fav, err)
	}
	// Favorites and cart are separate lists.
	if in, _ := db.IsInCart(ctx, 2, ids["Soup"]); in {
		t.Error("favorite leaked into cart")
	}

	if err := db.RemoveFavorite(ctx, 2, ids["Soup"]); err != nil {
		t.Fatalf("RemoveFavorite() error = %v", err)
	}
	if err := db.RemoveFavorite(ctx, 2, ids["Soup"]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second RemoveFavorite() error = %v, want ErrNotFound", err)
	}
}
