// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/mealshare/internal/models"
)

// ListIngredients returns catalog ingredients ordered by id. A non-empty
// prefix keeps only names starting with it, compared case-insensitively.
func (db *DB) ListIngredients(ctx context.Context, prefix string) (ingredients []models.Ingredient, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	done := track("select", "ingredients")
	defer func() { done(err) }()

	query := `SELECT id, name, measurement_unit FROM ingredients`
	args := []any{}
	if prefix != "" {
		query += ` WHERE starts_with(lower(name), lower(?))`
		args = append(args, prefix)
	}
	query += ` ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer closeWithLog(rows, nil, "ingredient rows")

	ingredients = make([]models.Ingredient, 0)
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}
	return ingredients, nil
}

// ListTags returns all tags ordered by id.
func (db *DB) ListTags(ctx context.Context) (tags []models.Tag, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	done := track("select", "tags")
	defer func() { done(err) }()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, color, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer closeWithLog(rows, nil, "tag rows")

	tags = make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

// GetUser returns a user's public profile, or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (user *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	done := track("select", "users")
	defer func() {
		if errors.Is(err, ErrNotFound) {
			done(nil)
			return
		}
		done(err)
	}()

	user = &models.User{}
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, email, username, first_name, last_name, role FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}
