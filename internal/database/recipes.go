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
	"strings"

	"github.com/tomtom215/mealshare/internal/models"
)

// defaultPageLimit applies when a filter arrives without a limit.
const defaultPageLimit = 6

// recipeSelect selects a recipe with its author and both viewer flags.
// The first two arguments are the viewer's user ID; zero matches nothing.
const recipeSelect = `SELECT
		r.id, r.name, r.image, r.text, r.cooking_time, r.pub_date,
		r.author_id, COALESCE(u.email, ''), COALESCE(u.username, ''),
		COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = ?),
		EXISTS (SELECT 1 FROM carts c WHERE c.recipe_id = r.id AND c.user_id = ?)
	FROM recipes r
	LEFT JOIN users u ON u.id = r.author_id`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	r := &models.Recipe{
		Tags:        make([]models.Tag, 0),
		Ingredients: make([]models.RecipeIngredient, 0),
	}
	err := row.Scan(
		&r.ID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.PubDate,
		&r.Author.ID, &r.Author.Email, &r.Author.Username,
		&r.Author.FirstName, &r.Author.LastName,
		&r.IsFavorited, &r.IsInShoppingCart,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetRecipe returns a recipe with its tags and ingredients. The viewer flags
// are computed for viewerID; pass 0 for anonymous requests.
func (db *DB) GetRecipe(ctx context.Context, id, viewerID int64) (recipe *models.Recipe, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	done := track("select", "recipes")
	recipe, err = scanRecipe(db.conn.QueryRowContext(ctx, recipeSelect+` WHERE r.id = ?`, viewerID, viewerID, id))
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
		return nil, ErrNotFound
	}
	done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}

	if err := db.attachRelations(ctx, []*models.Recipe{recipe}); err != nil {
		return nil, err
	}
	return recipe, nil
}

// getShortRecipe returns the compact form of a recipe, or ErrNotFound.
func (db *DB) getShortRecipe(ctx context.Context, id int64) (short models.ShortRecipe, err error) {
	done := track("select", "recipes")
	defer func() {
		if errors.Is(err, ErrNotFound) {
			done(nil)
			return
		}
		done(err)
	}()

	err = db.conn.QueryRowContext(ctx,
		`SELECT id, name, image, cooking_time FROM recipes WHERE id = ?`, id,
	).Scan(&short.ID, &short.Name, &short.Image, &short.CookingTime)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShortRecipe{}, ErrNotFound
	}
	if err != nil {
		return models.ShortRecipe{}, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return short, nil
}

// buildRecipeFilterConditions returns the WHERE suffix and its arguments
// for a recipe filter. Tags and authors are each OR-ed; the groups are
// AND-ed. List flags are ignored for anonymous viewers.
func buildRecipeFilterConditions(f models.RecipeFilter) (string, []any) {
	var (
		where strings.Builder
		args  []any
	)

	if len(f.Tags) > 0 {
		where.WriteString(` AND r.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN (`)
		where.WriteString(placeholders(len(f.Tags)))
		where.WriteString(`))`)
		for _, slug := range f.Tags {
			args = append(args, slug)
		}
	}

	if len(f.Authors) > 0 {
		where.WriteString(` AND r.author_id IN (`)
		where.WriteString(placeholders(len(f.Authors)))
		where.WriteString(`)`)
		for _, author := range f.Authors {
			args = append(args, author)
		}
	}

	if f.ViewerID != 0 && f.IsFavorited {
		where.WriteString(` AND r.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)`)
		args = append(args, f.ViewerID)
	}

	if f.ViewerID != 0 && f.IsInShoppingCart {
		where.WriteString(` AND r.id IN (SELECT recipe_id FROM carts WHERE user_id = ?)`)
		args = append(args, f.ViewerID)
	}

	return where.String(), args
}

// ListRecipes returns one page of recipes matching the filter, newest first,
// plus the total number of matches.
func (db *DB) ListRecipes(ctx context.Context, f models.RecipeFilter) (page *models.RecipePage, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if f.Limit <= 0 {
		f.Limit = defaultPageLimit
	}
	conditions, filterArgs := buildRecipeFilterConditions(f)

	done := track("select", "recipes")
	defer func() { done(err) }()

	page = &models.RecipePage{Recipes: make([]models.Recipe, 0)}
	countQuery := `SELECT COUNT(*) FROM recipes r WHERE 1=1` + conditions
	if err = db.conn.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}
	if page.Total == 0 || int64(f.Offset()) >= page.Total {
		return page, nil
	}

	args := make([]any, 0, len(filterArgs)+4)
	args = append(args, f.ViewerID, f.ViewerID)
	args = append(args, filterArgs...)
	args = append(args, f.Limit, f.Offset())

	query := recipeSelect + ` WHERE 1=1` + conditions + ` ORDER BY r.pub_date DESC, r.id DESC LIMIT ? OFFSET ?`
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer closeWithLog(rows, nil, "recipe rows")

	recipes := make([]*models.Recipe, 0, f.Limit)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	if err = db.attachRelations(ctx, recipes); err != nil {
		return nil, err
	}

	for _, r := range recipes {
		page.Recipes = append(page.Recipes, *r)
	}
	return page, nil
}

// attachRelations loads tags and ingredients for the given recipes with one
// query each.
func (db *DB) attachRelations(ctx context.Context, recipes []*models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Recipe, len(recipes))
	ids := make([]any, 0, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}

	if err := db.loadRecipeTags(ctx, byID, ids); err != nil {
		return err
	}
	return db.loadRecipeIngredients(ctx, byID, ids)
}

func (db *DB) loadRecipeTags(ctx context.Context, byID map[int64]*models.Recipe, ids []any) (err error) {
	done := track("select", "recipe_tags")
	defer func() { done(err) }()

	query := `SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (` + placeholders(len(ids)) + `)
		ORDER BY rt.recipe_id, t.id`

	rows, err := db.conn.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("failed to query recipe tags: %w", err)
	}
	defer closeWithLog(rows, nil, "recipe tag rows")

	for rows.Next() {
		var recipeID int64
		var tag models.Tag
		if err := rows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		if r, ok := byID[recipeID]; ok {
			r.Tags = append(r.Tags, tag)
		}
	}
	return rows.Err()
}

func (db *DB) loadRecipeIngredients(ctx context.Context, byID map[int64]*models.Recipe, ids []any) (err error) {
	done := track("select", "recipe_ingredients")
	defer func() { done(err) }()

	query := `SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (` + placeholders(len(ids)) + `)
		ORDER BY ri.recipe_id, ri.sort_order`

	rows, err := db.conn.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer closeWithLog(rows, nil, "recipe ingredient rows")

	for rows.Next() {
		var recipeID int64
		var ing models.RecipeIngredient
		if err := rows.Scan(&recipeID, &ing.ID, &ing.Name, &ing.MeasurementUnit, &ing.Amount); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if r, ok := byID[recipeID]; ok {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	return rows.Err()
}
