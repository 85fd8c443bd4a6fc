// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package database

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/validation"
)

// SeedData is a catalog fixture: users, tags, ingredients and recipes, plus
// optional cart and favorite entries. Recipes refer to authors by username,
// to tags by slug and to ingredients by name and unit.
type SeedData struct {
	Users       []SeedUser       `yaml:"users" validate:"unique=Username,dive"`
	Tags        []SeedTag        `yaml:"tags" validate:"unique=Slug,dive"`
	Ingredients []SeedIngredient `yaml:"ingredients" validate:"dive"`
	Recipes     []SeedRecipe     `yaml:"recipes" validate:"unique=Name,dive"`
	Carts       []SeedList       `yaml:"carts" validate:"dive"`
	Favorites   []SeedList       `yaml:"favorites" validate:"dive"`

	// Source and Checksum are filled by LoadSeedFile. A non-empty checksum
	// that was already applied makes Seed a no-op.
	Source   string `yaml:"-"`
	Checksum string `yaml:"-"`
}

// SeedUser mirrors an account from the account service. ID is that
// service's user ID and matches the user_id claim in tokens.
type SeedUser struct {
	ID        int64  `yaml:"id" validate:"required,gt=0"`
	Username  string `yaml:"username" validate:"required,notblank,max=150"`
	Email     string `yaml:"email" validate:"omitempty,email"`
	FirstName string `yaml:"first_name" validate:"max=150"`
	LastName  string `yaml:"last_name" validate:"max=150"`
	Role      string `yaml:"role" validate:"omitempty,oneof=user admin"`
}

// SeedTag is a catalog tag.
type SeedTag struct {
	Name  string `yaml:"name" validate:"required,notblank,max=50"`
	Color string `yaml:"color" validate:"required,hexcolor,max=7"`
	Slug  string `yaml:"slug" validate:"required,slug,max=50"`
}

// SeedIngredient is a catalog ingredient.
type SeedIngredient struct {
	Name            string `yaml:"name" validate:"required,notblank,max=250"`
	MeasurementUnit string `yaml:"measurement_unit" validate:"required,notblank,max=50"`
}

// SeedRecipe is a recipe with its tags and ingredient amounts.
type SeedRecipe struct {
	Name        string                 `yaml:"name" validate:"required,notblank,max=200"`
	Author      string                 `yaml:"author" validate:"required"`
	Image       string                 `yaml:"image"`
	Text        string                 `yaml:"text"`
	CookingTime int                    `yaml:"cooking_time" validate:"min=1"`
	Tags        []string               `yaml:"tags" validate:"dive,slug"`
	Ingredients []SeedRecipeIngredient `yaml:"ingredients" validate:"required,min=1,unique=Name,dive"`
}

// SeedRecipeIngredient is one ingredient amount within a recipe.
type SeedRecipeIngredient struct {
	Name            string `yaml:"name" validate:"required,notblank"`
	MeasurementUnit string `yaml:"measurement_unit" validate:"required,notblank"`
	Amount          int64  `yaml:"amount" validate:"gte=0,lte=32767"`
}

// SeedList is a user's cart or favorites, listed by recipe name.
type SeedList struct {
	User    string   `yaml:"user" validate:"required"`
	Recipes []string `yaml:"recipes" validate:"dive,required"`
}

// SeedResult counts the rows Seed inserted or updated.
type SeedResult struct {
	Skipped     bool
	Users       int
	Tags        int
	Ingredients int
	Recipes     int
	CartEntries int
	Favorites   int
}

// LoadSeedFile reads and validates a YAML seed fixture. Unknown keys are
// rejected so typos surface at startup.
func LoadSeedFile(path string) (*SeedData, error) {
	//nolint:gosec // G304: path comes from operator configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	data := &SeedData{}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	if verr := validation.ValidateStruct(data); verr != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, verr)
	}

	sum := sha256.Sum256(raw)
	data.Source = path
	data.Checksum = hex.EncodeToString(sum[:])
	return data, nil
}

// Seed imports a fixture in one transaction. Rows are matched on their
// natural keys (user id, tag slug, ingredient name and unit, recipe name),
// so running the same fixture twice changes nothing. Existing recipes get
// their text, image, cooking time, tags and ingredients replaced.
func (db *DB) Seed(ctx context.Context, data *SeedData) (result *SeedResult, err error) {
	if data == nil {
		return nil, fmt.Errorf("seed data is nil")
	}
	if verr := validation.ValidateStruct(data); verr != nil {
		return nil, fmt.Errorf("invalid seed data: %w", verr)
	}

	if data.Checksum != "" {
		applied, err := db.seedApplied(ctx, data.Checksum)
		if err != nil {
			return nil, err
		}
		if applied {
			logging.Info().Str("source", data.Source).Msg("Seed fixture unchanged, skipping")
			return &SeedResult{Skipped: true}, nil
		}
	}

	done := track("seed", "catalog")
	defer func() { done(err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	s := &seeder{tx: tx, ingredients: make(map[ingredientKey]int64), recipes: make(map[string]int64), users: make(map[string]int64)}
	result = &SeedResult{}

	if result.Users, err = s.upsertUsers(ctx, data.Users); err != nil {
		return nil, err
	}
	if result.Tags, err = s.upsertTags(ctx, data.Tags); err != nil {
		return nil, err
	}
	if result.Ingredients, err = s.upsertIngredients(ctx, data.Ingredients); err != nil {
		return nil, err
	}
	if result.Recipes, err = s.upsertRecipes(ctx, data.Recipes); err != nil {
		return nil, err
	}
	if result.CartEntries, err = s.addListEntries(ctx, listCart, data.Carts); err != nil {
		return nil, err
	}
	if result.Favorites, err = s.addListEntries(ctx, listFavorites, data.Favorites); err != nil {
		return nil, err
	}

	if data.Checksum != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO seed_runs (checksum, source, users, tags, ingredients, recipes) VALUES (?, ?, ?, ?, ?, ?)`,
			data.Checksum, data.Source, result.Users, result.Tags, result.Ingredients, result.Recipes)
		if err != nil {
			return nil, fmt.Errorf("failed to record seed run: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	metrics.SeedRecords.WithLabelValues("users").Add(float64(result.Users))
	metrics.SeedRecords.WithLabelValues("tags").Add(float64(result.Tags))
	metrics.SeedRecords.WithLabelValues("ingredients").Add(float64(result.Ingredients))
	metrics.SeedRecords.WithLabelValues("recipes").Add(float64(result.Recipes))

	logging.Info().
		Str("source", data.Source).
		Int("users", result.Users).
		Int("tags", result.Tags).
		Int("ingredients", result.Ingredients).
		Int("recipes", result.Recipes).
		Int("cart_entries", result.CartEntries).
		Int("favorites", result.Favorites).
		Msg("Seed fixture imported")

	return result, nil
}

// seedApplied reports whether a fixture with this checksum was imported.
func (db *DB) seedApplied(ctx context.Context, checksum string) (bool, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM seed_runs WHERE checksum = ?`, checksum).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check seed runs: %w", err)
	}
	return count > 0, nil
}

type ingredientKey struct {
	name string
	unit string
}

// seeder carries one seed transaction and the IDs resolved so far.
type seeder struct {
	tx          *sql.Tx
	users       map[string]int64
	ingredients map[ingredientKey]int64
	recipes     map[string]int64
}

func (s *seeder) upsertUsers(ctx context.Context, users []SeedUser) (int, error) {
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = "user"
		}

		var existing string
		err := s.tx.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, u.ID).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = s.tx.ExecContext(ctx,
				`INSERT INTO users (id, username, email, first_name, last_name, role) VALUES (?, ?, ?, ?, ?, ?)`,
				u.ID, u.Username, u.Email, u.FirstName, u.LastName, role)
		case err == nil:
			if existing != u.Username {
				logging.Warn().Int64("user_id", u.ID).Str("stored", existing).Str("seed", u.Username).
					Msg("Seed user renamed; keeping stored username")
			}
			_, err = s.tx.ExecContext(ctx,
				`UPDATE users SET email = ?, first_name = ?, last_name = ?, role = ? WHERE id = ?`,
				u.Email, u.FirstName, u.LastName, role, u.ID)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to seed user %q: %w", u.Username, err)
		}
	}
	return len(users), nil
}

func (s *seeder) upsertTags(ctx context.Context, tags []SeedTag) (int, error) {
	inserted := 0
	for _, t := range tags {
		var id int64
		err := s.tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE slug = ?`, t.Slug).Scan(&id)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("failed to look up tag %q: %w", t.Slug, err)
		}
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO tags (name, color, slug) VALUES (?, ?, ?)`, t.Name, t.Color, t.Slug); err != nil {
			return 0, fmt.Errorf("failed to seed tag %q: %w", t.Slug, err)
		}
		inserted++
	}
	return inserted, nil
}

func (s *seeder) upsertIngredients(ctx context.Context, ingredients []SeedIngredient) (int, error) {
	inserted := 0
	for _, ing := range ingredients {
		_, created, err := s.ensureIngredient(ctx, ing.Name, ing.MeasurementUnit)
		if err != nil {
			return 0, err
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// ensureIngredient returns the ID for (name, unit), inserting it if needed.
func (s *seeder) ensureIngredient(ctx context.Context, name, unit string) (int64, bool, error) {
	key := ingredientKey{name: name, unit: unit}
	if id, ok := s.ingredients[key]; ok {
		return id, false, nil
	}

	var id int64
	err := s.tx.QueryRowContext(ctx,
		`SELECT id FROM ingredients WHERE name = ? AND measurement_unit = ?`, name, unit).Scan(&id)
	created := false
	if errors.Is(err, sql.ErrNoRows) {
		err = s.tx.QueryRowContext(ctx,
			`INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?) RETURNING id`, name, unit).Scan(&id)
		created = true
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to seed ingredient %q (%s): %w", name, unit, err)
	}

	s.ingredients[key] = id
	return id, created, nil
}

// userID resolves a username to its ID.
func (s *seeder) userID(ctx context.Context, username string) (int64, error) {
	if id, ok := s.users[username]; ok {
		return id, nil
	}
	var id int64
	err := s.tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("unknown user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	s.users[username] = id
	return id, nil
}

// recipeID resolves a recipe name to its ID.
func (s *seeder) recipeID(ctx context.Context, name string) (int64, error) {
	if id, ok := s.recipes[name]; ok {
		return id, nil
	}
	var id int64
	err := s.tx.QueryRowContext(ctx, `SELECT id FROM recipes WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("unknown recipe %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up recipe %q: %w", name, err)
	}
	s.recipes[name] = id
	return id, nil
}

func (s *seeder) upsertRecipes(ctx context.Context, recipes []SeedRecipe) (int, error) {
	for _, r := range recipes {
		if err := s.upsertRecipe(ctx, r); err != nil {
			return 0, fmt.Errorf("recipe %q: %w", r.Name, err)
		}
	}
	return len(recipes), nil
}

func (s *seeder) upsertRecipe(ctx context.Context, r SeedRecipe) error {
	authorID, err := s.userID(ctx, r.Author)
	if err != nil {
		return err
	}

	id, err := s.recipeID(ctx, r.Name)
	switch {
	case errors.Is(err, ErrNotFound):
		err = s.tx.QueryRowContext(ctx,
			`INSERT INTO recipes (author_id, name, image, text, cooking_time) VALUES (?, ?, ?, ?, ?) RETURNING id`,
			authorID, r.Name, r.Image, r.Text, r.CookingTime).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert: %w", err)
		}
		s.recipes[r.Name] = id
	case err != nil:
		return err
	default:
		if _, err := s.tx.ExecContext(ctx,
			`UPDATE recipes SET image = ?, text = ?, cooking_time = ? WHERE id = ?`,
			r.Image, r.Text, r.CookingTime, id); err != nil {
			return fmt.Errorf("failed to update: %w", err)
		}
		for _, table := range []string{"recipe_tags", "recipe_ingredients"} {
			//nolint:gosec // G201: table names are constants
			if _, err := s.tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = ?`, table), id); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	for _, slug := range r.Tags {
		var tagID int64
		err := s.tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE slug = ?`, slug).Scan(&tagID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("unknown tag %q: %w", slug, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to look up tag %q: %w", slug, err)
		}
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
			return fmt.Errorf("failed to link tag %q: %w", slug, err)
		}
	}

	for pos, ing := range r.Ingredients {
		ingredientID, _, err := s.ensureIngredient(ctx, ing.Name, ing.MeasurementUnit)
		if err != nil {
			return err
		}
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, sort_order) VALUES (?, ?, ?, ?)`,
			id, ingredientID, ing.Amount, pos); err != nil {
			return fmt.Errorf("failed to link ingredient %q: %w", ing.Name, err)
		}
	}

	return nil
}

// addListEntries inserts cart or favorite entries, skipping ones that exist.
func (s *seeder) addListEntries(ctx context.Context, list recipeList, entries []SeedList) (int, error) {
	added := 0
	for _, entry := range entries {
		userID, err := s.userID(ctx, entry.User)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", list.label(), err)
		}
		for _, name := range entry.Recipes {
			recipeID, err := s.recipeID(ctx, name)
			if err != nil {
				return 0, fmt.Errorf("%s of %q: %w", list.label(), entry.User, err)
			}
			//nolint:gosec // G201: list is a fixed table name
			res, err := s.tx.ExecContext(ctx,
				fmt.Sprintf(`INSERT INTO %s (user_id, recipe_id) VALUES (?, ?) ON CONFLICT DO NOTHING`, list),
				userID, recipeID)
			if err != nil {
				return 0, fmt.Errorf("failed to seed %s entry: %w", list.label(), err)
			}
			if n, err := res.RowsAffected(); err == nil {
				added += int(n)
			}
		}
	}
	return added, nil
}
