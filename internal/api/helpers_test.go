// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/authz"
	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/models"
	"github.com/tomtom215/mealshare/internal/shopping"
)

const testJWTSecret = "test_secret_with_at_least_32_characters_for_testing"

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu sync.Mutex

	pingErr  error
	listErr  error
	cartErr  error
	tags     []models.Tag
	recipes  map[int64]*models.Recipe
	lines    map[int64][]shopping.CartLine
	lists    map[string]map[[2]int64]bool
	filter   models.RecipeFilter
	prefix   string
	cartRead int
	tagReads int
	ingReads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tags: []models.Tag{{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}},
		recipes: map[int64]*models.Recipe{
			1: {ID: 1, Name: "Pancakes", CookingTime: 20},
			2: {ID: 2, Name: "Soup", CookingTime: 60},
		},
		lines: map[int64][]shopping.CartLine{},
		lists: map[string]map[[2]int64]bool{"cart": {}, "favorites": {}},
	}
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) GetCurrentSchemaVersion(context.Context) (int, error) { return 1, nil }

func (s *fakeStore) ListTags(context.Context) ([]models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagReads++
	return s.tags, s.listErr
}

func (s *fakeStore) ListIngredients(_ context.Context, prefix string) ([]models.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefix = prefix
	s.ingReads++
	return []models.Ingredient{{ID: 1, Name: "Salt", MeasurementUnit: "g"}}, s.listErr
}

func (s *fakeStore) ListRecipes(_ context.Context, f models.RecipeFilter) (*models.RecipePage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &models.RecipePage{Recipes: []models.Recipe{*s.recipes[1]}, Total: 2}, nil
}

func (s *fakeStore) GetRecipe(_ context.Context, id, viewerID int64) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := *r
	out.IsInShoppingCart = s.lists["cart"][[2]int64{viewerID, id}]
	out.IsFavorited = s.lists["favorites"][[2]int64{viewerID, id}]
	return &out, nil
}

func (s *fakeStore) add(list string, userID, recipeID int64) (models.ShortRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[recipeID]
	if !ok {
		return models.ShortRecipe{}, database.ErrNotFound
	}
	key := [2]int64{userID, recipeID}
	if s.lists[list][key] {
		return models.ShortRecipe{}, database.ErrAlreadyExists
	}
	s.lists[list][key] = true
	return r.Short(), nil
}

func (s *fakeStore) remove(list string, userID, recipeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{userID, recipeID}
	if !s.lists[list][key] {
		return database.ErrNotFound
	}
	delete(s.lists[list], key)
	return nil
}

func (s *fakeStore) AddToCart(_ context.Context, userID, recipeID int64) (models.ShortRecipe, error) {
	return s.add("cart", userID, recipeID)
}

func (s *fakeStore) RemoveFromCart(_ context.Context, userID, recipeID int64) error {
	return s.remove("cart", userID, recipeID)
}

func (s *fakeStore) AddFavorite(_ context.Context, userID, recipeID int64) (models.ShortRecipe, error) {
	return s.add("favorites", userID, recipeID)
}

func (s *fakeStore) RemoveFavorite(_ context.Context, userID, recipeID int64) error {
	return s.remove("favorites", userID, recipeID)
}

func (s *fakeStore) CartLines(_ context.Context, userID int64) ([]shopping.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartRead++
	if s.cartErr != nil {
		return nil, s.cartErr
	}
	lines := s.lines[userID]
	if lines == nil {
		lines = []shopping.CartLine{}
	}
	return lines, nil
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{DefaultPageSize: 6, MaxPageSize: 50},
		Security: config.SecurityConfig{
			JWTSecret:         testJWTSecret,
			SessionTimeout:    time.Hour,
			CORSOrigins:       []string{"https://app.example.org"},
			RateLimitDisabled: true,
		},
		PDF:     config.PDFConfig{Title: "Shopping list"},
		Breaker: config.BreakerConfig{FailureThreshold: 2, Timeout: time.Hour},
	}
}

func testRenderer() *shopping.Renderer {
	return shopping.NewRenderer(shopping.DefaultFont(), shopping.DefaultLayout())
}

// testServer bundles a router over store with real auth and authz.
type testServer struct {
	handler http.Handler
	jwt     *auth.JWTManager
	api     *Handler
}

func newTestServer(t *testing.T, store Store, cfg *config.Config) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer(&cfg.Security.Casbin)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	h := NewHandler(store, testRenderer(), cfg)
	router := NewRouter(h, auth.NewMiddleware(jwtManager), authz.NewMiddleware(enforcer, DenyJSON),
		ChiMiddlewareConfigFromSecurity(&cfg.Security))

	return &testServer{handler: router.SetupChi(), jwt: jwtManager, api: h}
}

func (s *testServer) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(userID, "tester", role)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

// do sends a request, authenticated when token is non-empty.
func (s *testServer) do(t *testing.T, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}
