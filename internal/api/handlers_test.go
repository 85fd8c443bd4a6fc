// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/models"
)

// decodeData unmarshals the data field of a success envelope into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) *APIMeta {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Meta    *APIMeta        `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", rec.Body.String(), err)
	}
	if !envelope.Success {
		t.Fatalf("response not successful: %s", rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("Failed to unmarshal data %q: %v", envelope.Data, err)
	}
	return envelope.Meta
}

// newRequest builds a request as the router would hand it to a handler:
// optional claims for userID and an optional {id} route parameter.
func newRequest(method, target string, userID int64, recipeID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := req.Context()
	if userID != 0 {
		ctx = auth.ContextWithClaims(ctx, &auth.Claims{UserID: userID, Username: "tester", Role: models.RoleUser})
	}
	if recipeID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", recipeID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	h := NewHandler(store, testRenderer(), testConfig())

	rec := httptest.NewRecorder()
	h.Health(rec, newRequest(http.MethodGet, "/api/v1/health", 0, ""))

	var status HealthStatus
	decodeData(t, rec, &status)
	if status.Status != "healthy" || !status.DatabaseConnected || status.SchemaVersion != 1 {
		t.Errorf("HealthStatus = %+v", status)
	}
	if status.CartBreaker != "closed" {
		t.Errorf("CartBreaker = %q, want closed", status.CartBreaker)
	}

	store.pingErr = errors.New("sql: database is closed")
	rec = httptest.NewRecorder()
	h.Health(rec, newRequest(http.MethodGet, "/api/v1/health", 0, ""))
	decodeData(t, rec, &status)
	if status.Status != "degraded" || status.DatabaseConnected {
		t.Errorf("degraded HealthStatus = %+v", status)
	}

	rec = httptest.NewRecorder()
	h.HealthReady(rec, newRequest(http.MethodGet, "/api/v1/health/ready", 0, ""))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("HealthReady() status = %d, want 503", rec.Code)
	}
}

func TestListTags(t *testing.T) {
	t.Parallel()

	h := NewHandler(newFakeStore(), testRenderer(), testConfig())
	rec := httptest.NewRecorder()
	h.ListTags(rec, newRequest(http.MethodGet, "/api/v1/tags", 0, ""))

	var tags []models.Tag
	decodeData(t, rec, &tags)
	if len(tags) != 1 || tags[0].Slug != "breakfast" {
		t.Errorf("tags = %+v", tags)
	}
}

func TestListIngredients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPrefix string
	}{
		{"no prefix", "", http.StatusOK, ""},
		{"trimmed prefix", "?name=%20sa%20", http.StatusOK, "sa"},
		{"too long", "?name=" + strings.Repeat("a", maxIngredientPrefix+1), http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			h := NewHandler(store, testRenderer(), testConfig())
			rec := httptest.NewRecorder()
			h.ListIngredients(rec, newRequest(http.MethodGet, "/api/v1/ingredients"+tt.query, 0, ""))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && store.prefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", store.prefix, tt.wantPrefix)
			}
		})
	}
}

func TestListRecipes(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	h := NewHandler(store, testRenderer(), testConfig())

	rec := httptest.NewRecorder()
	h.ListRecipes(rec, newRequest(http.MethodGet, "/api/v1/recipes?tags=breakfast&tags=lunch,dinner&author=2&is_favorited=1&limit=1", 9, ""))

	var page models.RecipePage
	meta := decodeData(t, rec, &page)
	if page.Total != 2 || len(page.Recipes) != 1 {
		t.Errorf("page = %+v", page)
	}
	if meta == nil || meta.Pagination == nil || !meta.Pagination.HasMore || meta.Pagination.Limit != 1 {
		t.Errorf("pagination = %+v", meta)
	}

	f := store.filter
	if strings.Join(f.Tags, ",") != "breakfast,lunch,dinner" {
		t.Errorf("Tags = %v", f.Tags)
	}
	if len(f.Authors) != 1 || f.Authors[0] != 2 {
		t.Errorf("Authors = %v", f.Authors)
	}
	if !f.IsFavorited || f.IsInShoppingCart || f.ViewerID != 9 || f.Page != 1 {
		t.Errorf("filter = %+v", f)
	}
}

func TestListRecipes_Defaults(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	h := NewHandler(store, testRenderer(), testConfig())

	rec := httptest.NewRecorder()
	h.ListRecipes(rec, newRequest(http.MethodGet, "/api/v1/recipes", 0, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if store.filter.Limit != 6 || store.filter.Page != 1 || store.filter.ViewerID != 0 {
		t.Errorf("filter = %+v, want page 1 limit 6 anonymous", store.filter)
	}

	// Oversized limits are clamped, not rejected.
	rec = httptest.NewRecorder()
	h.ListRecipes(rec, newRequest(http.MethodGet, "/api/v1/recipes?limit=5000", 0, ""))
	if rec.Code != http.StatusOK || store.filter.Limit != 50 {
		t.Errorf("status = %d, limit = %d; want 200 and 50", rec.Code, store.filter.Limit)
	}
}

func TestListRecipes_BadQuery(t *testing.T) {
	t.Parallel()

	queries := []string{
		"page=abc",
		"page=0",
		"page=1000001",
		"page=1537228672809129303",
		"limit=0",
		"author=bob",
		"author=-3",
		"is_in_shopping_cart=maybe",
		"tags=Not%20A%20Slug",
	}

	h := NewHandler(newFakeStore(), testRenderer(), testConfig())
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ListRecipes(rec, newRequest(http.MethodGet, "/api/v1/recipes?"+q, 0, ""))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if resp.Error == nil || resp.Error.Code != ErrCodeValidationFailed {
				t.Errorf("error = %+v", resp.Error)
			}
		})
	}
}

func TestListRecipes_StoreError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.listErr = errors.New("Binder Error: boom")
	h := NewHandler(store, testRenderer(), testConfig())

	rec := httptest.NewRecorder()
	h.ListRecipes(rec, newRequest(http.MethodGet, "/api/v1/recipes", 0, ""))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error.Code != ErrCodeDatabaseError {
		t.Errorf("code = %s", resp.Error.Code)
	}
	if strings.Contains(rec.Body.String(), "Binder") {
		t.Error("store error text leaked to the client")
	}
}

func TestGetRecipe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id         string
		wantStatus int
	}{
		{"1", http.StatusOK},
		{"404", http.StatusNotFound},
		{"abc", http.StatusNotFound},
		{"0", http.StatusNotFound},
		{"-1", http.StatusNotFound},
	}

	h := NewHandler(newFakeStore(), testRenderer(), testConfig())
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.GetRecipe(rec, newRequest(http.MethodGet, "/api/v1/recipes/"+tt.id, 0, tt.id))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestListMutations(t *testing.T) {
	t.Parallel()

	type call func(h *Handler) http.HandlerFunc
	lists := []struct {
		name   string
		add    call
		remove call
	}{
		{"cart", func(h *Handler) http.HandlerFunc { return h.AddToCart }, func(h *Handler) http.HandlerFunc { return h.RemoveFromCart }},
		{"favorites", func(h *Handler) http.HandlerFunc { return h.AddFavorite }, func(h *Handler) http.HandlerFunc { return h.RemoveFavorite }},
	}

	for _, list := range lists {
		t.Run(list.name, func(t *testing.T) {
			t.Parallel()

			h := NewHandler(newFakeStore(), testRenderer(), testConfig())
			steps := []struct {
				name       string
				handler    call
				userID     int64
				recipeID   string
				wantStatus int
			}{
				{"add", list.add, 5, "2", http.StatusCreated},
				{"duplicate add", list.add, 5, "2", http.StatusBadRequest},
				{"other user adds", list.add, 6, "2", http.StatusCreated},
				{"unknown recipe", list.add, 5, "999", http.StatusNotFound},
				{"malformed id", list.add, 5, "x", http.StatusNotFound},
				{"anonymous", list.add, 0, "2", http.StatusUnauthorized},
				{"remove", list.remove, 5, "2", http.StatusNoContent},
				{"remove again", list.remove, 5, "2", http.StatusNotFound},
				{"remove never added", list.remove, 5, "1", http.StatusNotFound},
			}

			for _, step := range steps {
				rec := httptest.NewRecorder()
				step.handler(h)(rec, newRequest(http.MethodPost, "/", step.userID, step.recipeID))
				if rec.Code != step.wantStatus {
					t.Fatalf("%s: status = %d, want %d: %s", step.name, rec.Code, step.wantStatus, rec.Body.String())
				}
				if step.wantStatus == http.StatusCreated {
					var short models.ShortRecipe
					decodeData(t, rec, &short)
					if strconv.FormatInt(short.ID, 10) != step.recipeID || short.Name != "Soup" {
						t.Errorf("%s: body = %+v", step.name, short)
					}
				}
				if step.wantStatus == http.StatusNoContent && rec.Body.Len() != 0 {
					t.Errorf("%s: 204 with body %q", step.name, rec.Body.String())
				}
			}
		})
	}
}
