// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/tomtom215/mealshare/internal/shopping"
)

func storeWithCart(userID int64, lines ...shopping.CartLine) *fakeStore {
	store := newFakeStore()
	store.lines[userID] = lines
	return store
}

func TestShoppingList(t *testing.T) {
	t.Parallel()

	store := storeWithCart(1,
		shopping.CartLine{Name: "Flour", Unit: "g", Amount: 200},
		shopping.CartLine{Name: "Milk", Unit: "ml", Amount: 500},
		shopping.CartLine{Name: "Flour", Unit: "g", Amount: 300},
		shopping.CartLine{Name: "Milk", Unit: "cup", Amount: 1},
	)
	h := NewHandler(store, testRenderer(), testConfig())

	rec := httptest.NewRecorder()
	h.ShoppingList(rec, newRequest(http.MethodGet, "/api/v1/recipes/shopping_list", 1, ""))

	var list ShoppingListResponse
	decodeData(t, rec, &list)

	want := []shopping.AggregatedLine{
		{Name: "Flour", Unit: "g", TotalAmount: 500},
		{Name: "Milk", Unit: "ml", TotalAmount: 501},
	}
	if !reflect.DeepEqual(list.Items, want) {
		t.Errorf("Items = %+v, want %+v", list.Items, want)
	}
	if list.Title != "Shopping list" {
		t.Errorf("Title = %q", list.Title)
	}
	if len(list.UnitConflicts) != 1 || list.UnitConflicts[0].Name != "Milk" {
		t.Errorf("UnitConflicts = %+v", list.UnitConflicts)
	}
}

func TestShoppingList_EmptyCart(t *testing.T) {
	t.Parallel()

	h := NewHandler(newFakeStore(), testRenderer(), testConfig())
	rec := httptest.NewRecorder()
	h.ShoppingList(rec, newRequest(http.MethodGet, "/api/v1/recipes/shopping_list", 1, ""))

	if !bytes.Contains(rec.Body.Bytes(), []byte(`"items":[]`)) {
		t.Errorf("empty cart body = %s", rec.Body.String())
	}
}

func TestDownloadShoppingCart(t *testing.T) {
	t.Parallel()

	store := storeWithCart(1,
		shopping.CartLine{Name: "Мука", Unit: "г", Amount: 250},
		shopping.CartLine{Name: "Salt", Unit: "g", Amount: 5},
	)
	h := NewHandler(store, testRenderer(), testConfig())

	rec := httptest.NewRecorder()
	h.DownloadShoppingCart(rec, newRequest(http.MethodGet, "/api/v1/recipes/download_shopping_cart", 1, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != shopping.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="shopping_list.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("body is not a PDF: %q", rec.Body.Bytes()[:min(16, rec.Body.Len())])
	}
}

func TestDownloadShoppingCart_EmptyCartStillRenders(t *testing.T) {
	t.Parallel()

	h := NewHandler(newFakeStore(), testRenderer(), testConfig())
	rec := httptest.NewRecorder()
	h.DownloadShoppingCart(rec, newRequest(http.MethodGet, "/api/v1/recipes/download_shopping_cart", 1, ""))

	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("status = %d, body prefix %q", rec.Code, rec.Body.Bytes()[:min(8, rec.Body.Len())])
	}
}

func TestDownloadShoppingCart_RenderError(t *testing.T) {
	t.Parallel()

	h := NewHandler(newFakeStore(), shopping.NewRenderer(shopping.Font{}, shopping.DefaultLayout()), testConfig())
	rec := httptest.NewRecorder()
	h.DownloadShoppingCart(rec, newRequest(http.MethodGet, "/api/v1/recipes/download_shopping_cart", 1, ""))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeRenderError {
		t.Errorf("error = %+v, want %s", resp.Error, ErrCodeRenderError)
	}
}

func TestDownloadShoppingCart_Throttled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PDF.RendersPerSecond = 0.001
	cfg.PDF.RenderBurst = 1
	h := NewHandler(newFakeStore(), testRenderer(), cfg)

	first := httptest.NewRecorder()
	h.DownloadShoppingCart(first, newRequest(http.MethodGet, "/", 1, ""))
	if first.Code != http.StatusOK {
		t.Fatalf("first download = %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.DownloadShoppingCart(second, newRequest(http.MethodGet, "/", 1, ""))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second download = %d, want 429", second.Code)
	}
}

func TestDownloadShoppingCart_StoreErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"query error", errors.New("Binder Error: no such column"), http.StatusInternalServerError, ErrCodeDatabaseError},
		{"connection error", errors.New("sql: database is closed"), http.StatusInternalServerError, ErrCodeDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			store.cartErr = tt.err
			h := NewHandler(store, testRenderer(), testConfig())

			rec := httptest.NewRecorder()
			h.DownloadShoppingCart(rec, newRequest(http.MethodGet, "/", 1, ""))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp := decodeResponse(t, rec); resp.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestShoppingEndpoints_RequireUser(t *testing.T) {
	t.Parallel()

	h := NewHandler(newFakeStore(), testRenderer(), testConfig())
	for name, handler := range map[string]http.HandlerFunc{
		"list":     h.ShoppingList,
		"download": h.DownloadShoppingCart,
	} {
		rec := httptest.NewRecorder()
		handler(rec, newRequest(http.MethodGet, "/", 0, ""))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without user = %d, want 401", name, rec.Code)
		}
	}
}
