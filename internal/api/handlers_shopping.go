// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/shopping"
)

// ShoppingListResponse is the JSON form of a user's aggregated cart.
type ShoppingListResponse struct {
	Title         string                    `json:"title"`
	Items         []shopping.AggregatedLine `json:"items"`
	UnitConflicts []shopping.UnitConflict   `json:"unit_conflicts,omitempty"`
}

// ShoppingList returns the caller's aggregated shopping list as JSON
//
// @Summary Get the aggregated shopping list
// @Description Ingredients from every recipe in the cart merged by name in first-seen order. Names that appeared with more than one unit are listed in unit_conflicts.
// @Tags Shopping cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=ShoppingListResponse}
// @Failure 401 {object} APIResponse
// @Failure 503 {object} APIResponse "Store circuit open"
// @Router /recipes/shopping_list [get]
func (h *Handler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	lines, ok := h.loadCart(rw, r)
	if !ok {
		return
	}

	rw.Success(ShoppingListResponse{
		Title:         h.title,
		Items:         shopping.Aggregate(lines),
		UnitConflicts: h.reportUnitConflicts(r.Context(), lines),
	})
}

// DownloadShoppingCart renders the caller's shopping list as a PDF
//
// @Summary Download the shopping list PDF
// @Description An empty cart yields a document holding only the title.
// @Tags Shopping cart
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary "shopping_list.pdf"
// @Failure 401 {object} APIResponse
// @Failure 429 {object} APIResponse "Render limiter exhausted"
// @Failure 500 {object} APIResponse "RENDER_ERROR or DATABASE_ERROR"
// @Failure 503 {object} APIResponse "Store circuit open"
// @Router /recipes/download_shopping_cart [get]
func (h *Handler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.renderLimiter != nil && !h.renderLimiter.Allow() {
		metrics.ShoppingRenderThrottled.Inc()
		rw.TooManyRequests("Too many shopping list downloads, try again shortly")
		return
	}

	lines, ok := h.loadCart(rw, r)
	if !ok {
		return
	}

	aggregated := shopping.Aggregate(lines)
	h.reportUnitConflicts(r.Context(), lines)

	start := time.Now()
	pdf, err := h.renderer.Render(h.title, aggregated)
	if err != nil {
		op := "render"
		var renderErr *shopping.RenderError
		if errors.As(err, &renderErr) {
			op = renderErr.Op
		}
		metrics.RecordShoppingRender(len(aggregated), time.Since(start), op)
		rw.RenderError(err)
		return
	}
	metrics.RecordShoppingRender(len(aggregated), time.Since(start), "")

	logging.Ctx(r.Context()).Debug().Int("lines", len(aggregated)).Int("bytes", len(pdf)).Msg("Shopping list rendered")
	rw.Attachment(shopping.ContentType, shopping.Filename, pdf)
}

// loadCart reads the caller's cart through the breaker and writes the error
// response itself when it fails.
func (h *Handler) loadCart(rw *ResponseWriter, r *http.Request) ([]shopping.CartLine, bool) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		rw.Unauthorized("authentication required")
		return nil, false
	}

	lines, err := h.cart.Lines(r.Context(), userID)
	if err != nil {
		writeStoreError(rw, err, "", "")
		return nil, false
	}
	return lines, true
}

// reportUnitConflicts logs and counts names merged across differing units.
func (h *Handler) reportUnitConflicts(ctx context.Context, lines []shopping.CartLine) []shopping.UnitConflict {
	conflicts := shopping.UnitConflicts(lines)
	if len(conflicts) == 0 {
		return nil
	}

	names := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		names = append(names, sanitizeLogValue(c.Name))
	}
	logging.Ctx(ctx).Warn().Strs("ingredients", names).Msg("Shopping list merged ingredients with different units; first unit kept")
	metrics.RecordUnitConflicts(len(conflicts))
	return conflicts
}
