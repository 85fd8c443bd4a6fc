// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/models"
	"github.com/tomtom215/mealshare/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// queryError names the parameter that failed to parse.
type queryError struct {
	param string
	value string
}

func (e *queryError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q", e.param, e.value)
}

func (e *queryError) Unwrap() error { return errInvalidQuery }

// getIntParam extracts an integer query parameter with a default value.
// A present but malformed value is an error rather than silently defaulted.
func getIntParam(q url.Values, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(q.Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &queryError{param: key, value: value}
	}
	return n, nil
}

// getBoolFlag parses 0/1/true/false style flags. Absent means false.
func getBoolFlag(q url.Values, key string) (bool, error) {
	value := strings.TrimSpace(q.Get(key))
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &queryError{param: key, value: value}
	}
	return b, nil
}

// multiValues collects a repeated parameter, also splitting comma lists, so
// ?tags=a&tags=b and ?tags=a,b are equivalent.
func multiValues(q url.Values, key string) []string {
	var result []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}

// parseRecipeFilter builds a RecipeFilter from the query string. Limit is
// clamped to the configured maximum; validation happens separately.
func (h *Handler) parseRecipeFilter(r *http.Request, viewerID int64) (models.RecipeFilter, error) {
	q := r.URL.Query()
	f := models.RecipeFilter{
		Tags:     multiValues(q, "tags"),
		ViewerID: viewerID,
	}

	for _, raw := range multiValues(q, "author") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, &queryError{param: "author", value: raw}
		}
		f.Authors = append(f.Authors, id)
	}

	var err error
	if f.IsFavorited, err = getBoolFlag(q, "is_favorited"); err != nil {
		return f, err
	}
	if f.IsInShoppingCart, err = getBoolFlag(q, "is_in_shopping_cart"); err != nil {
		return f, err
	}
	if f.Page, err = getIntParam(q, "page", 1); err != nil {
		return f, err
	}
	if f.Limit, err = getIntParam(q, "limit", h.apiConfig.DefaultPageSize); err != nil {
		return f, err
	}
	if f.Limit > h.apiConfig.MaxPageSize {
		f.Limit = h.apiConfig.MaxPageSize
	}
	return f, nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// writeQueryError reports a malformed query parameter as a validation failure.
func writeQueryError(rw *ResponseWriter, err error) {
	var qe *queryError
	if errors.As(err, &qe) {
		rw.ValidationError(qe.Error(), map[string]interface{}{"field": qe.param})
		return
	}
	rw.BadRequest(err.Error())
}

// recipeIDParam reads the {id} path parameter. ok is false for anything but a
// positive integer.
func recipeIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeStoreError maps store sentinels onto HTTP responses.
func writeStoreError(rw *ResponseWriter, err error, notFound, exists string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(notFound)
	case errors.Is(err, database.ErrAlreadyExists):
		rw.BadRequest(exists)
	case errors.Is(err, ErrStoreUnavailable):
		rw.ServiceUnavailable("The recipe store is temporarily unavailable")
	default:
		rw.DatabaseError(err)
	}
}
