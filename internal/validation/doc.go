// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP handlers (query
// parameters for recipe listing and ingredient search) and the seed loader
// (YAML fixtures). Field errors are reported under the name the client used:
// the query tag, then the json tag, then the yaml tag.
//
// # Custom Tags
//
//   - slug: letters, digits, hyphen and underscore (tag slugs)
//
// # Usage
//
//	type RecipeQuery struct {
//	    Page  int `query:"page" validate:"min=1"`
//	    Limit int `query:"limit" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
