// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type listQuery struct {
	Page   int      `query:"page" validate:"min=1"`
	Limit  int      `query:"limit" validate:"min=1,max=100"`
	Tags   []string `query:"tags" validate:"max=20,dive,slug"`
	Author int64    `query:"author" validate:"gte=0"`
}

type seedTag struct {
	Name  string `yaml:"name" validate:"required,max=200"`
	Color string `yaml:"color" validate:"required,hexcolor"`
	Slug  string `yaml:"slug" validate:"required,slug,max=200"`
}

type seedUser struct {
	Username string `json:"username" validate:"required,notblank"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input interface{}
	}{
		{"list query", &listQuery{Page: 1, Limit: 6, Tags: []string{"breakfast", "lunch_2"}}},
		{"list query no tags", &listQuery{Page: 3, Limit: 100}},
		{"seed tag", &seedTag{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"}},
		{"seed user", &seedUser{Username: "chef", Email: "chef@example.org", Role: "admin"}},
		{"seed user no role", &seedUser{Username: "chef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"page zero", &listQuery{Page: 0, Limit: 6}, "page", "min", "page must be at least 1"},
		{"limit too high", &listQuery{Page: 1, Limit: 500}, "limit", "max", "limit must be at most 100"},
		{"bad tag slug", &listQuery{Page: 1, Limit: 6, Tags: []string{"no spaces"}}, "tags[0]", "slug", "may only contain"},
		{"negative author", &listQuery{Page: 1, Limit: 6, Author: -1}, "author", "gte", "greater than or equal to 0"},
		{"bad color", &seedTag{Name: "x", Color: "orange", Slug: "x"}, "color", "hexcolor", "hex color"},
		{"blank username", &seedUser{Username: "   "}, "username", "notblank", "must not be blank"},
		{"unknown role", &seedUser{Username: "chef", Role: "owner"}, "role", "oneof", "one of: user admin"},
		{"bad email", &seedUser{Username: "chef", Email: "nope"}, "email", "email", "valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.Contains(errs[0].Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want containing %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&listQuery{Page: 1, Limit: 0})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "limit must be at least 1" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "limit" {
		t.Errorf("Details[field] = %v, want limit", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&listQuery{Page: 0, Limit: 0})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if !strings.Contains(apiErr.Message, "page:") || !strings.Contains(apiErr.Message, "limit:") {
		t.Errorf("Message = %q, want both fields", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(verr.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", verr.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	verr := &RequestValidationError{}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
	if apiErr := verr.ToAPIError(); apiErr.Message != "Validation failed" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestSliceLengthMessage(t *testing.T) {
	t.Parallel()

	tags := make([]string, 21)
	for i := range tags {
		tags[i] = "t"
	}
	verr := ValidateStruct(&listQuery{Page: 1, Limit: 6, Tags: tags})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if got := verr.Errors()[0].Error(); got != "tags must be at most 20 items" {
		t.Errorf("Error() = %q", got)
	}
}
