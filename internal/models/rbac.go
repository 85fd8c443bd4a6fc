// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package models

import "slices"

// Role constants define the standard roles in the system.
// These align with the Casbin policy definitions in internal/authz/policy.csv.
const (
	// RoleAnonymous is assigned to requests without a valid token. It may
	// read the public catalog.
	RoleAnonymous = "anonymous"

	// RoleUser manages its own cart and favorites and inherits anonymous.
	RoleUser = "user"

	// RoleAdmin inherits user.
	RoleAdmin = "admin"
)

// ValidRoles contains all role names a token may carry.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole checks if a role name may appear in a token.
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, role)
}
