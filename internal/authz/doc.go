// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package authz decides which roles may touch which resources, using a casbin
RBAC model.

The model and policy are embedded (model.conf, policy.csv) and can be
overridden with CASBIN_MODEL_PATH and CASBIN_POLICY_PATH. Roles form a chain:

	anonymous  -> read catalog
	user       -> anonymous + write/delete cart and favorites, read shopping_list
	admin      -> everything

Objects are coarse resource names (catalog, cart, favorites, shopping_list),
not URL paths. Actions come from the HTTP method: GET/HEAD/OPTIONS read,
POST/PUT/PATCH write, DELETE delete.

Middleware.Authorize runs after auth.Middleware. Callers without claims are
treated as anonymous, and a refused anonymous request gets 401 so clients
know to sign in.
*/
package authz
