// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package api provides the HTTP REST API layer for Mealshare.

Routes:

	GET    /api/v1/health                          health, liveness, readiness
	GET    /api/v1/tags                            tag catalog
	GET    /api/v1/ingredients?name=               ingredient prefix search
	GET    /api/v1/recipes                         paginated, filtered listing
	GET    /api/v1/recipes/{id}                    recipe detail
	POST   /api/v1/recipes/{id}/shopping_cart      add to cart (201)
	DELETE /api/v1/recipes/{id}/shopping_cart      remove from cart (204)
	POST   /api/v1/recipes/{id}/favorite           add favorite (201)
	DELETE /api/v1/recipes/{id}/favorite           remove favorite (204)
	GET    /api/v1/recipes/shopping_list           aggregated list as JSON
	GET    /api/v1/recipes/download_shopping_cart  aggregated list as PDF
	GET    /metrics                                Prometheus
	GET    /swagger/*                              OpenAPI UI

Catalog routes accept anonymous callers; a valid token only adds the
is_favorited and is_in_shopping_cart flags. Every other route under
/api/v1/recipes requires a bearer token or the token cookie, and each route
is checked against the casbin policy in package authz.

Every JSON response uses the APIResponse envelope:

	{
	  "success": true,
	  "data": { ... },
	  "meta": {"request_id": "...", "timestamp": "...", "pagination": {...}}
	}

Errors set success to false and carry a machine-readable code such as
NOT_FOUND, VALIDATION_FAILED, DATABASE_ERROR or RENDER_ERROR.

Cart reads for the shopping list go through a gobreaker circuit breaker.
When it is open the endpoints answer 503 without touching the store.
PDF rendering is additionally bounded by a token bucket and a per-IP
httprate limiter.
*/
package api
