// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// @title Mealshare API
// @version 1.0
// @description Recipe catalog, per-user shopping carts and favorites, and printable shopping lists.
// @description
// @description ## Authentication
// @description
// @description Catalog endpoints are public. Cart, favorites and shopping list endpoints need a JWT
// @description from the account service, sent as `Authorization: Bearer <token>` or in the `token` cookie.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_FOUND", "message": "Recipe not found", "request_id": "..."},
// @description   "meta": {"timestamp": "2026-01-01T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/mealshare/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT issued by the account service, sent as 'Bearer <token>' or in the token cookie.
//
// @tag.name Core
// @tag.description Health and readiness probes
//
// @tag.name Catalog
// @tag.description Tags and ingredients
//
// @tag.name Recipes
// @tag.description Recipe listing and detail
//
// @tag.name Shopping cart
// @tag.description Per-user cart, aggregated list and PDF download
//
// @tag.name Favorites
// @tag.description Per-user favorite recipes
package main
