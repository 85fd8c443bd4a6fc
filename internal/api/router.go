// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/authz"
	"github.com/tomtom215/mealshare/internal/middleware"
)

// Router wires handlers, auth and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. The authz middleware should be built with
// DenyJSON so refusals use the API error envelope.
func NewRouter(handler *Handler, authMw *auth.Middleware, authzMw *authz.Middleware, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		auth:          authMw,
		authz:         authzMw,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// DenyJSON writes authorization refusals in the API error envelope.
func DenyJSON(w http.ResponseWriter, r *http.Request, status int, message string) {
	rw := NewResponseWriter(w, r)
	switch status {
	case http.StatusUnauthorized:
		rw.Unauthorized(message)
	case http.StatusForbidden:
		rw.Forbidden(message)
	default:
		rw.InternalError(message)
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler
	allow := router.authz.Authorize

	// Global middleware, applied in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Catalog: anonymous allowed, claims only change viewer flags.
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware(router.auth.OptionalAuthenticate))
			r.Use(chiMiddleware(middleware.Compression))

			r.Get("/tags", allow(authz.ObjectCatalog, h.ListTags))
			r.Get("/ingredients", allow(authz.ObjectCatalog, h.ListIngredients))
			r.Get("/recipes", allow(authz.ObjectCatalog, h.ListRecipes))
			r.Get("/recipes/{id}", allow(authz.ObjectCatalog, h.GetRecipe))
		})

		// Per-user lists.
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware(router.auth.Authenticate))

			r.Get("/recipes/shopping_list", allow(authz.ObjectShoppingList, h.ShoppingList))
			r.With(router.chiMiddleware.RateLimitExport()).
				Get("/recipes/download_shopping_cart", allow(authz.ObjectShoppingList, h.DownloadShoppingCart))

			r.Post("/recipes/{id}/shopping_cart", allow(authz.ObjectCart, h.AddToCart))
			r.Delete("/recipes/{id}/shopping_cart", allow(authz.ObjectCart, h.RemoveFromCart))
			r.Post("/recipes/{id}/favorite", allow(authz.ObjectFavorites, h.AddFavorite))
			r.Delete("/recipes/{id}/favorite", allow(authz.ObjectFavorites, h.RemoveFavorite))
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
