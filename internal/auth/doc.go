// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package auth verifies the JWT bearer tokens that carry the caller's identity.

Tokens are issued by the account service and signed with a shared HS256
secret. This package only verifies them:

  - JWTManager: HS256 signing and validation. Any other algorithm is rejected.
  - Middleware.Authenticate: requires a valid token (401 otherwise)
  - Middleware.OptionalAuthenticate: attaches claims when present, never rejects

Tokens are read from the Authorization header ("Bearer <token>") or, when the
header is absent, from the "token" cookie. Claims are stored in the request
context and read back with ClaimsFromContext or UserIDFromContext.

Usage:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager)
	r.Post("/recipes/{id}/shopping_cart", mw.Authenticate(h.AddToCart))
*/
package auth
