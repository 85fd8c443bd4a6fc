// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package services provides suture.Service wrappers for Mealshare components.

Each wrapper implements the suture v4 Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService turns the blocking ListenAndServe of *http.Server into a
context-aware Serve with graceful shutdown. SeedService imports the YAML
fixture once at startup and then returns suture.ErrDoNotRestart so the
supervisor leaves it stopped.

Both implement fmt.Stringer so suture event logs name them.
*/
package services
