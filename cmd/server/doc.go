// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package main is the entry point for the Mealshare server.

Mealshare serves a recipe catalog, lets signed-in users keep a shopping cart
and favorites, and turns the cart into an aggregated shopping list as JSON or
as a downloadable PDF.

Component initialization order:

 1. Configuration: koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB with versioned migrations
 4. Seed service: optional YAML fixture import (SEED_PATH)
 5. Renderer: embedded Go Regular font or PDF_FONT_PATH
 6. Security: JWT verification and the casbin enforcer
 7. Router: chi with CORS, httprate, Prometheus and Swagger
 8. Supervisor tree: suture v4 running the seed importer and HTTP server
 9. Signals: SIGINT and SIGTERM cancel the tree for graceful shutdown

Example:

	export JWT_SECRET=$(openssl rand -base64 32)
	export SEED_PATH=./seed.yaml
	./mealshare
*/
package main
