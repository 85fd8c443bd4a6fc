// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package config provides centralized configuration management for Mealshare.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/mealshare/config.yaml
 3. Environment variables, through an explicit name mapping

Only mapped environment variables are read. Unknown variables are ignored.

# Environment Variables

Database:
  - DUCKDB_PATH: Database file path (default: /data/mealshare.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 512MB)
  - DUCKDB_THREADS: DuckDB worker threads (default: NumCPU)
  - SEED_PATH: YAML fixture imported at startup (optional)

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging or production

Security:
  - JWT_SECRET: Shared token verification secret (min 32 chars, required)
  - SESSION_TIMEOUT: Token lifetime used when minting test tokens (default: 24h)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT
  - CORS_ORIGINS: Comma-separated allowed origins (wildcard rejected in production)
  - CASBIN_MODEL_PATH / CASBIN_POLICY_PATH / CASBIN_DEFAULT_ROLE

Shopping list PDF:
  - PDF_FONT_PATH: TrueType font (default: embedded Go Regular)
  - PDF_TITLE: Document heading (default: "Shopping list")
  - PDF_RENDERS_PER_SECOND / PDF_RENDER_BURST: Global render throttle

Circuit breaker (cart reads):
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_FAILURE_THRESHOLD

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Addr()
*/
package config
