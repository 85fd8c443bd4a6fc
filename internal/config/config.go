// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	PDF      PDFConfig      `koanf:"pdf"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)

	// SeedPath points at a YAML fixture of users, tags, ingredients and
	// recipes imported at startup. Empty disables seeding.
	SeedPath string `koanf:"seed_path"`

	SkipIndexes bool `koanf:"skip_indexes"` // Skip index creation (for fast test setup)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// APIConfig holds pagination limits and catalog caching for list endpoints
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// CatalogCacheTTL bounds how long tag and ingredient listings are served
	// from memory. Zero disables the cache.
	CatalogCacheTTL  time.Duration `koanf:"catalog_cache_ttl"`
	CatalogCacheSize int           `koanf:"catalog_cache_size"`
}

// SecurityConfig holds token verification, rate limiting, CORS and
// authorization settings. Tokens are minted by the account service that
// shares JWTSecret; this service only verifies them.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	Casbin            CasbinConfig  `koanf:"casbin"`
}

// CasbinConfig configures the authorization enforcer. Empty paths use the
// embedded model and policy.
type CasbinConfig struct {
	ModelPath   string `koanf:"model_path"`
	PolicyPath  string `koanf:"policy_path"`
	DefaultRole string `koanf:"default_role"`
}

// PDFConfig controls shopping list rendering
type PDFConfig struct {
	// FontPath is a TrueType font used for the shopping list. Empty uses the
	// embedded Go Regular font.
	FontPath string `koanf:"font_path"`
	Title    string `koanf:"title"`

	// RendersPerSecond and RenderBurst bound PDF generation across all
	// clients. Zero RendersPerSecond disables the limiter.
	RendersPerSecond float64 `koanf:"renders_per_second"`
	RenderBurst      int     `koanf:"render_burst"`
}

// BreakerConfig tunes the circuit breaker that guards cart reads
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`      // Requests allowed while half-open
	Interval         time.Duration `koanf:"interval"`          // Closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`           // Open-state duration before half-open
	FailureThreshold uint32        `koanf:"failure_threshold"` // Consecutive failures that trip the breaker
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration with the following precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
