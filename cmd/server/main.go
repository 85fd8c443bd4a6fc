// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/mealshare/docs" // generated swagger docs
	"github.com/tomtom215/mealshare/internal/api"
	"github.com/tomtom215/mealshare/internal/auth"
	"github.com/tomtom215/mealshare/internal/authz"
	"github.com/tomtom215/mealshare/internal/config"
	"github.com/tomtom215/mealshare/internal/database"
	"github.com/tomtom215/mealshare/internal/logging"
	"github.com/tomtom215/mealshare/internal/metrics"
	"github.com/tomtom215/mealshare/internal/shopping"
	"github.com/tomtom215/mealshare/internal/supervisor"
	"github.com/tomtom215/mealshare/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Mealshare stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("version", api.Version).
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Mealshare")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	seed := services.NewSeedService(db, cfg.Database.SeedPath)

	renderer, err := newRenderer(&cfg.PDF)
	if err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	enforcer, err := authz.NewEnforcer(&cfg.Security.Casbin)
	if err != nil {
		return err
	}

	handler := api.NewHandler(db, renderer, cfg)
	router := api.NewRouter(
		handler,
		auth.NewMiddleware(jwtManager),
		authz.NewMiddleware(enforcer, api.DenyJSON),
		api.ChiMiddlewareConfigFromSecurity(&cfg.Security),
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLoggerWithComponent("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(seed)
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second))
	if cfg.API.CatalogCacheTTL > 0 {
		tree.AddAPIService(services.NewCacheSweepService(handler, cfg.API.CatalogCacheTTL))
	}

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)
	startedAt := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startedAt).Seconds())
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-seed.Done():
			handler.InvalidateCatalog()
		}
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newRenderer loads the configured font, falling back to the embedded one
// when no path is set.
func newRenderer(cfg *config.PDFConfig) (*shopping.Renderer, error) {
	font := shopping.DefaultFont()
	if cfg.FontPath != "" {
		loaded, err := shopping.LoadFontFile(cfg.FontPath)
		if err != nil {
			return nil, err
		}
		font = loaded
		logging.Info().Str("font", font.Family).Msg("Loaded shopping list font")
	}

	renderer := shopping.NewRenderer(font, shopping.DefaultLayout())
	if err := renderer.Layout().Validate(); err != nil {
		return nil, err
	}
	return renderer, nil
}
