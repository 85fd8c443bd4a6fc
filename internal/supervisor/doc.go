// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

/*
Package supervisor provides process supervision for Mealshare using suture v4.

The tree has two layers under the root:

	mealshare
	├── data-layer
	│   └── SeedService (one-shot, returns suture.ErrDoNotRestart)
	└── api-layer
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog into the zerolog-backed slog handler from package logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewSeedService(db, cfg.Database.SeedPath))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, 10*time.Second))
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
