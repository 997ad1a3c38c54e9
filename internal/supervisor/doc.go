// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the long-lived services under suture v4.

# Tree

	reelmatch
	├── maintenance-layer
	│   ├── cache-janitor-catalog
	│   ├── store-gc (disk-backed store only)
	│   └── backup-scheduler (when enabled)
	└── api-layer
	    └── http-server

Crashed services restart with suture's backoff; each layer restarts
independently. Supervisor events go to the process logger through
sutureslog and the zerolog slog adapter in internal/logging.

# Usage

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddMaintenanceService(cache.NewJanitor(client.Cache(), time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))
	err := tree.Serve(ctx)
*/
package supervisor
