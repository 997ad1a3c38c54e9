// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts long-running components to suture.Service.
//
// Components that already expose Serve(ctx) error and String() (the cache
// janitor, the store GC loop, the backup scheduler) are added to the tree directly. This package
// holds the wrappers for components that do not, currently the HTTP server:
//
//	server := &http.Server{Addr: addr, Handler: router}
//	tree.AddAPIService(services.NewHTTPServerService(server, addr, 10*time.Second))
package services
