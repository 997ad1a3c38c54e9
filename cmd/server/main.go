// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/backup"
	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/store"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cacheJanitorInterval is how often expired catalog responses are evicted.
const cacheJanitorInterval = time.Minute

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("ReelMatch exited with error")
	}
}

func run() error {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "reelmatch",
		Version:   version,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("catalog_url", cfg.Catalog.BaseURL).
		Bool("store_in_memory", cfg.Store.InMemory).
		Msg("Starting ReelMatch")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	client := catalog.NewClient(&cfg.Catalog)

	pipeline, err := initRecommend(cfg, client, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	st, err := store.Open(&cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Failed to close store")
		}
	}()

	handler := api.NewHandler(pipeline, st, client, api.WithVersion(version))
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	// The write timeout leaves room for a full pipeline run.
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Recommend.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if c := client.Cache(); c != nil {
		tree.AddMaintenanceService(cache.NewJanitor(c, cacheJanitorInterval))
	}
	if !cfg.Store.InMemory {
		tree.AddMaintenanceService(store.NewGCService(st, cfg.Store.GCInterval))
	}
	if cfg.Backup.Enabled {
		manager, err := backup.NewManager(st, &cfg.Backup)
		if err != nil {
			return fmt.Errorf("init backups: %w", err)
		}
		tree.AddMaintenanceService(backup.NewScheduler(manager, cfg.Backup.Interval))
		logging.Info().
			Str("dir", cfg.Backup.Dir).
			Dur("interval", cfg.Backup.Interval).
			Int("retain", cfg.Backup.Retain).
			Msg("Scheduled store backups enabled")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("ReelMatch stopped gracefully")
	return nil
}
