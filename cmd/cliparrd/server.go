package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	v1 "github.com/vmunix/cliparr/internal/api/v1"
	"github.com/vmunix/cliparr/internal/analysis"
	"github.com/vmunix/cliparr/internal/config"
	"github.com/vmunix/cliparr/internal/database"
	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/internal/library"
	"github.com/vmunix/cliparr/internal/poller"
	"github.com/vmunix/cliparr/internal/probe"
	"github.com/vmunix/cliparr/internal/reconcile"
	"github.com/vmunix/cliparr/internal/server"
	"github.com/vmunix/cliparr/internal/ws"
	"github.com/vmunix/cliparr/pkg/sonarr"
)

func runServer(configPath string) error {
	// Load config. A missing file falls back to environment only.
	if configPath == "" {
		found, err := config.Discover()
		if err != nil && !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("config: %w", err)
		}
		configPath = found
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := newLogger(os.Stdout, cfg.Server.LogLevel)

	// Single instance per data directory
	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	lockPath := filepath.Join(cfg.Storage.DataDir, "cliparrd.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another cliparrd instance holds %s", lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release daemon lock", "error", err)
		}
	}()

	db, err := database.Open(database.Options{
		Path:       cfg.Storage.DBPath,
		LogQueries: cfg.Storage.LogQueries,
	}, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Stores ===
	libraryStore := library.NewStore(db)
	jobStore := analysis.NewStore(db)
	digestStore := probe.NewDigestStore(db)
	eventLog := events.NewEventLog(db)

	if err := libraryStore.EnsureSetting(ctx, library.SettingImportMode, cfg.Import.Mode); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Services ===
	if cfg.Sonarr.APIKey == "" {
		logger.Warn("sonarr api key not set, remote calls will fail")
	}
	svc := newServices(cfg, libraryStore, digestStore, jobStore, bus, logger)

	hub := ws.NewHub(logger)

	// === HTTP ===
	api, err := v1.New(v1.ServerDeps{
		Catalog:    libraryStore,
		Reconciler: svc.reconciler,
		Modes:      svc.controller,
		Analyzer:   svc.manager,
		Jobs:       jobStore,
		Digests:    digestStore,
		Prober:     svc.prober,
		Events:     eventLog,
		Hub:        hub,
		Bus:        bus,
		Version:    version,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("server starting",
		"addr", cfg.Addr(),
		"config", configPath,
		"database", cfg.Storage.DBPath,
		"sonarr", cfg.Sonarr.URL,
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(server.Config{
		Addr:           cfg.Addr(),
		EventRetention: cfg.Events.Retention,
	}, server.Components{
		Handler: logRequests(api.Routes(), logger),
		Bus:     bus,
		Hub:     hub,
		Poller:  svc.controller,
		Events:  eventLog,
	}, logger.With("component", "runner"))

	if err := runner.Run(ctx); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// services are the domain components built on top of the stores.
type services struct {
	reconciler *reconcile.Reconciler
	controller *poller.Controller
	prober     *probe.Prober
	manager    *analysis.Manager
}

// newServices wires the domain components. Each constructor tags its own
// logger with a component attribute, so they all get the root logger.
func newServices(cfg *config.Config, libraryStore *library.Store, digestStore *probe.DigestStore,
	jobStore *analysis.Store, bus *events.Bus, logger *slog.Logger) services {
	sonarrClient := sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey,
		sonarr.WithTimeout(cfg.Sonarr.Timeout),
		sonarr.WithLogger(logger),
	)
	reconciler := reconcile.New(sonarrClient, libraryStore, bus, logger)
	controller := poller.New(libraryStore, reconciler, bus, cfg.Import.Interval, logger)
	prober := probe.NewProber(
		probe.NewFFmpegRunner(cfg.Probe.FFmpeg, cfg.Probe.FFprobe),
		digestStore,
		cfg.Probe.Segment,
		logger,
	)
	manager := analysis.NewManager(jobStore, prober, bus, cfg.Probe.Concurrency, logger)

	return services{
		reconciler: reconciler,
		controller: controller,
		prober:     prober,
		manager:    manager,
	}
}
