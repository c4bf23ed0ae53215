// Package server runs the daemon's long-lived components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vmunix/cliparr/internal/events"
	"golang.org/x/sync/errgroup"
)

// Defaults applied by NewRunner to zero Config fields.
const (
	DefaultPruneInterval   = time.Hour
	DefaultShutdownTimeout = 30 * time.Second
)

// Config for the server runner.
type Config struct {
	Addr            string
	EventRetention  time.Duration // zero keeps events forever
	PruneInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Hub is the WebSocket hub.
type Hub interface {
	Run(ctx context.Context) error
	Relay(ctx context.Context, ch <-chan events.Event) error
}

// Poller is the background import loop.
type Poller interface {
	Start(ctx context.Context) error
	Stop()
}

// Pruner deletes old events.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Components are the pieces Run starts. Hub, Poller and Events may be nil.
type Components struct {
	Handler http.Handler
	Bus     *events.Bus
	Hub     Hub
	Poller  Poller
	Events  Pruner
}

// Runner manages the daemon components.
type Runner struct {
	config Config
	comp   Components
	logger *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(cfg Config, comp Components, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = DefaultPruneInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Runner{
		config: cfg,
		comp:   comp,
		logger: logger,
	}
}

// Run starts all components and blocks until ctx is canceled or one of
// them fails. The HTTP server is drained before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	if r.comp.Hub != nil {
		g.Go(func() error { return r.comp.Hub.Run(ctx) })
		if r.comp.Bus != nil {
			sub := r.comp.Bus.SubscribeAll(64)
			defer r.comp.Bus.Unsubscribe(sub)
			g.Go(func() error { return r.comp.Hub.Relay(ctx, sub) })
		}
	}

	if r.comp.Events != nil && r.config.EventRetention > 0 {
		g.Go(func() error {
			r.pruneLoop(ctx)
			return nil
		})
	}

	if r.comp.Poller != nil {
		if err := r.comp.Poller.Start(ctx); err != nil {
			r.logger.Error("poller start failed", "error", err)
		}
		defer r.comp.Poller.Stop()
	}

	srv := &http.Server{
		Handler:           r.comp.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}

func (r *Runner) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		n, err := r.comp.Events.Prune(ctx, r.config.EventRetention)
		switch {
		case err != nil && ctx.Err() == nil:
			r.logger.Warn("event prune failed", "error", err)
		case n > 0:
			r.logger.Info("pruned events", "count", n, "retention", r.config.EventRetention)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
