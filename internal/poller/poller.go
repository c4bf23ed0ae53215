// Package poller runs periodic reconciliation according to the persisted
// import mode.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/internal/library"
	"github.com/vmunix/cliparr/internal/reconcile"
)

// Import modes.
const (
	ModeNone   = "none"
	ModeImport = "import"
	ModeAuto   = "auto"
)

// DefaultInterval is the time between passes.
const DefaultInterval = 5 * time.Minute

// ErrInvalidMode is returned for a mode other than none, import or auto.
var ErrInvalidMode = errors.New("invalid import mode")

// ValidMode reports whether mode is a known import mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeNone, ModeImport, ModeAuto:
		return true
	}
	return false
}

// Settings persists the import mode.
type Settings interface {
	GetSetting(ctx context.Context, key, def string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Importer runs reconciliation passes.
type Importer interface {
	ImportAll(ctx context.Context) (*reconcile.Result, error)
	ImportExisting(ctx context.Context) (*reconcile.Result, error)
}

// Controller owns the import mode and the polling goroutine. It is safe for
// concurrent use.
type Controller struct {
	settings Settings
	importer Importer
	bus      events.Publisher
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	loops  sync.WaitGroup
}

// New creates a Controller. bus may be nil; a non-positive interval uses
// DefaultInterval.
func New(settings Settings, importer Importer, bus events.Publisher, interval time.Duration, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{
		settings: settings,
		importer: importer,
		bus:      bus,
		interval: interval,
		logger:   logger.With("component", "poller"),
	}
}

// Mode returns the persisted import mode.
func (c *Controller) Mode(ctx context.Context) (string, error) {
	mode, err := c.settings.GetSetting(ctx, library.SettingImportMode, ModeNone)
	if err != nil {
		return "", fmt.Errorf("read import mode: %w", err)
	}
	return mode, nil
}

// Start launches the loop if the persisted mode is active. The loop lives
// until Stop is called or ctx is canceled.
func (c *Controller) Start(ctx context.Context) error {
	mode, err := c.Mode(ctx)
	if err != nil {
		return err
	}
	if mode != ModeNone {
		c.startLoop(ctx)
	}
	c.logger.Info("import mode", "mode", mode, "running", c.Running())
	return nil
}

// SetMode validates and persists mode, starting or stopping the loop on a
// transition between none and an active mode.
func (c *Controller) SetMode(ctx context.Context, mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if !ValidMode(mode) {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	previous, err := c.Mode(ctx)
	if err != nil {
		return err
	}
	if err := c.settings.SetSetting(ctx, library.SettingImportMode, mode); err != nil {
		return fmt.Errorf("save import mode: %w", err)
	}

	switch {
	case mode == ModeNone:
		// A pass in progress finishes on its own; only later ticks stop.
		c.halt()
	case !c.Running():
		// The loop must outlive the request that enabled it.
		c.startLoop(context.WithoutCancel(ctx))
	}

	c.logger.Info("import mode changed", "mode", mode, "previous", previous)
	if c.bus != nil {
		if err := c.bus.Publish(ctx, events.NewImportModeChanged(mode, previous)); err != nil {
			c.logger.Warn("failed to publish mode change", "error", err)
		}
	}
	return nil
}

// Running reports whether the polling loop is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Stop stops the loop and waits for every loop goroutine to exit,
// including ones halted earlier by SetMode. A pass in progress is allowed
// to finish.
func (c *Controller) Stop() {
	c.halt()
	c.loops.Wait()
}

// halt cancels the loop without waiting for it.
func (c *Controller) halt() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Controller) startLoop(parent context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel

	c.loops.Add(1)
	go func() {
		defer c.loops.Done()
		c.loop(ctx)
	}()
}

func (c *Controller) loop(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		c.pass(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pass runs one reconciliation according to the current mode. The pass
// itself is not interrupted by ctx.
func (c *Controller) pass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx := context.WithoutCancel(ctx)

	mode, err := c.Mode(runCtx)
	if err != nil {
		c.logger.Error("poll skipped", "error", err)
		return
	}

	var result *reconcile.Result
	switch mode {
	case ModeAuto:
		result, err = c.importer.ImportAll(runCtx)
	case ModeImport:
		result, err = c.importer.ImportExisting(runCtx)
	default:
		c.logger.Debug("poll skipped", "mode", mode)
		return
	}
	if err != nil {
		c.logger.Error("poll failed", "mode", mode, "error", err, "retry_in", c.interval)
		return
	}
	c.logger.Debug("poll complete", "mode", mode, "shows_processed", result.ShowsProcessed, "shows_imported", result.ImportedCount)
}
