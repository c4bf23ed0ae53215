package v1

//go:generate mockgen -destination=mocks/api_mock.go -package=mocks github.com/vmunix/cliparr/internal/api/v1 Reconciler,ModeController,Analyzer,Prober

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vmunix/cliparr/internal/analysis"
	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/internal/library"
	"github.com/vmunix/cliparr/internal/probe"
	"github.com/vmunix/cliparr/internal/reconcile"
)

// Catalog is the local show catalog.
type Catalog interface {
	ListShows(ctx context.Context, page, pageSize int) (*library.ShowPage, error)
	GetShowTree(ctx context.Context, id int64) (*library.ShowTree, error)
	DeleteShows(ctx context.Context, ids []int64) (int64, error)
	SearchShows(ctx context.Context, query string, limit int) ([]library.ShowMatch, error)
}

// Reconciler imports shows from Sonarr.
type Reconciler interface {
	Import(ctx context.Context, remoteIDs []int64) (*reconcile.Result, error)
	FindUnimported(ctx context.Context) ([]reconcile.Unimported, error)
}

// ModeController reads and changes the import mode.
type ModeController interface {
	Mode(ctx context.Context) (string, error)
	SetMode(ctx context.Context, mode string) error
	Running() bool
}

// Analyzer schedules analysis jobs.
type Analyzer interface {
	Schedule(ctx context.Context, req analysis.ScheduleRequest) ([]analysis.ItemResult, error)
}

// JobStore lists and prunes analysis jobs.
type JobStore interface {
	List(ctx context.Context, f analysis.ListFilter) ([]analysis.Job, int, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// DigestStore queries and prunes segment digests.
type DigestStore interface {
	FindMatches(ctx context.Context, path string) ([]probe.Match, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Prober runs one media probe.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// EventLister reads the event audit log.
type EventLister interface {
	List(ctx context.Context, q events.Query) ([]events.RawEvent, error)
}

// Hub is the WebSocket endpoint.
type Hub interface {
	http.Handler
	Clients() int
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog    Catalog
	Reconciler Reconciler
	Modes      ModeController

	// Optional dependencies (nil if not configured)
	Analyzer Analyzer
	Jobs     JobStore
	Digests  DigestStore
	Prober   Prober
	Events   EventLister
	Hub      Hub
	Bus      events.Publisher

	Version string
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	if d.Reconciler == nil {
		return errors.New("reconciler is required")
	}
	if d.Modes == nil {
		return errors.New("mode controller is required")
	}
	return nil
}
