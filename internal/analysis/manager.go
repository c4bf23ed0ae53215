package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/internal/probe"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent probes when none is configured.
const DefaultConcurrency = 4

// Prober runs a single media probe.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// EpisodeRef identifies one file to analyze.
type EpisodeRef struct {
	FilePath      string `json:"file_path" validate:"required"`
	SeasonNumber  int    `json:"season_number" validate:"gte=0"`
	EpisodeNumber int    `json:"episode_number" validate:"gte=0"`
}

// ScheduleRequest asks for analysis of a show's episodes.
type ScheduleRequest struct {
	ShowID    int64        `json:"show_id" validate:"required,gt=0"`
	ShowTitle string       `json:"show_title"`
	Episodes  []EpisodeRef `json:"episodes" validate:"required,min=1,dive"`
}

// ItemResult is the outcome of one scheduled episode.
type ItemResult struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Manager creates jobs and drives them through the prober.
type Manager struct {
	store       *Store
	prober      Prober
	bus         events.Publisher
	concurrency int
	logger      *slog.Logger
}

// NewManager creates a Manager. bus may be nil.
func NewManager(store *Store, prober Prober, bus events.Publisher, concurrency int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Manager{
		store:       store,
		prober:      prober,
		bus:         bus,
		concurrency: concurrency,
		logger:      logger.With("component", "analysis"),
	}
}

// Store returns the job store.
func (m *Manager) Store() *Store { return m.store }

// Schedule creates one pending job per episode and runs them with bounded
// concurrency. Every item gets its own result; one failure does not stop
// the others. Jobs keep running if ctx is canceled after they start.
func (m *Manager) Schedule(ctx context.Context, req ScheduleRequest) ([]ItemResult, error) {
	jobs := make([]*Job, 0, len(req.Episodes))
	for _, ep := range req.Episodes {
		j := &Job{
			ShowID:        req.ShowID,
			ShowTitle:     req.ShowTitle,
			SeasonNumber:  ep.SeasonNumber,
			EpisodeNumber: ep.EpisodeNumber,
			FilePath:      ep.FilePath,
		}
		if err := m.store.Create(ctx, j); err != nil {
			m.abort(ctx, jobs)
			return nil, fmt.Errorf("schedule %s: %w", ep.FilePath, err)
		}
		jobs = append(jobs, j)
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	if m.bus != nil {
		if err := m.bus.Publish(ctx, events.NewAnalysisScheduled(req.ShowID, req.ShowTitle, ids)); err != nil {
			m.logger.Warn("failed to publish schedule event", "error", err)
		}
	}
	m.logger.Info("analysis scheduled", "show_id", req.ShowID, "jobs", len(jobs), "concurrency", m.concurrency)

	runCtx := context.WithoutCancel(ctx)
	results := make([]ItemResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(m.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = m.run(runCtx, j)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// abort fails jobs created by a Schedule call that could not finish
// creating the rest.
func (m *Manager) abort(ctx context.Context, jobs []*Job) {
	ctx = context.WithoutCancel(ctx)
	for _, j := range jobs {
		if err := m.store.Abort(ctx, j.ID, "schedule aborted"); err != nil {
			m.logger.Error("failed to abort job", "job_id", j.ID, "error", err)
		}
	}
}

// run drives one job from pending to completed or failed.
func (m *Manager) run(ctx context.Context, j *Job) ItemResult {
	res := ItemResult{JobID: j.ID, FilePath: j.FilePath}

	if err := m.store.Start(ctx, j.ID); err != nil {
		res.Status, res.Error = StatusFailed, err.Error()
		return res
	}

	if _, err := m.prober.Probe(ctx, j.FilePath); err != nil {
		res.Status, res.Error = StatusFailed, err.Error()
		if ferr := m.store.Fail(ctx, j.ID, err.Error()); ferr != nil {
			m.logger.Error("failed to record job failure", "job_id", j.ID, "error", ferr)
		}
		m.logger.Warn("analysis failed", "job_id", j.ID, "path", j.FilePath, "error", err)
	} else {
		res.Status = StatusCompleted
		if err := m.store.Complete(ctx, j.ID); err != nil {
			res.Status, res.Error = StatusFailed, err.Error()
		}
	}

	if m.bus != nil {
		e := events.NewAnalysisJobFinished(j.ShowID, j.ID, j.FilePath, string(res.Status), res.Error)
		if err := m.bus.Publish(ctx, e); err != nil {
			m.logger.Warn("failed to publish job event", "error", err)
		}
	}
	return res
}
