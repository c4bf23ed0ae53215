// Package reconcile brings the local catalog up to date with Sonarr.
package reconcile

//go:generate mockgen -destination=mocks/reconcile_mock.go -package=mocks github.com/vmunix/cliparr/internal/reconcile RemoteCatalog,CatalogStore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/pkg/sonarr"
)

// RemoteCatalog is the source of truth for shows and episodes.
type RemoteCatalog interface {
	ListSeries(ctx context.Context) ([]sonarr.Series, error)
	ListEpisodes(ctx context.Context, seriesID int64, hasFileOnly bool) ([]sonarr.Episode, error)
	GetEpisodeFile(ctx context.Context, fileID int64) (*sonarr.EpisodeFile, error)
}

// CatalogStore is the local snapshot being reconciled.
type CatalogStore interface {
	UpsertShow(ctx context.Context, remoteID int64, title, overview, path string) (int64, error)
	UpsertSeason(ctx context.Context, showID int64, seasonNumber int) (int64, error)
	UpsertEpisode(ctx context.Context, seasonID, remoteEpisodeID int64, number int, title string) (int64, error)
	InsertEpisodeFile(ctx context.Context, episodeID int64, path string, size int64, quality string) (int64, error)
	RemoteEpisodeIDs(ctx context.Context, showID int64) (map[int64]struct{}, error)
	EpisodeCountsByRemoteShow(ctx context.Context) (map[int64]int, error)
	ListRemoteShowIDs(ctx context.Context) ([]int64, error)
}

// ImportedShow reports the episodes added for one show.
type ImportedShow struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	EpisodesImported int    `json:"episodesImported"`
}

// Result summarizes one reconciliation run.
type Result struct {
	ImportedCount  int            `json:"importedCount"`
	ImportedShows  []ImportedShow `json:"importedShows"`
	ShowsProcessed int            `json:"showsProcessed"`
}

// EpisodesImported totals the episodes added across all shows.
func (r *Result) EpisodesImported() int {
	n := 0
	for _, s := range r.ImportedShows {
		n += s.EpisodesImported
	}
	return n
}

// Unimported is a remote show with more files than local episodes.
type Unimported struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Path              string `json:"path"`
	EpisodeFileCount  int    `json:"episodeFileCount"`
	LocalEpisodeCount int    `json:"localEpisodeCount"`
}

// Reconciler diffs the remote catalog against the local store and inserts
// what is missing. Runs are serialized.
type Reconciler struct {
	remote RemoteCatalog
	store  CatalogStore
	bus    events.Publisher
	logger *slog.Logger

	mu sync.Mutex
}

// New creates a Reconciler. bus may be nil.
func New(remote RemoteCatalog, store CatalogStore, bus events.Publisher, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		remote: remote,
		store:  store,
		bus:    bus,
		logger: logger.With("component", "reconcile"),
	}
}

// Import reconciles the shows whose Sonarr ids are in remoteIDs, or every
// remote show when remoteIDs is empty. A remote failure aborts the run.
// A local failure skips the affected show.
func (r *Reconciler) Import(ctx context.Context, remoteIDs []int64) (*Result, error) {
	return r.run(ctx, remoteIDs, events.TriggerManual)
}

// ImportAll reconciles the whole remote catalog.
func (r *Reconciler) ImportAll(ctx context.Context) (*Result, error) {
	return r.run(ctx, nil, events.TriggerAuto)
}

// ImportExisting reconciles only shows already present locally. With an
// empty local catalog it does nothing.
func (r *Reconciler) ImportExisting(ctx context.Context) (*Result, error) {
	ids, err := r.store.ListRemoteShowIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local shows: %w", err)
	}
	if len(ids) == 0 {
		r.logger.Debug("no local shows, nothing to import")
		return &Result{ImportedShows: []ImportedShow{}}, nil
	}
	return r.run(ctx, ids, events.TriggerImport)
}

func (r *Reconciler) run(ctx context.Context, remoteIDs []int64, trigger string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()

	series, err := r.remote.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	series = selectSeries(series, remoteIDs)

	result := &Result{ImportedShows: []ImportedShow{}}
	for _, s := range series {
		result.ShowsProcessed++

		n, err := r.importShow(ctx, s)
		if err != nil {
			if isRemote(err) {
				return nil, err
			}
			r.logger.Warn("skipping show", "sonarr_id", s.ID, "title", s.Title, "error", err)
			continue
		}
		if n > 0 {
			result.ImportedShows = append(result.ImportedShows, ImportedShow{ID: s.ID, Title: s.Title, EpisodesImported: n})
		}
	}
	result.ImportedCount = len(result.ImportedShows)

	r.logger.Info("reconcile complete",
		"trigger", trigger,
		"shows_processed", result.ShowsProcessed,
		"shows_imported", result.ImportedCount,
		"episodes_imported", result.EpisodesImported(),
		"duration_ms", time.Since(start).Milliseconds())

	if r.bus != nil {
		e := events.NewReconcileCompleted(trigger, result.ShowsProcessed, result.ImportedCount, result.EpisodesImported())
		if err := r.bus.Publish(ctx, e); err != nil {
			r.logger.Warn("failed to publish reconcile event", "error", err)
		}
	}
	return result, nil
}

// remoteError marks failures that must abort the whole run.
type remoteError struct{ err error }

func (e *remoteError) Error() string { return e.err.Error() }
func (e *remoteError) Unwrap() error { return e.err }

func isRemote(err error) bool {
	var re *remoteError
	return errors.As(err, &re)
}

// importShow upserts one show and inserts its missing episodes. It returns
// the number of episodes inserted.
func (r *Reconciler) importShow(ctx context.Context, s sonarr.Series) (int, error) {
	showID, err := r.store.UpsertShow(ctx, s.ID, s.Title, s.Overview, s.Path)
	if err != nil {
		return 0, err
	}

	remoteEpisodes, err := r.remote.ListEpisodes(ctx, s.ID, false)
	if err != nil {
		return 0, &remoteError{fmt.Errorf("fetch episodes for %q: %w", s.Title, err)}
	}

	local, err := r.store.RemoteEpisodeIDs(ctx, showID)
	if err != nil {
		return 0, err
	}

	inserted := 0
	seasons := make(map[int]int64)
	for _, ep := range remoteEpisodes {
		if _, ok := local[ep.ID]; ok {
			continue
		}

		seasonID, ok := seasons[ep.SeasonNumber]
		if !ok {
			seasonID, err = r.store.UpsertSeason(ctx, showID, ep.SeasonNumber)
			if err != nil {
				return inserted, err
			}
			seasons[ep.SeasonNumber] = seasonID
		}

		episodeID, err := r.store.UpsertEpisode(ctx, seasonID, ep.ID, ep.EpisodeNumber, ep.Title)
		if err != nil {
			return inserted, err
		}
		inserted++

		if !ep.HasEpisodeFile() {
			continue
		}
		file, err := r.remote.GetEpisodeFile(ctx, ep.EpisodeFileID)
		if errors.Is(err, sonarr.ErrNotFound) {
			r.logger.Debug("episode file gone", "sonarr_episode_id", ep.ID, "file_id", ep.EpisodeFileID)
			continue
		}
		if err != nil {
			return inserted, &remoteError{fmt.Errorf("fetch file for episode %d: %w", ep.ID, err)}
		}
		if _, err := r.store.InsertEpisodeFile(ctx, episodeID, file.Path, file.Size, file.Quality); err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

// FindUnimported lists remote shows whose local episode count is below
// Sonarr's episode file count. It compares counts, not ids, so it can miss
// shows whose local episodes lack files.
func (r *Reconciler) FindUnimported(ctx context.Context) ([]Unimported, error) {
	series, err := r.remote.ListSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	counts, err := r.store.EpisodeCountsByRemoteShow(ctx)
	if err != nil {
		return nil, fmt.Errorf("count local episodes: %w", err)
	}

	out := []Unimported{}
	for _, s := range series {
		local := counts[s.ID]
		if local < s.Statistics.EpisodeFileCount {
			out = append(out, Unimported{
				ID:                s.ID,
				Title:             s.Title,
				Path:              s.Path,
				EpisodeFileCount:  s.Statistics.EpisodeFileCount,
				LocalEpisodeCount: local,
			})
		}
	}
	return out, nil
}

func selectSeries(all []sonarr.Series, ids []int64) []sonarr.Series {
	if len(ids) == 0 {
		return all
	}
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]sonarr.Series, 0, len(ids))
	for _, s := range all {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}
