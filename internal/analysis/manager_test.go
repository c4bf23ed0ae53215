package analysis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/internal/probe"
)

// fakeProber fails for paths in fail and tracks peak concurrency.
type fakeProber struct {
	fail    map[string]bool
	delay   time.Duration
	active  atomic.Int32
	mu      sync.Mutex
	maxSeen int32
}

func (f *fakeProber) Probe(_ context.Context, path string) (*probe.Result, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	f.mu.Lock()
	f.maxSeen = max(f.maxSeen, n)
	f.mu.Unlock()

	time.Sleep(f.delay)
	if f.fail[path] {
		return nil, probe.ErrNoDuration
	}
	return &probe.Result{FilePath: path}, nil
}

func TestManager_Schedule(t *testing.T) {
	store := NewStore(setupTestDB(t))
	prober := &fakeProber{fail: map[string]bool{"/tv/2.mkv": true}}
	bus := events.NewBus(nil, testLogger())
	defer bus.Close()
	scheduled := bus.Subscribe(events.EventAnalysisScheduled, 1)
	finished := bus.Subscribe(events.EventAnalysisJobFinished, 8)

	m := NewManager(store, prober, bus, 2, testLogger())
	results, err := m.Schedule(context.Background(), ScheduleRequest{
		ShowID:    7,
		ShowTitle: "Show",
		Episodes: []EpisodeRef{
			{FilePath: "/tv/1.mkv", SeasonNumber: 1, EpisodeNumber: 1},
			{FilePath: "/tv/2.mkv", SeasonNumber: 1, EpisodeNumber: 2},
			{FilePath: "/tv/3.mkv", SeasonNumber: 1, EpisodeNumber: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, StatusCompleted, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.Contains(t, results[1].Error, "duration")
	assert.Equal(t, StatusCompleted, results[2].Status)

	j, err := store.Get(context.Background(), results[1].JobID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, j.Status)

	e := <-scheduled
	assert.Len(t, e.(*events.AnalysisScheduled).JobIDs, 3)
	assert.Len(t, finished, 3)
}

func TestManager_Schedule_BoundedConcurrency(t *testing.T) {
	store := NewStore(setupTestDB(t))
	prober := &fakeProber{delay: 20 * time.Millisecond}

	req := ScheduleRequest{ShowID: 1}
	for i := 0; i < 8; i++ {
		req.Episodes = append(req.Episodes, EpisodeRef{FilePath: "/tv/e.mkv", EpisodeNumber: i})
	}

	results, err := NewManager(store, prober, nil, 3, testLogger()).Schedule(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, prober.maxSeen, int32(3))
}

func TestManager_Schedule_SurvivesCancel(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())

	prober := &cancelingProber{cancel: cancel}
	results, err := NewManager(store, prober, nil, 1, testLogger()).Schedule(ctx, ScheduleRequest{
		ShowID:   1,
		Episodes: []EpisodeRef{{FilePath: "/tv/a.mkv"}, {FilePath: "/tv/b.mkv"}},
	})
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, StatusCompleted, r.Status)
	}
}

// cancelingProber cancels the caller's context on first use and fails if
// it ever observes cancellation.
type cancelingProber struct {
	cancel context.CancelFunc
}

func (p *cancelingProber) Probe(ctx context.Context, path string) (*probe.Result, error) {
	p.cancel()
	if ctx.Err() != nil {
		return nil, errors.New("probe saw canceled context")
	}
	return &probe.Result{FilePath: path}, nil
}

func TestManager_Schedule_CreateFailureAbortsCreatedJobs(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(`
		CREATE TRIGGER reject_bad_path BEFORE INSERT ON analysis_jobs
		WHEN NEW.file_path = '/tv/bad.mkv'
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
	require.NoError(t, err)

	store := NewStore(db)
	prober := &fakeProber{}
	m := NewManager(store, prober, nil, 2, testLogger())

	_, err = m.Schedule(context.Background(), ScheduleRequest{
		ShowID: 7,
		Episodes: []EpisodeRef{
			{FilePath: "/tv/1.mkv"},
			{FilePath: "/tv/2.mkv"},
			{FilePath: "/tv/bad.mkv"},
			{FilePath: "/tv/4.mkv"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/tv/bad.mkv")

	pending, total, err := store.List(context.Background(), ListFilter{Status: StatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Zero(t, total)

	failed, _, err := store.List(context.Background(), ListFilter{Status: StatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 2)
	for _, j := range failed {
		require.NotNil(t, j.ErrorMessage)
		assert.Equal(t, "schedule aborted", *j.ErrorMessage)
	}
	assert.Zero(t, prober.active.Load())
}
