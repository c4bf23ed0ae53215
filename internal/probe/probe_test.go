package probe_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cliparr/internal/database"
	"github.com/vmunix/cliparr/internal/probe"
	"github.com/vmunix/cliparr/internal/probe/mocks"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(database.Options{Path: database.MemoryPath}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestProber_Probe(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	store := probe.NewDigestStore(setupTestDB(t))
	ctx := context.Background()

	runner.EXPECT().Duration(gomock.Any(), "/tv/a.mkv").Return(1800.0, nil)
	runner.EXPECT().SegmentStats(gomock.Any(), "/tv/a.mkv", 0.0, 180.0).Return([]byte("head stats"), nil)
	runner.EXPECT().SegmentStats(gomock.Any(), "/tv/a.mkv", 1620.0, 180.0).Return([]byte("tail stats"), nil)

	p := probe.NewProber(runner, store, 180*time.Second, testLogger())
	result, err := p.Probe(ctx, "/tv/a.mkv")
	require.NoError(t, err)

	require.NotNil(t, result.Intro)
	require.NotNil(t, result.Outro)
	assert.Equal(t, sha("head stats"), result.Intro.Hash)
	assert.Equal(t, 1620.0, result.Outro.Start)
	assert.Equal(t, 1800.0, result.Outro.End)

	fps, err := store.ForFile(ctx, "/tv/a.mkv")
	require.NoError(t, err)
	require.Len(t, fps, 2)
	assert.Equal(t, probe.TypeIntro, fps[0].Type)
	assert.Equal(t, probe.TypeOutro, fps[1].Type)
}

func TestProber_Probe_ShortFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)

	runner.EXPECT().Duration(gomock.Any(), gomock.Any()).Return(60.0, nil)
	runner.EXPECT().SegmentStats(gomock.Any(), gomock.Any(), 0.0, 60.0).Return([]byte("same"), nil).Times(2)

	result, err := probe.NewProber(runner, nil, 180*time.Second, testLogger()).Probe(context.Background(), "/tv/short.mkv")
	require.NoError(t, err)
	assert.Equal(t, result.Intro.Hash, result.Outro.Hash)
	assert.Equal(t, 0.0, result.Outro.Start)
}

func TestProber_Probe_TailFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	store := probe.NewDigestStore(setupTestDB(t))

	runner.EXPECT().Duration(gomock.Any(), gomock.Any()).Return(600.0, nil)
	runner.EXPECT().SegmentStats(gomock.Any(), gomock.Any(), 0.0, 180.0).Return([]byte("head"), nil)
	runner.EXPECT().SegmentStats(gomock.Any(), gomock.Any(), 420.0, 180.0).Return(nil, errors.New("exit status 1"))

	result, err := probe.NewProber(runner, store, 0, testLogger()).Probe(context.Background(), "/tv/b.mkv")
	require.NoError(t, err)
	require.NotNil(t, result.Intro)
	assert.Nil(t, result.Outro)

	fps, err := store.ForFile(context.Background(), "/tv/b.mkv")
	require.NoError(t, err)
	assert.Len(t, fps, 1)
}

func TestProber_Probe_NoDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		err      error
	}{
		{"ffprobe error", 0, errors.New("exec: \"ffprobe\": executable file not found")},
		{"zero duration", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockRunner(ctrl)
			runner.EXPECT().Duration(gomock.Any(), gomock.Any()).Return(tt.duration, tt.err)

			_, err := probe.NewProber(runner, nil, 0, testLogger()).Probe(context.Background(), "/tv/c.mkv")
			assert.ErrorIs(t, err, probe.ErrNoDuration)
		})
	}
}

func TestDigestStore(t *testing.T) {
	db := setupTestDB(t)
	store := probe.NewDigestStore(db)
	ctx := context.Background()

	fp := probe.Fingerprint{FilePath: "/tv/s01e01.mkv", Hash: "aaa", EndTime: 180, Type: probe.TypeIntro, Confidence: 1}

	inserted, err := store.Save(ctx, fp)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.Save(ctx, fp)
	require.NoError(t, err)
	assert.False(t, inserted, "duplicate digest for the same file is ignored")

	_, err = store.Save(ctx, probe.Fingerprint{FilePath: "/tv/s01e02.mkv", Hash: "aaa", EndTime: 180, Type: probe.TypeIntro})
	require.NoError(t, err)
	_, err = store.Save(ctx, probe.Fingerprint{FilePath: "/tv/s01e03.mkv", Hash: "bbb", EndTime: 180, Type: probe.TypeIntro})
	require.NoError(t, err)

	matches, err := store.FindMatches(ctx, "/tv/s01e01.mkv")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "/tv/s01e02.mkv", matches[0].FilePath)

	_, err = db.Exec(`UPDATE fingerprints SET created_at = ? WHERE file_path = ?`,
		time.Now().UTC().Add(-60*24*time.Hour), "/tv/s01e03.mkv")
	require.NoError(t, err)

	n, err := store.Cleanup(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
