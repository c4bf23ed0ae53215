package library

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cliparr/internal/database"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(database.Options{Path: database.MemoryPath}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedEpisode creates show -> season -> episode and returns the local ids.
func seedEpisode(t *testing.T, store *Store, remoteShowID, remoteEpisodeID int64, season, number int) (showID, seasonID, episodeID int64) {
	t.Helper()
	ctx := context.Background()

	showID, err := store.UpsertShow(ctx, remoteShowID, "Show", "", "/tv/show")
	require.NoError(t, err)
	seasonID, err = store.UpsertSeason(ctx, showID, season)
	require.NoError(t, err)
	episodeID, err = store.UpsertEpisode(ctx, seasonID, remoteEpisodeID, number, "Episode")
	require.NoError(t, err)
	return showID, seasonID, episodeID
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
