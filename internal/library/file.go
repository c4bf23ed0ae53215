package library

import (
	"context"
	"fmt"
	"time"
)

func insertEpisodeFile(ctx context.Context, q querier, episodeID int64, path string, size int64, quality string) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO episode_files (episode_id, file_path, size, quality, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		episodeID, path, size, quality, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert episode file: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

// InsertEpisodeFile records a file for an episode. Files are never
// deduplicated.
func (s *Store) InsertEpisodeFile(ctx context.Context, episodeID int64, path string, size int64, quality string) (int64, error) {
	return insertEpisodeFile(ctx, s.db, episodeID, path, size, quality)
}

// InsertEpisodeFile records a file within a transaction.
func (t *Tx) InsertEpisodeFile(ctx context.Context, episodeID int64, path string, size int64, quality string) (int64, error) {
	return insertEpisodeFile(ctx, t.tx, episodeID, path, size, quality)
}

// ListEpisodeFiles returns the file history for an episode, oldest first.
func (s *Store) ListEpisodeFiles(ctx context.Context, episodeID int64) ([]EpisodeFile, error) {
	var files []EpisodeFile
	err := s.db.SelectContext(ctx, &files, `
		SELECT id, episode_id, file_path, size, quality, created_at
		FROM episode_files WHERE episode_id = ? ORDER BY id`, episodeID)
	if err != nil {
		return nil, fmt.Errorf("list files for episode %d: %w", episodeID, mapSQLiteError(err))
	}
	return files, nil
}

func (s *Store) filesForShow(ctx context.Context, showID int64) ([]EpisodeFile, error) {
	var files []EpisodeFile
	err := s.db.SelectContext(ctx, &files, `
		SELECT f.id, f.episode_id, f.file_path, f.size, f.quality, f.created_at
		FROM episode_files f
		JOIN episodes e ON e.id = f.episode_id
		JOIN seasons se ON se.id = e.season_id
		WHERE se.show_id = ?
		ORDER BY f.id`, showID)
	if err != nil {
		return nil, fmt.Errorf("list files for show %d: %w", showID, mapSQLiteError(err))
	}
	return files, nil
}
