package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vmunix/cliparr/internal/database"
)

func upsertSeason(ctx context.Context, q querier, showID int64, seasonNumber int) (int64, error) {
	_, err := q.ExecContext(ctx, `
		INSERT INTO seasons (show_id, season_number, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(show_id, season_number) DO NOTHING`,
		showID, seasonNumber, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert season %d of show %d: %w", seasonNumber, showID, mapSQLiteError(err))
	}

	var id int64
	err = q.GetContext(ctx, &id, `SELECT id FROM seasons WHERE show_id = ? AND season_number = ?`, showID, seasonNumber)
	if err != nil {
		return 0, fmt.Errorf("get season %d of show %d: %w", seasonNumber, showID, mapSQLiteError(err))
	}
	return id, nil
}

// UpsertSeason returns the id of the season, creating it if absent.
func (s *Store) UpsertSeason(ctx context.Context, showID int64, seasonNumber int) (int64, error) {
	return upsertSeason(ctx, s.db, showID, seasonNumber)
}

// UpsertSeason returns the id of the season within a transaction.
func (t *Tx) UpsertSeason(ctx context.Context, showID int64, seasonNumber int) (int64, error) {
	return upsertSeason(ctx, t.tx, showID, seasonNumber)
}

func upsertEpisode(ctx context.Context, q querier, seasonID, remoteEpisodeID int64, number int, title string) (int64, error) {
	// A different remote episode holding the same slot is replaced.
	_, err := q.ExecContext(ctx, `
		DELETE FROM episodes
		WHERE season_id = ? AND episode_number = ? AND sonarr_episode_id != ?`,
		seasonID, number, remoteEpisodeID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear episode slot %d: %w", number, mapSQLiteError(err))
	}

	var id int64
	err = q.QueryRowxContext(ctx, `
		INSERT INTO episodes (season_id, episode_number, title, sonarr_episode_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sonarr_episode_id) DO UPDATE SET
			season_id = excluded.season_id,
			episode_number = excluded.episode_number,
			title = excluded.title
		RETURNING id`,
		seasonID, number, title, remoteEpisodeID, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert episode %d: %w", remoteEpisodeID, mapSQLiteError(err))
	}
	return id, nil
}

// UpsertEpisode inserts or replaces an episode keyed by its Sonarr episode
// id and returns the resulting local id.
func (s *Store) UpsertEpisode(ctx context.Context, seasonID, remoteEpisodeID int64, number int, title string) (int64, error) {
	var id int64
	err := database.WrapTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		id, err = upsertEpisode(ctx, tx, seasonID, remoteEpisodeID, number, title)
		return err
	})
	return id, err
}

// UpsertEpisode inserts or replaces an episode within a transaction.
func (t *Tx) UpsertEpisode(ctx context.Context, seasonID, remoteEpisodeID int64, number int, title string) (int64, error) {
	return upsertEpisode(ctx, t.tx, seasonID, remoteEpisodeID, number, title)
}

// RemoteEpisodeIDs returns the set of Sonarr episode ids stored for a show.
func (s *Store) RemoteEpisodeIDs(ctx context.Context, showID int64) (map[int64]struct{}, error) {
	var ids []int64
	err := s.db.SelectContext(ctx, &ids, `
		SELECT e.sonarr_episode_id
		FROM episodes e
		JOIN seasons se ON se.id = e.season_id
		WHERE se.show_id = ?`, showID)
	if err != nil {
		return nil, fmt.Errorf("list episode ids for show %d: %w", showID, mapSQLiteError(err))
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// GetShowTree returns a show with its seasons, episodes and files, each
// level ordered by number.
func (s *Store) GetShowTree(ctx context.Context, id int64) (*ShowTree, error) {
	show, err := s.GetShow(ctx, id)
	if err != nil {
		return nil, err
	}

	var seasons []Season
	if err := s.db.SelectContext(ctx, &seasons, `
		SELECT id, show_id, season_number, created_at
		FROM seasons WHERE show_id = ? ORDER BY season_number`, id); err != nil {
		return nil, fmt.Errorf("list seasons for show %d: %w", id, mapSQLiteError(err))
	}

	var episodes []Episode
	if err := s.db.SelectContext(ctx, &episodes, `
		SELECT e.id, e.season_id, e.episode_number, e.title, e.sonarr_episode_id, e.created_at
		FROM episodes e JOIN seasons se ON se.id = e.season_id
		WHERE se.show_id = ?
		ORDER BY se.season_number, e.episode_number`, id); err != nil {
		return nil, fmt.Errorf("list episodes for show %d: %w", id, mapSQLiteError(err))
	}

	files, err := s.filesForShow(ctx, id)
	if err != nil {
		return nil, err
	}

	filesByEpisode := make(map[int64][]EpisodeFile)
	for _, f := range files {
		filesByEpisode[f.EpisodeID] = append(filesByEpisode[f.EpisodeID], f)
	}

	episodesBySeason := make(map[int64][]EpisodeTree)
	for _, e := range episodes {
		episodesBySeason[e.SeasonID] = append(episodesBySeason[e.SeasonID], EpisodeTree{
			Episode: e,
			Files:   filesByEpisode[e.ID],
		})
	}

	tree := &ShowTree{Show: *show, Seasons: make([]SeasonTree, 0, len(seasons))}
	for _, se := range seasons {
		tree.Seasons = append(tree.Seasons, SeasonTree{Season: se, Episodes: episodesBySeason[se.ID]})
	}
	return tree, nil
}

// GetEpisodeByRemoteID retrieves an episode by its Sonarr episode id.
func (s *Store) GetEpisodeByRemoteID(ctx context.Context, remoteEpisodeID int64) (*Episode, error) {
	e := &Episode{}
	err := s.db.GetContext(ctx, e, `
		SELECT id, season_id, episode_number, title, sonarr_episode_id, created_at
		FROM episodes WHERE sonarr_episode_id = ?`, remoteEpisodeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get episode by sonarr id %d: %w", remoteEpisodeID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get episode by sonarr id %d: %w", remoteEpisodeID, mapSQLiteError(err))
	}
	return e, nil
}
