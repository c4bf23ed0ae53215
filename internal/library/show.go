package library

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vmunix/cliparr/internal/database"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

func upsertShow(ctx context.Context, q querier, remoteID int64, title, overview, path string) (int64, error) {
	now := time.Now().UTC()
	var id int64
	err := q.QueryRowxContext(ctx, `
		INSERT INTO shows (sonarr_id, title, sort_title, overview, path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sonarr_id) DO UPDATE SET
			title = excluded.title,
			sort_title = excluded.sort_title,
			overview = excluded.overview,
			path = excluded.path,
			updated_at = excluded.updated_at
		RETURNING id`,
		remoteID, title, SortTitle(title), overview, path, now, now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert show %d: %w", remoteID, mapSQLiteError(err))
	}
	return id, nil
}

// UpsertShow inserts a show or updates it in place by its Sonarr id.
// Returns the stable local id either way.
func (s *Store) UpsertShow(ctx context.Context, remoteID int64, title, overview, path string) (int64, error) {
	return upsertShow(ctx, s.db, remoteID, title, overview, path)
}

// UpsertShow inserts or updates a show within a transaction.
func (t *Tx) UpsertShow(ctx context.Context, remoteID int64, title, overview, path string) (int64, error) {
	return upsertShow(ctx, t.tx, remoteID, title, overview, path)
}

func getShow(ctx context.Context, q querier, id int64) (*Show, error) {
	show := &Show{}
	err := q.GetContext(ctx, show, `
		SELECT id, sonarr_id, title, sort_title, overview, path, created_at, updated_at
		FROM shows WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get show %d: %w", id, mapSQLiteError(err))
	}
	return show, nil
}

// GetShow retrieves a show by local id.
// Returns ErrNotFound if the show does not exist.
func (s *Store) GetShow(ctx context.Context, id int64) (*Show, error) { return getShow(ctx, s.db, id) }

// GetShow retrieves a show by local id within a transaction.
func (t *Tx) GetShow(ctx context.Context, id int64) (*Show, error) { return getShow(ctx, t.tx, id) }

// GetShowByRemoteID retrieves a show by its Sonarr id.
func (s *Store) GetShowByRemoteID(ctx context.Context, remoteID int64) (*Show, error) {
	show := &Show{}
	err := s.db.GetContext(ctx, show, `
		SELECT id, sonarr_id, title, sort_title, overview, path, created_at, updated_at
		FROM shows WHERE sonarr_id = ?`, remoteID)
	if err != nil {
		return nil, fmt.Errorf("get show by sonarr id %d: %w", remoteID, mapSQLiteError(err))
	}
	return show, nil
}

// ListShows returns one page of shows ordered case-insensitively by title,
// each with season and episode counts. A page past the end is clamped to
// the last page.
func (s *Store) ListShows(ctx context.Context, page, pageSize int) (*ShowPage, error) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shows`); err != nil {
		return nil, fmt.Errorf("count shows: %w", mapSQLiteError(err))
	}

	totalPages := max(1, (total+pageSize-1)/pageSize)
	page = min(page, totalPages)

	shows := []ShowSummary{}
	err := s.db.SelectContext(ctx, &shows, `
		SELECT s.id, s.sonarr_id, s.title, s.sort_title, s.overview, s.path, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM seasons se WHERE se.show_id = s.id) AS seasons_count,
			(SELECT COUNT(*) FROM episodes e JOIN seasons se ON se.id = e.season_id WHERE se.show_id = s.id) AS episodes_count
		FROM shows s
		ORDER BY s.sort_title, s.id
		LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", mapSQLiteError(err))
	}

	return &ShowPage{
		Shows:      shows,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListRemoteShowIDs returns the Sonarr ids of every local show.
func (s *Store) ListRemoteShowIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT sonarr_id FROM shows ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list sonarr ids: %w", mapSQLiteError(err))
	}
	return ids, nil
}

// EpisodeCountsByRemoteShow maps each local show's Sonarr id to the number
// of episodes stored for it.
func (s *Store) EpisodeCountsByRemoteShow(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT s.sonarr_id, COUNT(e.id)
		FROM shows s
		LEFT JOIN seasons se ON se.show_id = s.id
		LEFT JOIN episodes e ON e.season_id = se.id
		GROUP BY s.sonarr_id`)
	if err != nil {
		return nil, fmt.Errorf("count episodes: %w", mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[int64]int)
	for rows.Next() {
		var remoteID int64
		var n int
		if err := rows.Scan(&remoteID, &n); err != nil {
			return nil, fmt.Errorf("scan episode count: %w", err)
		}
		counts[remoteID] = n
	}
	return counts, rows.Err()
}

// DeleteShows removes the given shows and everything beneath them in one
// transaction, children first. An empty ids slice is a no-op; callers are
// expected to reject empty selections themselves. Returns the number of
// shows deleted.
func (s *Store) DeleteShows(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := database.WrapTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := database.InExec(ctx, tx, `
			DELETE FROM episode_files WHERE episode_id IN (
				SELECT e.id FROM episodes e JOIN seasons se ON se.id = e.season_id
				WHERE se.show_id IN (?))`, ids); err != nil {
			return fmt.Errorf("delete episode files: %w", mapSQLiteError(err))
		}
		if _, err := database.InExec(ctx, tx, `
			DELETE FROM episodes WHERE season_id IN (
				SELECT id FROM seasons WHERE show_id IN (?))`, ids); err != nil {
			return fmt.Errorf("delete episodes: %w", mapSQLiteError(err))
		}
		if _, err := database.InExec(ctx, tx, `DELETE FROM seasons WHERE show_id IN (?)`, ids); err != nil {
			return fmt.Errorf("delete seasons: %w", mapSQLiteError(err))
		}
		res, err := database.InExec(ctx, tx, `DELETE FROM shows WHERE id IN (?)`, ids)
		if err != nil {
			return fmt.Errorf("delete shows: %w", mapSQLiteError(err))
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
