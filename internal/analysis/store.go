package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const jobColumns = "id, show_id, show_title, season_number, episode_number, file_path, status, progress, error_message, created_at, updated_at, completed_at"

// Store persists analysis jobs.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a job store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Create inserts a pending job and fills in its id and timestamps.
func (s *Store) Create(ctx context.Context, j *Job) error {
	now := time.Now().UTC()
	j.ID = uuid.NewString()
	j.Status = StatusPending
	j.Progress = 0
	j.CreatedAt, j.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_jobs
			(id, show_id, show_title, season_number, episode_number, file_path, status, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.ShowID, j.ShowTitle, j.SeasonNumber, j.EpisodeNumber, j.FilePath, string(j.Status), j.Progress, now, now,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Get retrieves a job by id.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	j := &Job{}
	err := s.db.GetContext(ctx, j, "SELECT "+jobColumns+" FROM analysis_jobs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return j, nil
}

// Start moves a pending job to running.
func (s *Store) Start(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusPending, sq.Eq{
		"status":   string(StatusRunning),
		"progress": 0,
	})
}

// Complete moves a running job to completed.
func (s *Store) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusRunning, sq.Eq{
		"status":       string(StatusCompleted),
		"progress":     100,
		"completed_at": time.Now().UTC(),
	})
}

// Fail moves a running job to failed with msg.
func (s *Store) Fail(ctx context.Context, id, msg string) error {
	return s.transition(ctx, id, StatusRunning, sq.Eq{
		"status":        string(StatusFailed),
		"error_message": msg,
		"completed_at":  time.Now().UTC(),
	})
}

// Abort moves a pending job that will never run to failed with msg.
func (s *Store) Abort(ctx context.Context, id, msg string) error {
	return s.transition(ctx, id, StatusPending, sq.Eq{
		"status":        string(StatusFailed),
		"error_message": msg,
		"completed_at":  time.Now().UTC(),
	})
}

// transition applies set only if the job is currently in from.
func (s *Store) transition(ctx context.Context, id string, from Status, set sq.Eq) error {
	set["updated_at"] = time.Now().UTC()
	query, args, err := sq.Update("analysis_jobs").
		SetMap(set).
		Where(sq.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build transition: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("job %s to %v: %w", id, set["status"], ErrInvalidTransition)
	}
	return nil
}

// List returns jobs newest first along with the total matching count.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Job, int, error) {
	where := sq.And{}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": string(f.Status)})
	}

	countQ, countArgs, err := sq.Select("COUNT(*)").From("analysis_jobs").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := s.db.GetContext(ctx, &total, countQ, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	b := sq.Select(jobColumns).From("analysis_jobs").Where(where).OrderBy("created_at DESC", "id")
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}
	if f.Offset > 0 {
		b = b.Offset(f.Offset)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	jobs := []Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

// Cleanup removes completed and failed jobs last updated before the cutoff.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	query, args, err := sq.Delete("analysis_jobs").
		Where(sq.Eq{"status": []string{string(StatusCompleted), string(StatusFailed)}}).
		Where(sq.Lt{"updated_at": time.Now().UTC().Add(-olderThan)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cleanup: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup jobs: %w", err)
	}
	return res.RowsAffected()
}
