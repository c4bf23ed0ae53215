// Package analysis tracks audio analysis jobs and runs them with bounded
// concurrency.
package analysis

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

var (
	ErrNotFound          = errors.New("analysis job not found")
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// Job is one episode file queued for analysis.
type Job struct {
	ID            string     `db:"id" json:"id"`
	ShowID        int64      `db:"show_id" json:"show_id"`
	ShowTitle     string     `db:"show_title" json:"show_title"`
	SeasonNumber  int        `db:"season_number" json:"season_number"`
	EpisodeNumber int        `db:"episode_number" json:"episode_number"`
	FilePath      string     `db:"file_path" json:"file_path"`
	Status        Status     `db:"status" json:"status"`
	Progress      int        `db:"progress" json:"progress"`
	ErrorMessage  *string    `db:"error_message" json:"error_message"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at"`
}

// ListFilter selects jobs. A zero Status matches every status.
type ListFilter struct {
	Status Status
	Limit  uint64
	Offset uint64
}
