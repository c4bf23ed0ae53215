package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Fingerprint is a persisted segment digest.
type Fingerprint struct {
	ID         int64     `db:"id" json:"id"`
	FilePath   string    `db:"file_path" json:"filePath"`
	Hash       string    `db:"fingerprint_hash" json:"hash"`
	StartTime  float64   `db:"start_time" json:"startTime"`
	EndTime    float64   `db:"end_time" json:"endTime"`
	Type       string    `db:"type" json:"type"`
	Confidence float64   `db:"confidence" json:"confidence"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Match is another file sharing a digest with the queried file.
type Match struct {
	FilePath string `db:"file_path" json:"filePath"`
	Hash     string `db:"fingerprint_hash" json:"hash"`
	Type     string `db:"type" json:"type"`
}

// DigestStore persists fingerprints.
type DigestStore struct {
	db *sqlx.DB
}

// NewDigestStore creates a DigestStore.
func NewDigestStore(db *sqlx.DB) *DigestStore {
	return &DigestStore{db: db}
}

// Save records fp unless the same digest is already stored for the file.
// It reports whether a row was inserted.
func (s *DigestStore) Save(ctx context.Context, fp Fingerprint) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO fingerprints
			(file_path, fingerprint_hash, start_time, end_time, type, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fp.FilePath, fp.Hash, fp.StartTime, fp.EndTime, fp.Type, fp.Confidence, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("save fingerprint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ForFile returns the digests stored for path, oldest first.
func (s *DigestStore) ForFile(ctx context.Context, path string) ([]Fingerprint, error) {
	fps := []Fingerprint{}
	err := s.db.SelectContext(ctx, &fps, `
		SELECT id, file_path, fingerprint_hash, start_time, end_time, type, confidence, created_at
		FROM fingerprints WHERE file_path = ? ORDER BY id`, path)
	if err != nil {
		return nil, fmt.Errorf("list fingerprints: %w", err)
	}
	return fps, nil
}

// FindMatches returns other files that share any digest with path.
func (s *DigestStore) FindMatches(ctx context.Context, path string) ([]Match, error) {
	matches := []Match{}
	err := s.db.SelectContext(ctx, &matches, `
		SELECT DISTINCT o.file_path, o.fingerprint_hash, o.type
		FROM fingerprints f
		JOIN fingerprints o ON o.fingerprint_hash = f.fingerprint_hash AND o.file_path != f.file_path
		WHERE f.file_path = ?
		ORDER BY o.file_path, o.type`, path)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	return matches, nil
}

// Cleanup removes digests older than olderThan and returns how many were
// deleted.
func (s *DigestStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, `DELETE FROM fingerprints WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup fingerprints: %w", err)
	}
	return res.RowsAffected()
}
