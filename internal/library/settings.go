package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SettingImportMode is the key of the persisted import mode.
const SettingImportMode = "import_mode"

// GetSetting returns the value stored under key, or def when unset.
func (s *Store) GetSetting(ctx context.Context, key, def string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, mapSQLiteError(err))
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, mapSQLiteError(err))
	}
	return nil
}

// EnsureSetting stores value under key only if the key is not already set.
func (s *Store) EnsureSetting(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING`,
		key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("seed setting %s: %w", key, mapSQLiteError(err))
	}
	return nil
}
