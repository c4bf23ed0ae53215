// Package library stores the local show catalog: shows, seasons, episodes,
// episode files and settings.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/vmunix/cliparr/internal/database"
)

// querier abstracts *sqlx.DB and *sqlx.Tx for shared query logic.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Store provides access to catalog data.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new library store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// WithTx runs f in a transaction. The transaction commits when f returns nil.
func (s *Store) WithTx(ctx context.Context, f func(*Tx) error) error {
	return database.WrapTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return f(&Tx{tx: tx})
	})
}

// Tx wraps a database transaction with the same methods as Store.
type Tx struct {
	tx *sqlx.Tx
}

// mapSQLiteError converts SQLite errors to package sentinel errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}
