// Package database opens the cliparr SQLite database and applies migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/vmunix/cliparr/internal/migrations"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options configures Open.
type Options struct {
	Path       string
	LogQueries bool
}

// Open opens (creating if needed) the database at opts.Path with WAL,
// foreign keys and a busy timeout, then applies pending migrations.
func Open(opts Options, logger *slog.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := dataSourceName(opts.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if opts.LogQueries {
		db = sqldblogger.OpenDriver(dsn, db.Driver(), &queryLogger{log: logger.With("component", "sql")},
			sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
		)
	}

	if opts.Path == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := migrations.Up(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqlx.NewDb(db, "sqlite3"), nil
}

func dataSourceName(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	if path != MemoryPath {
		q.Add("_pragma", "journal_mode(WAL)")
		return "file:" + path + "?" + q.Encode()
	}
	return path + "?" + q.Encode()
}

// WrapTx runs f inside a transaction, rolling back if f returns an error
// and committing otherwise.
func WrapTx(ctx context.Context, db *sqlx.DB, f func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := f(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InExec expands a slice argument into an IN (...) placeholder list and
// executes the resulting statement.
func InExec(ctx context.Context, tx sqlx.ExtContext, query string, args ...any) (sql.Result, error) {
	q, a, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("expand query: %w", err)
	}
	return tx.ExecContext(ctx, tx.Rebind(q), a...)
}

// queryLogger adapts slog to sqldblogger.Logger.
type queryLogger struct {
	log *slog.Logger
}

func (l *queryLogger) Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]any) {
	attrs := make([]any, 0, len(data)*2)
	for k, v := range data {
		attrs = append(attrs, k, v)
	}
	if level == sqldblogger.LevelError {
		l.log.ErrorContext(ctx, msg, attrs...)
		return
	}
	l.log.DebugContext(ctx, msg, attrs...)
}
