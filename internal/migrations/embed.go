// Package migrations embeds the schema migrations and applies them with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// goose keeps its configuration in package globals.
var mu sync.Mutex

// Up applies all pending migrations to db.
func Up(db *sql.DB, logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = slog.Default()
	}

	goose.SetBaseFS(files)
	goose.SetLogger(&gooseLogger{log: logger.With("component", "migrations")})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB) (int64, error) {
	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(files)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("set migration dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}

// gooseLogger adapts slog to goose.Logger.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Fatal(v ...any) {
	l.log.Error(fmt.Sprint(v...))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Print(v ...any) {
	l.log.Debug(fmt.Sprint(v...))
}

func (l *gooseLogger) Println(v ...any) {
	l.log.Debug(fmt.Sprint(v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
