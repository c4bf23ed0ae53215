package database

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cliparr.db")

	db, err := Open(Options{Path: path}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var mode string
	require.NoError(t, db.Get(&mode, `PRAGMA journal_mode`))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.Get(&fk, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, fk)
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(Options{Path: MemoryPath}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM shows`))
	assert.Zero(t, n)
}

func TestOpen_LogQueries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, err := Open(Options{Path: MemoryPath, LogQueries: true}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO settings (key, value) VALUES ('probe', 'x')`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "component=sql")
}

func TestWrapTx_RollsBackOnError(t *testing.T) {
	db, err := Open(Options{Path: MemoryPath}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("boom")
	err = WrapTx(context.Background(), db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES ('a', '1')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM settings`))
	assert.Zero(t, n)
}

func TestInExec(t *testing.T) {
	db, err := Open(Options{Path: MemoryPath}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, k := range []string{"a", "b", "c"} {
		_, err := db.Exec(`INSERT INTO settings (key, value) VALUES (?, 'v')`, k)
		require.NoError(t, err)
	}

	err = WrapTx(context.Background(), db, func(tx *sqlx.Tx) error {
		res, err := InExec(context.Background(), tx, `DELETE FROM settings WHERE key IN (?)`, []string{"a", "c"})
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		assert.Equal(t, int64(2), n)
		return nil
	})
	require.NoError(t, err)

	var keys []string
	require.NoError(t, db.Select(&keys, `SELECT key FROM settings`))
	assert.Equal(t, []string{"b"}, keys)
}
