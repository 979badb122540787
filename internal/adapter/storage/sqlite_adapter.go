package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteStatements = sqlStatements{
	schema: `
		CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
			k TEXT NOT NULL PRIMARY KEY,
			v BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	get: `SELECT v FROM ` + kvTable + ` WHERE k = ?`,
	upsert: `
		INSERT INTO ` + kvTable + ` (k, v) VALUES (?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP`,
	insertIfNew: `INSERT OR IGNORE INTO ` + kvTable + ` (k, v) VALUES (?, ?)`,
	delete:      `DELETE FROM ` + kvTable + ` WHERE k = ?`,
}

// SQLiteAdapter is the single-device store: one database file on local disk.
type SQLiteAdapter struct {
	sqlKV
}

// OpenSQLite creates the database file and its parent directory if needed.
func OpenSQLite(ctx context.Context, path string) (*SQLiteAdapter, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	adapter := &SQLiteAdapter{sqlKV{db: db, stmts: sqliteStatements}}
	if err := adapter.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return adapter, nil
}
