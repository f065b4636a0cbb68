package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDSN builds the connection string for a database file. Every
// transaction takes the write lock up front so concurrent postings queue on
// busy_timeout instead of failing on lock upgrade.
func SQLiteDSN(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", "10000")
	params.Set("_txlock", "immediate")
	return "file:" + path + "?" + params.Encode()
}

// OpenSQLite opens the database file at path and verifies the connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	slog.Info("Opened SQLite database", slog.String("path", path))
	return db, nil
}

// CloseSQLite closes the SQLite database handle.
func CloseSQLite(db *sql.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			slog.Error("Error closing SQLite database", slog.String("error", err.Error()))
			return
		}
		slog.Info("SQLite database closed")
	}
}
