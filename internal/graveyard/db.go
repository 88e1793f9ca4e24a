// Package graveyard remembers tmux sessions after they exit so they can be
// resurrected later.
package graveyard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
}

// Open connects to the SQLite database and creates it if it doesn't exist
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=2000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Hook invocations and the TUI share the file; one writer at a time.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Migrate creates the database schema
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS graves (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		tmux_key TEXT NOT NULL,
		dir TEXT NOT NULL,
		first_seen TIMESTAMP NOT NULL,
		last_seen TIMESTAMP NOT NULL,
		exited_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_graves_exited ON graves(exited_at);
	CREATE INDEX IF NOT EXISTS idx_graves_key ON graves(tmux_key);
	`

	_, err := db.conn.Exec(schema)
	return err
}
