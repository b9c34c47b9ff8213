// Package sqlite implements the Record Store on top of SQLite.
//
// WHY SQLITE FOR AN IN-MEMORY APP?
// The default DSN is ":memory:", so the database lives and dies with the
// process exactly like the slice-backed store. What SQLite adds is a real
// query engine and constraint checking (a duplicate ID is rejected instead of
// silently stored twice). Pointing DB_PATH at a file works too, but nothing
// in the application relies on data surviving a restart.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite C code.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// DB wraps a sql.DB connection pool and implements repository.SnippetRepository.
type DB struct {
	conn *sql.DB
}

// New opens the database at dsn and creates the schema.
//
// ONE CONNECTION ONLY:
// Every new connection to ":memory:" gets its OWN empty database. If the pool
// opened a second connection, half the queries would see a different (empty)
// store. Capping the pool at one connection also serialises writes, which
// SQLite does anyway.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// sql.Open is lazy; Ping forces the first real connection so a bad path
	// fails here rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database. For ":memory:" this discards every snippet.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the snippets table.
//
// seq is the insertion sequence: AUTOINCREMENT never reuses a value, so
// ORDER BY seq lists snippets in the order they were added even after
// deletes. The public identifier is id, kept UNIQUE.
//
// Tags are an ordered list with duplicates allowed, stored as a JSON array.
// A join table would need its own position column to keep that order, and
// nothing queries tags in SQL.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS snippets (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			title       TEXT NOT NULL,
			language    TEXT NOT NULL DEFAULT '',
			code        TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			tags        TEXT NOT NULL DEFAULT '[]',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snippets_language ON snippets(language);
	`)
	if err != nil {
		return fmt.Errorf("creating snippets table: %w", err)
	}
	return nil
}
