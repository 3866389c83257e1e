// Package index provides a SQLite-backed search index over the journal with optional FTS5 full-text search.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS days (
	position INTEGER PRIMARY KEY,
	date     TEXT NOT NULL,
	line     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	day_position INTEGER NOT NULL REFERENCES days(position) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	date         TEXT NOT NULL,
	header       TEXT NOT NULL,
	kind         TEXT NOT NULL,
	tag          TEXT NOT NULL DEFAULT '',
	body         TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (day_position, position)
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_days_date ON days(date);
CREATE INDEX IF NOT EXISTS idx_entries_tag ON entries(tag);
`

// schemaVersion is stored in PRAGMA user_version. The index only caches
// the journal, so an index written by another version is dropped and
// rebuilt by the next Sync instead of migrated.
const schemaVersion = 1

const dropSchemaSQL = `
DROP TABLE IF EXISTS entries;
DROP TABLE IF EXISTS days;
DROP TABLE IF EXISTS meta;
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if err := resetStale(conn); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func resetStale(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("index: read schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}
	if err := dropFTS(conn); err != nil {
		return fmt.Errorf("index: drop fts: %w", err)
	}
	if _, err := conn.Exec(dropSchemaSQL); err != nil {
		return fmt.Errorf("index: drop stale schema: %w", err)
	}
	if _, err := conn.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("index: set schema version: %w", err)
	}
	return nil
}
