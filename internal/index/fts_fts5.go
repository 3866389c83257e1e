//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/tag/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			date UNINDEXED,
			kind UNINDEXED,
			header,
			tag,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func dropFTS(conn *sql.DB) error {
	_, err := conn.Exec(`DROP TABLE IF EXISTS entries_fts`)
	return err
}

func ftsReset(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM entries_fts`); err != nil {
		return fmt.Errorf("index: clear fts: %w", err)
	}
	return nil
}

func ftsInsert(tx *sql.Tx, date, header, kind, tag, body string) error {
	_, err := tx.Exec(`INSERT INTO entries_fts (date, kind, header, tag, body) VALUES (?, ?, ?, ?, ?)`,
		date, kind, header, tag, body)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// matchQuery turns free text into an FTS5 query of quoted terms, so that
// input like "go-homedir" or "노트:" is not parsed as FTS5 syntax.
func matchQuery(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, " ")
}

// Search performs an FTS5 full-text search and returns matching entries with snippets.
// Every whitespace-separated term must match.
func (db *DB) Search(query string, limit int) ([]models.SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	match := matchQuery(query)
	if match == "" {
		return nil, nil
	}
	rows, err := db.conn.Query(`
		SELECT date,
		       header,
		       kind,
		       snippet(entries_fts, 4, '<b>', '</b>', '...', 64)
		FROM entries_fts
		WHERE entries_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []models.SearchHit
	for rows.Next() {
		var h models.SearchHit
		if err := rows.Scan(&h.Date, &h.Header, &h.Kind, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
