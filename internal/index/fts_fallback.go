//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/starford/tag/internal/models"
)

// snippetWidth is the number of runes kept around the first match.
const snippetWidth = 120

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses LIKE fallback on the entries table.
	return nil
}

func dropFTS(_ *sql.DB) error { return nil }

func ftsReset(_ *sql.Tx) error { return nil }

func ftsInsert(_ *sql.Tx, _, _, _, _, _ string) error {
	// Body is already stored in the entries table; nothing extra to do.
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
// The query is matched as one literal substring, case-insensitively for ASCII.
func (db *DB) Search(query string, limit int) ([]models.SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	like := "%" + likeEscaper.Replace(query) + "%"
	rows, err := db.conn.Query(`
		SELECT date, header, kind, body
		FROM entries
		WHERE header LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\' OR tag LIKE ? ESCAPE '\'
		ORDER BY day_position, position
		LIMIT ?
	`, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []models.SearchHit
	for rows.Next() {
		var h models.SearchHit
		var body string
		if err := rows.Scan(&h.Date, &h.Header, &h.Kind, &body); err != nil {
			return nil, err
		}
		h.Snippet = snippet(body, query, snippetWidth)
		out = append(out, h)
	}
	return out, rows.Err()
}

// snippet cuts up to width runes of body centred on the first
// case-insensitive occurrence of query, marking cut ends with "...".
func snippet(body, query string, width int) string {
	runes := []rune(body)
	if len(runes) <= width {
		return body
	}
	at := 0
	lower := strings.ToLower(body)
	if i := strings.Index(lower, strings.ToLower(query)); i >= 0 {
		at = utf8.RuneCountInString(lower[:i])
	}
	start := at - width/2
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
		start = end - width
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}
