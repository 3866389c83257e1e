package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/tag/internal/checksum"
	"github.com/starford/tag/internal/journal"
	"github.com/starford/tag/internal/models"
)

const checksumKey = "checksum"

// Rebuild replaces every indexed day and entry with the content of data
// and records its checksum, all within one transaction.
func (db *DB) Rebuild(data []byte) error {
	days := journal.Days(string(data))

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("index: clear entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM days`); err != nil {
		return fmt.Errorf("index: clear days: %w", err)
	}
	if err := ftsReset(tx); err != nil {
		return err
	}

	dayStmt, err := tx.Prepare(`INSERT INTO days (position, date, line) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare day insert: %w", err)
	}
	defer dayStmt.Close()
	entryStmt, err := tx.Prepare(`
		INSERT INTO entries (day_position, position, date, header, kind, tag, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("index: prepare entry insert: %w", err)
	}
	defer entryStmt.Close()

	for dp, d := range days {
		if _, err := dayStmt.Exec(dp, d.Date, d.Line); err != nil {
			return fmt.Errorf("index: insert day %s: %w", d.Date, err)
		}
		for ep, s := range d.Sections {
			if _, err := entryStmt.Exec(dp, ep, d.Date, s.Header, string(s.Kind), s.Tag, s.Body); err != nil {
				return fmt.Errorf("index: insert entry %q: %w", s.Header, err)
			}
			if err := ftsInsert(tx, d.Date, s.Header, string(s.Kind), s.Tag, s.Body); err != nil {
				return err
			}
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, checksumKey, checksum.Sum(data))
	if err != nil {
		return fmt.Errorf("index: store checksum: %w", err)
	}

	return tx.Commit()
}

// Checksum returns the checksum of the last indexed journal, or "" if nothing was indexed yet.
func (db *DB) Checksum() (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, checksumKey).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: checksum: %w", err)
	}
	return cs, nil
}

// ListDays returns indexed days newest first with their entry counts, and the total number of days.
func (db *DB) ListDays(limit, offset int) ([]models.DaySummary, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM days`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count days: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT d.position, d.date, d.line, count(e.position)
		FROM days d
		LEFT JOIN entries e ON e.day_position = d.position
		GROUP BY d.position
		ORDER BY d.position
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list days: %w", err)
	}
	defer rows.Close()

	var out []models.DaySummary
	for rows.Next() {
		var d models.DaySummary
		if err := rows.Scan(&d.Position, &d.Date, &d.Line, &d.Entries); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// Entries returns the sub-sections of the first indexed day for date.
func (db *DB) Entries(date string) ([]models.Entry, error) {
	rows, err := db.conn.Query(`
		SELECT date, position, header, kind, tag, body
		FROM entries
		WHERE day_position = (SELECT min(position) FROM days WHERE date = ?)
		ORDER BY position
	`, date)
	if err != nil {
		return nil, fmt.Errorf("index: entries: %w", err)
	}
	defer rows.Close()

	var out []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.Date, &e.Position, &e.Header, &e.Kind, &e.Tag, &e.Body); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Tags returns every tag used by a "#tag" sub-section with its count, most used first.
func (db *DB) Tags() ([]models.TagCount, error) {
	rows, err := db.conn.Query(`
		SELECT tag, count(*) AS n
		FROM entries
		WHERE kind = ? AND tag != ''
		GROUP BY tag
		ORDER BY n DESC, tag
	`, string(journal.KindTag))
	if err != nil {
		return nil, fmt.Errorf("index: tags: %w", err)
	}
	defer rows.Close()

	var out []models.TagCount
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
