//go:build sqlite_fts5

package index

import (
	"strings"
	"testing"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries_fts`).Scan(&count); err != nil {
		t.Fatalf("entries_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild([]byte(sample)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	hits, err := db.Search("fsnotify", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 result, got %d", len(hits))
	}
	if hits[0].Date != "2026-02-01" {
		t.Errorf("date = %q", hits[0].Date)
	}
	if !strings.Contains(hits[0].Snippet, "<b>fsnotify</b>") {
		t.Errorf("snippet = %q", hits[0].Snippet)
	}
}

func TestFTS5_RebuildClearsOldRows(t *testing.T) {
	db := testDB(t)
	_ = db.Rebuild([]byte(sample))
	_ = db.Rebuild([]byte("2026-03-01\n==========\n\nTODO\n- only\n"))
	if hits, _ := db.Search("fsnotify", 10); len(hits) != 0 {
		t.Errorf("stale fts rows: %+v", hits)
	}
}

func TestFTS5_QueryIsNotSyntax(t *testing.T) {
	db := testDB(t)
	_ = db.Rebuild([]byte("2026-02-01\n==========\n\n#TIL\n- go-homedir expands paths\n"))

	for _, q := range []string{"go-homedir", `"unbalanced`, "paths AND", "노트:"} {
		if _, err := db.Search(q, 10); err != nil {
			t.Errorf("Search(%q): %v", q, err)
		}
	}
	if hits, _ := db.Search("go-homedir", 10); len(hits) != 1 {
		t.Errorf("hyphenated hits = %+v", hits)
	}
	if got := matchQuery(` a  "b" `); got != `"a" """b"""` {
		t.Errorf("matchQuery = %q", got)
	}
}
