//go:build !sqlite_fts5

package index

import (
	"strings"
	"testing"
)

func TestSearch_Like(t *testing.T) {
	db := testDB(t)
	_ = db.Rebuild([]byte(sample))

	hits, err := db.Search("fsnotify", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Date != "2026-02-01" || hits[0].Header != "#TIL" {
		t.Errorf("hits = %+v", hits)
	}

	hits, _ = db.Search("TIL", 10)
	if len(hits) != 2 || hits[0].Date != "2026-02-02" {
		t.Errorf("tag hits = %+v", hits)
	}

	if hits, _ := db.Search("zzzunmatched", 10); len(hits) != 0 {
		t.Errorf("unexpected hits = %+v", hits)
	}
}

func TestSearch_LikeWildcardsAreLiteral(t *testing.T) {
	db := testDB(t)
	_ = db.Rebuild([]byte("2026-02-01\n==========\n\n#TIL\n- 100% done\n\nTODO\n- a_b\n"))

	hits, err := db.Search("%", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Header != "#TIL" {
		t.Errorf("%% hits = %+v", hits)
	}
	if hits, _ := db.Search("_", 10); len(hits) != 1 || hits[0].Header != "TODO" {
		t.Errorf("_ hits = %+v", hits)
	}
	if hits, _ := db.Search("   ", 10); len(hits) != 0 {
		t.Errorf("blank query hits = %+v", hits)
	}
}

func TestSnippet(t *testing.T) {
	body := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 100)
	got := snippet(body, "NEEDLE", 20)
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") || !strings.Contains(got, "needle") {
		t.Errorf("snippet = %q", got)
	}
	if got := snippet("short body", "x", 20); got != "short body" {
		t.Errorf("short snippet = %q", got)
	}
	if got := snippet(strings.Repeat("가", 30), "나", 10); got != strings.Repeat("가", 10)+"..." {
		t.Errorf("no match snippet = %q", got)
	}
}
