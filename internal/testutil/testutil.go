// Package testutil provides shared test helpers for setting up journals and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/tag/internal/index"
	"github.com/starford/tag/internal/storage"
)

// JournalName is the file name used by TestJournal.
const JournalName = "todo.txt"

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "tag-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestJournal creates a temporary journal directory with a storage.Provider.
// When content is non-empty it is written to JournalName.
func TestJournal(t *testing.T, content string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	if content != "" {
		if err := os.WriteFile(filepath.Join(dir, JournalName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, store
}

// ReadJournal returns the current content of JournalName in dir.
func ReadJournal(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, JournalName))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
