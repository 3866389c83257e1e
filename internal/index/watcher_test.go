package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/tag/internal/storage"
)

const journalName = "todo.txt"

// watcherTestEnv sets up a journal dir, storage, and DB for watcher tests.
func watcherTestEnv(t *testing.T) (string, *storage.FS, *DB) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store, testDB(t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(kind, path string) {
	r.mu.Lock()
	r.events = append(r.events, kind+":"+path)
	r.mu.Unlock()
}

func (r *recorder) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

func TestWatcher_WriteIndexed(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go Watch(ctx, db, store, dir, journalName, quietLogger(), rec.record)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(dir, journalName), []byte(sample), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		days, _, _ := db.ListDays(10, 0)
		return len(days) == 2
	}, "journal not indexed by watcher")
	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("updated:" + journalName)
	}, "expected updated callback")
}

func TestWatcher_AtomicReplaceIndexed(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	if err := store.Write(journalName, []byte("2026-01-31\n==========\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := Sync(db, store, journalName, quietLogger()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, db, store, dir, journalName, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	if err := store.Write(journalName, []byte(sample)); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		entries, _ := db.Entries("2026-02-02")
		return len(entries) == 3
	}, "rename-replaced journal not reindexed")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go Watch(ctx, db, store, dir, journalName, quietLogger(), rec.record)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte(sample), 0o644)
	time.Sleep(600 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 0 {
		t.Errorf("unexpected events: %v", rec.events)
	}
}

func TestWatcher_DeleteEmptiesIndex(t *testing.T) {
	dir, store, db := watcherTestEnv(t)
	_ = os.WriteFile(filepath.Join(dir, journalName), []byte(sample), 0o644)
	if _, err := Sync(db, store, journalName, quietLogger()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{}
	go Watch(ctx, db, store, dir, journalName, quietLogger(), rec.record)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(filepath.Join(dir, journalName))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		_, total, _ := db.ListDays(10, 0)
		return total == 0
	}, "deleted journal still in index")
	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("deleted:" + journalName)
	}, "expected deleted callback")
}
