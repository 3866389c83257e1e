package index

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/tag/internal/storage"
)

const debounce = 200 * time.Millisecond

// EventCallback is called after a watcher-driven index change.
// kind is one of "updated", "deleted".
type EventCallback func(kind string, path string)

// Watch starts an fsnotify watcher on root, the directory holding the
// journal file name, and processes change events until ctx is cancelled.
// It calls cb (if non-nil) after each rebuild of the index.
//
// The directory is watched rather than the file because editors and
// storage.FS replace the file by rename. Bursts of events are coalesced
// into one Sync.
func Watch(ctx context.Context, db *DB, store storage.Provider, root, name string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root), slog.String("file", name))

	var syncTimer *time.Timer
	var syncCh <-chan time.Time

	scheduleSync := func() {
		if syncTimer == nil {
			syncTimer = time.NewTimer(debounce)
			syncCh = syncTimer.C
		} else {
			syncTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if syncTimer != nil {
				syncTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-syncCh:
			changed, syncErr := Sync(db, store, name, logger)
			if syncErr != nil {
				logger.Warn("watcher: sync failed", slog.String("path", name), slog.String("error", syncErr.Error()))
				continue
			}
			if !changed {
				continue
			}
			kind := "updated"
			if _, statErr := os.Stat(filepath.Join(root, name)); errors.Is(statErr, os.ErrNotExist) {
				kind = "deleted"
			}
			logger.Debug("watcher: indexed", slog.String("path", name), slog.String("op", kind))
			if cb != nil {
				cb(kind, name)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleSync()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
