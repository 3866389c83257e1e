package index

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/tag/internal/checksum"
	"github.com/starford/tag/internal/storage"
)

// Sync brings the index up to date with the journal file name in store.
// The index is rebuilt only when the file's checksum differs from the one
// recorded by the last rebuild. A missing file indexes as an empty journal.
// It reports whether a rebuild happened.
func Sync(db *DB, store storage.Provider, name string, logger *slog.Logger) (bool, error) {
	data, err := store.Read(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
		data = nil
	}

	stored, err := db.Checksum()
	if err != nil {
		return false, err
	}
	cs := checksum.Sum(data)
	if stored == cs {
		logger.Debug("sync: up to date", slog.String("path", name))
		return false, nil
	}

	if err := db.Rebuild(data); err != nil {
		return false, fmt.Errorf("index: rebuild: %w", err)
	}
	logger.Debug("sync: indexed", slog.String("path", name), slog.String("checksum", cs))
	return true, nil
}
