package index

import "github.com/starford/tag/internal/models"

// JournalIndex defines the read cache built from the journal file.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type JournalIndex interface {
	Rebuild(data []byte) error
	Checksum() (string, error)
	ListDays(limit, offset int) ([]models.DaySummary, int, error)
	Entries(date string) ([]models.Entry, error)
	Search(query string, limit int) ([]models.SearchHit, error)
	Tags() ([]models.TagCount, error)
	Close() error
}

// Verify *DB satisfies JournalIndex at compile time.
var _ JournalIndex = (*DB)(nil)
