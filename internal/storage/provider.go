// Package storage reads and writes journal files.
package storage

// Provider is the interface for journal file operations.
type Provider interface {
	// Read returns the raw bytes of the file at path (relative to the root).
	// A missing file yields an error matching os.ErrNotExist.
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path (relative to the root).
	Write(path string, content []byte) error
}
