// Package apperr holds the sentinel errors shared by the journal surfaces.
package apperr

import "errors"

var (
	// ErrNotFound means the requested day section does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the journal changed since the caller's checksum.
	ErrConflict = errors.New("conflict")
	// ErrEmptyEntry means a done or note edit came back blank; nothing is written.
	ErrEmptyEntry = errors.New("empty entry")
	// ErrInvalidTag means a note tag spans more than one line.
	ErrInvalidTag = errors.New("invalid tag")
)
