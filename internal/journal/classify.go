// Package journal implements the line-oriented section engine of the work
// journal: classifying lines, locating day sections and sub-sections, and
// splicing text in and out of them.
//
// Nothing here performs I/O or reads the clock. Every function takes the full
// journal text and, where needed, today's date as a preformatted string.
// Missing structure is reported as "not found" or unchanged text, never as an
// error.
package journal

import "strings"

// Structural literals of the journal format.
const (
	// Underline follows every date line.
	Underline = "=========="
	// TodoHeader heads the day's TODO list.
	TodoHeader = "TODO"
	// NotePrefix marks an untagged note header.
	NotePrefix = "노트"
	// NoteHeader is the header used for notes without a tag.
	NoteHeader = NotePrefix + ":"
	// TagPrefix marks a tagged note header.
	TagPrefix = "#"
	// StampPrefix opens a timestamp header such as "[오전 09:05]".
	StampPrefix = "["
)

// HeaderKind classifies a sub-section header.
type HeaderKind string

// Header kinds.
const (
	KindNone HeaderKind = ""
	KindTodo HeaderKind = "todo"
	KindDone HeaderKind = "done"
	KindTag  HeaderKind = "tag"
	KindNote HeaderKind = "note"
)

// IsDateLine reports whether line marks the start of a day section.
//
// The check is structural: ten characters, dashes at positions 4 and 7, and
// four leading ASCII digits. Month and day digits are not validated, so
// "2025-99-99" is a date line.
func IsDateLine(line string) bool {
	if len(line) != 10 {
		return false
	}
	r := []rune(line)
	if len(r) < 8 || r[4] != '-' || r[7] != '-' {
		return false
	}
	for _, c := range r[:4] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsHeaderLine reports whether the trimmed line starts a sub-section.
func IsHeaderLine(trimmed string) bool {
	return ClassifyHeader(trimmed) != KindNone
}

// ClassifyHeader returns the kind of header the trimmed line is, or KindNone.
func ClassifyHeader(trimmed string) HeaderKind {
	switch {
	case trimmed == TodoHeader:
		return KindTodo
	case strings.HasPrefix(trimmed, StampPrefix):
		return KindDone
	case strings.HasPrefix(trimmed, TagPrefix):
		return KindTag
	case strings.HasPrefix(trimmed, NotePrefix):
		return KindNote
	}
	return KindNone
}

// TagHeader returns the header for a note. An empty tag yields NoteHeader.
func TagHeader(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return NoteHeader
	}
	return TagPrefix + strings.TrimPrefix(tag, TagPrefix)
}
