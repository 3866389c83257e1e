package journal

import "strings"

// Span locates a sub-section: Header is the index of its header line and End
// the exclusive index of the line that closes it.
type Span struct {
	Header int
	End    int
}

// FindDaySectionStart returns the index of the first line equal to date.
func FindDaySectionStart(text, date string) (int, bool) {
	return newDocument(text).dayStart(date)
}

// FindDaySectionEnd returns the index of the first date line after start, or
// the number of lines when start opens the last day section. A negative start
// scans from the first line.
func FindDaySectionEnd(text string, start int) int {
	return newDocument(text).dayEnd(start)
}

// FindSection locates the first sub-section headed exactly by header inside
// the day section for date. The date line and the underline are skipped.
func FindSection(text, date, header string) (Span, bool) {
	return newDocument(text).section(date, header)
}

func (d *document) dayStart(date string) (int, bool) {
	for i, line := range d.lines {
		if line == date {
			return i, true
		}
	}
	return 0, false
}

func (d *document) dayEnd(start int) int {
	if start < -1 {
		start = -1
	}
	for i := start + 1; i < len(d.lines); i++ {
		if IsDateLine(d.lines[i]) {
			return i
		}
	}
	return len(d.lines)
}

func (d *document) section(date, header string) (Span, bool) {
	start, ok := d.dayStart(date)
	if !ok {
		return Span{}, false
	}
	end := d.dayEnd(start)
	for i := start + 2; i < end; i++ {
		if d.lines[i] != header {
			continue
		}
		return Span{Header: i, End: d.sectionEnd(i, end)}, true
	}
	return Span{}, false
}

// sectionEnd returns the first header line in (header, limit), or limit.
func (d *document) sectionEnd(header, limit int) int {
	for j := header + 1; j < limit; j++ {
		if IsHeaderLine(strings.TrimSpace(d.lines[j])) {
			return j
		}
	}
	return limit
}

// bodyEnd drops the blank lines that separate a body from whatever follows.
func (d *document) bodyEnd(sp Span) int {
	end := sp.End
	for end > sp.Header+1 && isBlank(d.lines[end-1]) {
		end--
	}
	return end
}
