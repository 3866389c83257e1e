package journal

import "strings"

// ExtractSection returns the body of the sub-section headed by header in the
// day section for date. An empty body yields "" and true; false means the
// sub-section does not exist.
//
// Trailing blank lines of the span separate the body from the next header and
// are not part of the body.
func ExtractSection(text, date, header string) (string, bool) {
	d := newDocument(text)
	sp, ok := d.section(date, header)
	if !ok {
		return "", false
	}
	return strings.Join(d.lines[sp.Header+1:d.bodyEnd(sp)], "\n"), true
}

// ReplaceSection swaps the body of the sub-section headed by header for body.
// Lines up to and including the header and lines from the end of the old body
// on are kept verbatim. Trailing blank lines of body are dropped, since the
// existing separator stays in place. Text is returned unchanged when the
// sub-section does not exist.
func ReplaceSection(text, date, header, body string) string {
	d := newDocument(text)
	sp, ok := d.section(date, header)
	if !ok {
		return text
	}
	d.splice(sp.Header+1, d.bodyEnd(sp), trimTrailingBlank(splitLines(body)))
	return d.String()
}

// InsertSection appends a sub-section at the end of the day section for date:
// a blank line, the header, then the body lines. Existing sub-sections with
// the same header are left alone, so repeated calls add duplicates. Text is
// returned unchanged when the day section does not exist.
func InsertSection(text, date, header, body string) string {
	d := newDocument(text)
	start, ok := d.dayStart(date)
	if !ok {
		return text
	}
	end := d.dayEnd(start)
	block := append([]string{"", header}, splitLines(body)...)
	d.splice(end, end, block)
	return d.String()
}

// CreateTodaySection prepends a new day section for date above text, after
// stripping the leading blank lines of text. It does not check whether the
// section already exists; see EnsureTodaySection.
func CreateTodaySection(text, date string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(date)
	b.WriteString("\n")
	b.WriteString(Underline)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimLeft(text, "\n"))
	return b.String()
}

// EnsureTodaySection returns text unchanged when a day section for date
// exists, and CreateTodaySection(text, date) otherwise.
func EnsureTodaySection(text, date string) string {
	if _, ok := FindDaySectionStart(text, date); ok {
		return text
	}
	return CreateTodaySection(text, date)
}
