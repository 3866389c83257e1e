package journal

import "strings"

// Section is one sub-section of a day as seen by Days.
type Section struct {
	Header string     `json:"header"`
	Kind   HeaderKind `json:"kind"`
	Tag    string     `json:"tag,omitempty"`
	Body   string     `json:"body"`
	// Line is the index of the header line in the journal.
	Line int `json:"line"`
}

// Day is one day section as seen by Days.
type Day struct {
	Date     string    `json:"date"`
	Line     int       `json:"line"`
	End      int       `json:"end"`
	Sections []Section `json:"sections"`
}

// Days walks every day section in file order (newest first for a journal
// maintained by this package) and lists its sub-sections. The result is a
// snapshot of text; it is not kept anywhere.
func Days(text string) []Day {
	d := newDocument(text)
	var out []Day
	for i := 0; i < len(d.lines); i++ {
		if !IsDateLine(d.lines[i]) {
			continue
		}
		end := d.dayEnd(i)
		out = append(out, Day{
			Date:     d.lines[i],
			Line:     i,
			End:      end,
			Sections: d.sections(i, end),
		})
		i = end - 1
	}
	return out
}

// FindDay returns the first day section for date with its sub-sections.
func FindDay(text, date string) (Day, bool) {
	d := newDocument(text)
	start, ok := d.dayStart(date)
	if !ok {
		return Day{}, false
	}
	end := d.dayEnd(start)
	return Day{Date: date, Line: start, End: end, Sections: d.sections(start, end)}, true
}

// DayText returns the raw lines of the first day section for date.
func DayText(text, date string) (string, bool) {
	d := newDocument(text)
	start, ok := d.dayStart(date)
	if !ok {
		return "", false
	}
	return strings.Join(d.lines[start:d.dayEnd(start)], "\n"), true
}

func (d *document) sections(start, end int) []Section {
	var out []Section
	for i := start + 2; i < end; i++ {
		trimmed := strings.TrimSpace(d.lines[i])
		kind := ClassifyHeader(trimmed)
		if kind == KindNone {
			continue
		}
		sp := Span{Header: i, End: d.sectionEnd(i, end)}
		s := Section{
			Header: d.lines[i],
			Kind:   kind,
			Body:   strings.Join(d.lines[i+1:d.bodyEnd(sp)], "\n"),
			Line:   i,
		}
		if kind == KindTag {
			s.Tag = strings.TrimPrefix(trimmed, TagPrefix)
		}
		out = append(out, s)
		i = sp.End - 1
	}
	return out
}
