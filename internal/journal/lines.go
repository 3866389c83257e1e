package journal

import "strings"

// document is the ephemeral line index built once per operation.
// It is never cached between calls.
type document struct {
	lines []string
	// trailingNewline records whether the source text ended with "\n" so
	// that reassembly does not add or drop the final terminator.
	trailingNewline bool
}

func newDocument(text string) *document {
	return &document{
		lines:           splitLines(text),
		trailingNewline: strings.HasSuffix(text, "\n"),
	}
}

// String reassembles the document into text.
func (d *document) String() string {
	out := strings.Join(d.lines, "\n")
	if d.trailingNewline && len(d.lines) > 0 {
		out += "\n"
	}
	return out
}

// splice replaces lines[from:to] with repl.
func (d *document) splice(from, to int, repl []string) {
	out := make([]string, 0, len(d.lines)-(to-from)+len(repl))
	out = append(out, d.lines[:from]...)
	out = append(out, repl...)
	out = append(out, d.lines[to:]...)
	d.lines = out
}

// splitLines splits text on "\n". A final terminator does not produce an
// empty trailing line and a "\r" before a terminator is dropped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
