package journal

import (
	"strings"
	"unicode"
)

var bulletMarkers = []string{"- ", ". ", "* "}

// FormatBullets rewrites list markers by nesting depth: lines indented by an
// even number of whitespace characters get "-", odd depths get ".". Lines
// that are not bullets pass through untouched.
func FormatBullets(text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = formatBullet(line)
	}
	return strings.Join(lines, "\n")
}

func formatBullet(line string) string {
	stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !hasBulletMarker(stripped) {
		return line
	}
	depth := len(line) - len(stripped)
	return line[:depth] + bulletFor(depth) + " " + stripped[2:]
}

func hasBulletMarker(s string) bool {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

func bulletFor(depth int) string {
	if depth%2 == 0 {
		return "-"
	}
	return "."
}
