// Package checksum identifies journal revisions for conditional reads and writes.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ETag quotes sum as a strong entity tag.
func ETag(sum string) string {
	return `"` + sum + `"`
}

// FromETag strips the weak prefix and quotes from an If-Match or
// If-None-Match value. A bare checksum is returned as is.
func FromETag(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "W/")
	return strings.Trim(v, `"`)
}

// Matches reports whether the precondition value v names sum. An empty
// value or "*" always matches.
func Matches(v, sum string) bool {
	v = FromETag(v)
	return v == "" || v == "*" || v == sum
}
