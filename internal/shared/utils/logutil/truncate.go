// Package logutil holds helpers for keeping log fields short and free of secrets.
package logutil

import "unicode/utf8"

const ellipsis = "..."

// Truncate shortens s to at most maxRunes characters, appending "..." when
// anything was cut. Multi-byte characters are never split.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ellipsis
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}

// TokenPrefix keeps only the first few characters of a secret token so log
// lines can be correlated without exposing the token itself.
func TokenPrefix(token string) string {
	if token == "" {
		return ""
	}
	return Truncate(token, 6)
}
