package cardex

import (
	"html"
	"strings"
)

// CleanText normalizes raw HTML-escaped text into plain text: entities
// are decoded, runs of whitespace (including non-breaking spaces) collapse
// to single spaces, and leading/trailing whitespace is trimmed. Total over
// all inputs; empty input returns the empty string.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	decoded := html.UnescapeString(s)
	// Fields splits on any Unicode whitespace, which covers the U+00A0
	// produced by decoding &nbsp;.
	return strings.Join(strings.Fields(decoded), " ")
}
