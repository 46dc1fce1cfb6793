// Package bluemonday sanitizes Word HTML exports before card extraction.
package bluemonday

import (
	"github.com/evidlab/cardex"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements cardex.Sanitizer at compile time.
var _ cardex.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips scripts, styles, and mso markup from exported HTML
// while keeping the structural and formatting tags the card parser reads:
// headings, paragraphs, underline/emphasis/strong/mark, the tag and cite
// classes, and background-color span styles.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the card-extraction policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "p", "div", "br", "li", "ul", "ol",
		"u", "em", "i", "strong", "b", "mark", "span",
	)
	p.AllowAttrs("class").OnElements("h1", "h2", "h3", "p")
	p.AllowStyles("background-color").OnElements("span")
	return &Sanitizer{policy: p}
}

// Sanitize returns the HTML with everything outside the policy removed.
// Text content of dropped elements is preserved.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
