package mock

import "github.com/evidlab/cardex"

var _ cardex.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of cardex.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
