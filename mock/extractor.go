package mock

import "github.com/evidlab/cardex"

var _ cardex.CardExtractor = (*CardExtractor)(nil)

// CardExtractor is a mock implementation of cardex.CardExtractor.
type CardExtractor struct {
	ExtractCardsFn func(html string) ([]*cardex.Card, error)
}

func (e *CardExtractor) ExtractCards(html string) ([]*cardex.Card, error) {
	return e.ExtractCardsFn(html)
}
