package goquery

import (
	"github.com/evidlab/cardex"
	"golang.org/x/sync/errgroup"
)

// Ensure Extractor implements cardex.CardExtractor at compile time.
var _ cardex.CardExtractor = (*Extractor)(nil)

// Extractor extracts debate cards from HTML documents.
type Extractor struct {
	// Sanitizer, when set, normalizes the HTML before block splitting.
	Sanitizer cardex.Sanitizer

	// Concurrency bounds parallel block parsing. Values below 2 parse
	// serially. Blocks are independent and side-effect-free, and results
	// are assembled by block index, so output order always matches input
	// block order.
	Concurrency int
}

// NewExtractor creates an Extractor with serial parsing and no sanitizer.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractCards splits the document into heading-delimited blocks, parses
// each into a card, and returns the valid cards in block order. Blocks
// that fail to parse or produce invalid cards are dropped silently;
// best-effort extraction from loosely structured documents is the
// contract here, not strict validation.
func (e *Extractor) ExtractCards(htmlContent string) ([]*cardex.Card, error) {
	if e.Sanitizer != nil {
		htmlContent = e.Sanitizer.Sanitize(htmlContent)
	}

	blocks, err := SplitBlocks(htmlContent)
	if err != nil {
		return nil, err
	}

	parsed := make([]*cardex.Card, len(blocks))

	if e.Concurrency > 1 {
		g := new(errgroup.Group)
		g.SetLimit(e.Concurrency)
		for i, block := range blocks {
			g.Go(func() error {
				// Per-block parse failures drop the block, never the batch.
				if card, err := parseCard(block); err == nil {
					parsed[i] = card
				}
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, block := range blocks {
			if card, err := parseCard(block); err == nil {
				parsed[i] = card
			}
		}
	}

	var cards []*cardex.Card
	for _, card := range parsed {
		if !card.IsValid() {
			continue
		}
		card.Position = len(cards)
		cards = append(cards, card)
	}

	return cards, nil
}
