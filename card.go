package cardex

import (
	"context"
	"time"
)

// SpanType classifies the formatting intent of a span.
type SpanType string

// Span types. Source markers em/i/emphasis and strong/b both map to
// SpanEmphasis; mark and background-color spans map to SpanHighlight.
const (
	SpanUnderline SpanType = "underline"
	SpanEmphasis  SpanType = "emphasis"
	SpanHighlight SpanType = "highlight"
)

// Span is a contiguous run of card body text flagged with a formatting
// intent. Positions are byte offsets into the card's BodyText, with
// EndPosition exclusive, so EndPosition-StartPosition == len(Text).
type Span struct {
	Type          SpanType `json:"type"`
	Text          string   `json:"text"`
	StartPosition int      `json:"startPosition"`
	EndPosition   int      `json:"endPosition"`

	// Priority is 1 (most important) through 5. Zero means unscored;
	// the synthesizer scores unscored spans before emitting them.
	Priority int `json:"priority,omitempty"`
}

// Validation thresholds for cards. Shorter tags and bodies are splitter
// noise, not evidence.
const (
	MinTagLen  = 3
	MinBodyLen = 21
)

// Card is one self-contained unit of argumentative evidence extracted
// from a document block. Cards are immutable once returned by an
// extractor.
type Card struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`

	// Tag is the short heading label identifying the argument.
	Tag string `json:"tag"`

	// Cite is the attribution line (author/year). May be empty when the
	// card carries formatted spans instead.
	Cite string `json:"cite"`

	// BodyText is the cleaned plain-text body.
	BodyText string `json:"bodyText"`

	// FormattedElements is ordered by StartPosition ascending.
	FormattedElements []Span `json:"formattedElements"`

	// RawHTML is the original block the card was parsed from.
	RawHTML string `json:"rawHtml"`

	// Position is the card's index within its source document.
	Position int `json:"position"`

	ExtractedAt time.Time `json:"extractedAt"`
}

// IsValid reports whether the card is worth keeping. Invalid cards are
// filtered, not reported as errors: extraction from loosely structured
// documents is best-effort by design.
func (c *Card) IsValid() bool {
	if c == nil {
		return false
	}
	if len(c.Tag) < MinTagLen {
		return false
	}
	if len(c.BodyText) < MinBodyLen {
		return false
	}
	return c.Cite != "" || len(c.FormattedElements) > 0
}

// Validate returns an error if the card cannot be persisted.
func (c *Card) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "card document ID required")
	}
	if c.Tag == "" {
		return Errorf(EINVALID, "card tag required")
	}
	if c.BodyText == "" {
		return Errorf(EINVALID, "card body text required")
	}
	return nil
}

// SpansOfType returns the card's spans of the given type, preserving
// their start-position order.
func (c *Card) SpansOfType(t SpanType) []Span {
	var out []Span
	for _, sp := range c.FormattedElements {
		if sp.Type == t {
			out = append(out, sp)
		}
	}
	return out
}

// CardService represents a service for managing extracted cards.
type CardService interface {
	// CreateCards persists a batch of cards.
	CreateCards(ctx context.Context, cards []*Card) error

	// FindCardByID retrieves a card by ID.
	// Returns ENOTFOUND if the card does not exist.
	FindCardByID(ctx context.Context, id string) (*Card, error)

	// FindCards retrieves cards matching the filter, ordered by document
	// position ascending.
	FindCards(ctx context.Context, filter CardFilter) ([]*Card, error)

	// DeleteCardsByDocument removes all cards for a document.
	DeleteCardsByDocument(ctx context.Context, documentID string) error
}

// CardFilter represents a filter for FindCards.
type CardFilter struct {
	ID         *string `json:"id"`
	DocumentID *string `json:"documentId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
