// Package synth converts validated debate cards into fine-tuning training
// examples. Each card yields up to three variants: full formatting,
// partial formatting over a truncated body, and a context-aware variant
// with inferred debate metadata.
package synth

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/evidlab/cardex"
)

// partialMinBodyLen gates the partial variant: bodies this short don't
// leave enough text after truncation to be a useful example.
const partialMinBodyLen = 101

// partialBodyPercent is the share of the body kept for the partial
// variant. Truncation is by byte count, rounded down to a rune boundary,
// not by word boundary.
const partialBodyPercent = 60

// Ensure Synthesizer implements cardex.ExampleSynthesizer at compile time.
var _ cardex.ExampleSynthesizer = (*Synthesizer)(nil)

// Synthesizer builds training examples from cards.
type Synthesizer struct {
	// Scorer supplies priorities for spans the extractor left unscored.
	Scorer cardex.PriorityConfig

	// Source labels example metadata (e.g. a document name).
	Source string

	// Now returns the metadata timestamp; injectable for tests.
	Now func() time.Time
}

// NewSynthesizer creates a Synthesizer with the given scorer config.
func NewSynthesizer(scorer cardex.PriorityConfig) *Synthesizer {
	return &Synthesizer{
		Scorer: scorer,
		Source: "cardex",
		Now:    time.Now,
	}
}

// CardID computes the deterministic content identity of a card: a 64-bit
// xxHash over the tag, cite, and the first 50 bytes of the body, encoded
// as 16 hex characters. Collisions are possible and unchecked; the ID is
// advisory metadata, not a primary key.
func CardID(card *cardex.Card) string {
	body := card.BodyText
	if len(body) > 50 {
		body = body[:50]
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(card.Tag+card.Cite+body))
}

// Synthesize produces training examples for each card. Synthesis failures
// on one card skip that card's examples and the batch continues; the
// result order follows the input card order.
func (s *Synthesizer) Synthesize(cards []*cardex.Card) []*cardex.TrainingExample {
	var out []*cardex.TrainingExample
	for _, card := range cards {
		examples, err := s.examplesFor(card)
		if err != nil {
			continue
		}
		out = append(out, examples...)
	}
	return out
}

func (s *Synthesizer) examplesFor(card *cardex.Card) ([]*cardex.TrainingExample, error) {
	scored := s.scoreSpans(card.FormattedElements)
	var examples []*cardex.TrainingExample

	if card.BodyText != "" && len(scored) > 0 {
		full, err := s.buildExample(card, cardex.FullFormatting, card.BodyText, scored, "")
		if err != nil {
			return nil, err
		}
		examples = append(examples, full)
	}

	if len(card.BodyText) >= partialMinBodyLen {
		cut := len(card.BodyText) * partialBodyPercent / 100
		for cut > 0 && !utf8.RuneStart(card.BodyText[cut]) {
			cut--
		}
		trunc := card.BodyText[:cut]
		var surviving []cardex.Span
		for _, sp := range scored {
			if strings.Contains(trunc, sp.Text) {
				surviving = append(surviving, sp)
			}
		}
		partial, err := s.buildExample(card, cardex.PartialFormatting, trunc, surviving, "")
		if err != nil {
			return nil, err
		}
		examples = append(examples, partial)
	}

	dc := cardex.InferContext(card.Tag + " " + card.Cite + " " + card.BodyText)
	sentence := contextSentence(dc)
	contextual, err := s.buildExample(card, cardex.ContextAwareFormatting, card.BodyText, scored, sentence)
	if err != nil {
		return nil, err
	}
	examples = append(examples, contextual)

	return examples, nil
}

// scoreSpans fills in priorities for spans the extractor left at zero.
// Spans that already carry a priority keep it.
func (s *Synthesizer) scoreSpans(spans []cardex.Span) []cardex.Span {
	scored := make([]cardex.Span, len(spans))
	for i, sp := range spans {
		if sp.Priority == 0 {
			sp.Priority = s.Scorer.Score(sp.Text)
		}
		scored[i] = sp
	}
	return scored
}

func (s *Synthesizer) buildExample(card *cardex.Card, typ cardex.ExampleType, body string, spans []cardex.Span, contextSentence string) (*cardex.TrainingExample, error) {
	user := buildUserPrompt(card.Tag, card.Cite, body)
	reasoning := buildReasoning(spans)
	if contextSentence != "" {
		user += "\n" + contextSentence
		reasoning += " " + contextSentence
	}

	assistant, err := buildResponse(spans, reasoning)
	if err != nil {
		return nil, err
	}

	return &cardex.TrainingExample{
		Messages: []cardex.Message{
			{Role: cardex.RoleSystem, Content: systemPrompt},
			{Role: cardex.RoleUser, Content: user},
			{Role: cardex.RoleAssistant, Content: assistant},
		},
		Metadata: cardex.ExampleMetadata{
			CardID:    CardID(card),
			Tag:       card.Tag,
			Source:    s.Source,
			CreatedAt: s.Now().UTC(),
			Type:      typ,
		},
	}, nil
}
