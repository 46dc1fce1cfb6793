package synth_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/evidlab/cardex"
	"github.com/evidlab/cardex/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSynthesizer() *synth.Synthesizer {
	s := synth.NewSynthesizer(cardex.DefaultPriorityConfig())
	s.Now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func longCard() *cardex.Card {
	body := "Sea levels will rise dramatically over the coming decades and 50% of coastal cities are at risk of catastrophic flooding events."
	return &cardex.Card{
		Tag:      "Warming Impact",
		Cite:     "Smith 2020",
		BodyText: body,
		FormattedElements: []cardex.Span{
			{Type: cardex.SpanUnderline, Text: "Sea levels will rise dramatically", StartPosition: 0, EndPosition: 33},
			{Type: cardex.SpanHighlight, Text: "50% of coastal cities", StartPosition: 62, EndPosition: 83},
		},
	}
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	t.Run("card with spans and long body yields all three variants", func(t *testing.T) {
		t.Parallel()

		card := longCard()
		require.Greater(t, len(card.BodyText), 100)

		examples := newSynthesizer().Synthesize([]*cardex.Card{card})

		require.Len(t, examples, 3)
		assert.Equal(t, cardex.FullFormatting, examples[0].Metadata.Type)
		assert.Equal(t, cardex.PartialFormatting, examples[1].Metadata.Type)
		assert.Equal(t, cardex.ContextAwareFormatting, examples[2].Metadata.Type)
	})

	t.Run("card without spans and short body yields context variant only", func(t *testing.T) {
		t.Parallel()

		card := &cardex.Card{
			Tag:      "Warming Impact",
			Cite:     "Smith 2020",
			BodyText: strings.Repeat("evidence text here ", 2) + "and a bit more",
		}
		require.Len(t, card.BodyText, 52)

		examples := newSynthesizer().Synthesize([]*cardex.Card{card})

		require.Len(t, examples, 1)
		assert.Equal(t, cardex.ContextAwareFormatting, examples[0].Metadata.Type)
	})

	t.Run("partial variant gates on body length over 100", func(t *testing.T) {
		t.Parallel()

		s := newSynthesizer()
		at := func(n int) []*cardex.TrainingExample {
			return s.Synthesize([]*cardex.Card{{
				Tag:      "Warming Impact",
				Cite:     "Smith 2020",
				BodyText: strings.Repeat("x", n),
			}})
		}

		exactly100 := at(100)
		require.Len(t, exactly100, 1)
		assert.Equal(t, cardex.ContextAwareFormatting, exactly100[0].Metadata.Type)

		over100 := at(101)
		require.Len(t, over100, 2)
		assert.Equal(t, cardex.PartialFormatting, over100[0].Metadata.Type)
	})

	t.Run("partial variant truncates on a rune boundary", func(t *testing.T) {
		t.Parallel()

		// 60% of 111 bytes is byte 66, the middle of the two-byte rune at
		// bytes 65-66. The cut must back up rather than emit invalid UTF-8.
		body := strings.Repeat("x", 65) + "é" + strings.Repeat("y", 44)
		require.Len(t, body, 111)

		examples := newSynthesizer().Synthesize([]*cardex.Card{{
			Tag:      "Warming Impact",
			Cite:     "Smith 2020",
			BodyText: body,
		}})
		require.Len(t, examples, 2)

		partial := examples[0]
		require.Equal(t, cardex.PartialFormatting, partial.Metadata.Type)
		user := partial.Messages[1].Content
		assert.True(t, utf8.ValidString(user))
		assert.NotContains(t, user, string(utf8.RuneError))
		assert.Contains(t, user, strings.Repeat("x", 65))
		assert.NotContains(t, user, "é")
	})

	t.Run("partial variant keeps only spans surviving truncation", func(t *testing.T) {
		t.Parallel()

		card := longCard()
		examples := newSynthesizer().Synthesize([]*cardex.Card{card})
		require.Len(t, examples, 3)

		partial := examples[1]
		var resp struct {
			Underline []json.RawMessage `json:"underline"`
			Highlight []json.RawMessage `json:"highlight"`
		}
		require.NoError(t, json.Unmarshal([]byte(partial.Messages[2].Content), &resp))

		// The first 60% of the body contains the underline span but cuts
		// into the highlight span.
		trunc := card.BodyText[:len(card.BodyText)*60/100]
		assert.True(t, strings.Contains(trunc, "Sea levels will rise dramatically"))
		assert.False(t, strings.Contains(trunc, "50% of coastal cities"))
		assert.Len(t, resp.Underline, 1)
		assert.Empty(t, resp.Highlight)
	})

	t.Run("full variant response groups spans by type with priorities", func(t *testing.T) {
		t.Parallel()

		examples := newSynthesizer().Synthesize([]*cardex.Card{longCard()})
		require.Len(t, examples, 3)

		full := examples[0]
		require.Len(t, full.Messages, 3)
		assert.Equal(t, cardex.RoleSystem, full.Messages[0].Role)
		assert.Equal(t, cardex.RoleUser, full.Messages[1].Role)
		assert.Equal(t, cardex.RoleAssistant, full.Messages[2].Role)
		assert.Contains(t, full.Messages[1].Content, "Tag: Warming Impact")
		assert.Contains(t, full.Messages[1].Content, "Cite: Smith 2020")

		var resp struct {
			Underline []struct {
				Text     string `json:"text"`
				Start    int    `json:"start"`
				End      int    `json:"end"`
				Priority int    `json:"priority"`
			} `json:"underline"`
			Highlight []struct {
				Priority int `json:"priority"`
			} `json:"highlight"`
			Reasoning string `json:"reasoning"`
		}
		require.NoError(t, json.Unmarshal([]byte(full.Messages[2].Content), &resp))

		require.Len(t, resp.Underline, 1)
		assert.Equal(t, "Sea levels will rise dramatically", resp.Underline[0].Text)
		assert.Equal(t, 0, resp.Underline[0].Start)
		assert.Equal(t, 33, resp.Underline[0].End)
		// "will" is strong language: 3-1=2.
		assert.Equal(t, 2, resp.Underline[0].Priority)
		require.Len(t, resp.Highlight, 1)
		// "50%" is a statistic: 3-1=2.
		assert.Equal(t, 2, resp.Highlight[0].Priority)
		assert.Contains(t, resp.Reasoning, "1 underline")
		assert.Contains(t, resp.Reasoning, "1 highlight")
	})

	t.Run("spans with existing priority keep it", func(t *testing.T) {
		t.Parallel()

		card := longCard()
		card.FormattedElements[0].Priority = 5

		examples := newSynthesizer().Synthesize([]*cardex.Card{card})
		require.Len(t, examples, 3)

		var resp struct {
			Underline []struct {
				Priority int `json:"priority"`
			} `json:"underline"`
		}
		require.NoError(t, json.Unmarshal([]byte(examples[0].Messages[2].Content), &resp))
		require.Len(t, resp.Underline, 1)
		assert.Equal(t, 5, resp.Underline[0].Priority)
	})

	t.Run("context variant carries inferred context", func(t *testing.T) {
		t.Parallel()

		examples := newSynthesizer().Synthesize([]*cardex.Card{longCard()})
		require.Len(t, examples, 3)

		contextual := examples[2]
		assert.Contains(t, contextual.Messages[1].Content, "Context: this is a")
		assert.Contains(t, contextual.Messages[1].Content, "climate change")

		var resp struct {
			Reasoning string `json:"reasoning"`
		}
		require.NoError(t, json.Unmarshal([]byte(contextual.Messages[2].Content), &resp))
		assert.Contains(t, resp.Reasoning, "climate change")
	})

	t.Run("metadata identifies the card", func(t *testing.T) {
		t.Parallel()

		card := longCard()
		examples := newSynthesizer().Synthesize([]*cardex.Card{card})
		require.Len(t, examples, 3)

		for _, e := range examples {
			assert.Equal(t, synth.CardID(card), e.Metadata.CardID)
			assert.Equal(t, "Warming Impact", e.Metadata.Tag)
			assert.Equal(t, "cardex", e.Metadata.Source)
			assert.False(t, e.Metadata.CreatedAt.IsZero())
		}
	})

	t.Run("batch order follows card order", func(t *testing.T) {
		t.Parallel()

		a := longCard()
		b := longCard()
		b.Tag = "Second Argument"

		examples := newSynthesizer().Synthesize([]*cardex.Card{a, b})

		require.Len(t, examples, 6)
		assert.Equal(t, "Warming Impact", examples[0].Metadata.Tag)
		assert.Equal(t, "Second Argument", examples[3].Metadata.Tag)
	})
}

func TestCardID(t *testing.T) {
	t.Parallel()

	t.Run("is 16 hex characters and deterministic", func(t *testing.T) {
		t.Parallel()

		card := longCard()

		id := synth.CardID(card)

		assert.Len(t, id, 16)
		assert.Regexp(t, "^[0-9a-f]{16}$", id)
		assert.Equal(t, id, synth.CardID(card))
	})

	t.Run("depends only on the first 50 bytes of the body", func(t *testing.T) {
		t.Parallel()

		a := longCard()
		b := longCard()
		b.BodyText = b.BodyText[:50] + " entirely different continuation of the body text"

		assert.Equal(t, synth.CardID(a), synth.CardID(b))
	})

	t.Run("changes when the tag changes", func(t *testing.T) {
		t.Parallel()

		a := longCard()
		b := longCard()
		b.Tag = "Different Tag"

		assert.NotEqual(t, synth.CardID(a), synth.CardID(b))
	})
}
