package goquery_test

import (
	"strings"
	"testing"

	"github.com/evidlab/cardex"
	"github.com/evidlab/cardex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const warmingCard = `<h1>Warming Impact</h1>` +
	`<p class="cite">Smith 2020</p>` +
	`<p>Sea levels <u>will rise dramatically</u> and <mark>50% of coastal cities</mark> are at risk.</p>`

func TestExtractorExtractCards(t *testing.T) {
	t.Parallel()

	t.Run("parses tag, cite, body, and spans", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewExtractor().ExtractCards(warmingCard)

		require.NoError(t, err)
		require.Len(t, cards, 1)

		card := cards[0]
		assert.Equal(t, "Warming Impact", card.Tag)
		assert.Equal(t, "Smith 2020", card.Cite)
		assert.Contains(t, card.BodyText, "Sea levels will rise dramatically and 50% of coastal cities are at risk.")

		require.Len(t, card.FormattedElements, 2)
		assert.Equal(t, cardex.SpanUnderline, card.FormattedElements[0].Type)
		assert.Equal(t, "will rise dramatically", card.FormattedElements[0].Text)
		assert.Equal(t, cardex.SpanHighlight, card.FormattedElements[1].Type)
		assert.Equal(t, "50% of coastal cities", card.FormattedElements[1].Text)
	})

	t.Run("span positions index into body text exactly", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewExtractor().ExtractCards(warmingCard)

		require.NoError(t, err)
		require.Len(t, cards, 1)

		card := cards[0]
		for _, sp := range card.FormattedElements {
			assert.LessOrEqual(t, sp.StartPosition, sp.EndPosition)
			assert.Equal(t, len(sp.Text), sp.EndPosition-sp.StartPosition)
			assert.Equal(t, sp.Text, card.BodyText[sp.StartPosition:sp.EndPosition])
		}
	})

	t.Run("spans are sorted by start position", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Mixed Formatting</h1><p class="cite">Jones 2021</p>` +
			`<p><mark>late highlight comes last in source order</mark> but <u>underline</u> and <em>emphasis words</em> follow.</p>`

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		require.Len(t, cards, 1)

		spans := cards[0].FormattedElements
		require.NotEmpty(t, spans)
		for i := 1; i < len(spans); i++ {
			assert.LessOrEqual(t, spans[i-1].StartPosition, spans[i].StartPosition)
		}
	})

	t.Run("nested markers yield a span per marker with exact positions", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Nested Formatting</h1><p class="cite">Lee 2019</p>` +
			`<p>The evidence <mark>clearly <u>proves the link</u> beyond doubt</mark> here.</p>`

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		require.Len(t, cards, 1)

		card := cards[0]
		require.Len(t, card.FormattedElements, 2)

		highlight := card.FormattedElements[0]
		underline := card.FormattedElements[1]
		assert.Equal(t, cardex.SpanHighlight, highlight.Type)
		assert.Equal(t, "clearly proves the link beyond doubt", highlight.Text)
		assert.Equal(t, cardex.SpanUnderline, underline.Type)
		assert.Equal(t, "proves the link", underline.Text)
		assert.Equal(t, underline.Text, card.BodyText[underline.StartPosition:underline.EndPosition])
	})

	t.Run("maps strong and background-color spans", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Marker Families</h1><p class="cite">Chen 2022</p>` +
			`<p>It <strong>strongly confirms</strong> that <span style="background-color: yellow">key cities flood</span> every year.</p>`

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		require.Len(t, cards, 1)

		spans := cards[0].FormattedElements
		require.Len(t, spans, 2)
		assert.Equal(t, cardex.SpanEmphasis, spans[0].Type)
		assert.Equal(t, "strongly confirms", spans[0].Text)
		assert.Equal(t, cardex.SpanHighlight, spans[1].Type)
		assert.Equal(t, "key cities flood", spans[1].Text)
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		first, err := e.ExtractCards(warmingCard)
		require.NoError(t, err)
		second, err := e.ExtractCards(warmingCard)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("returns cards in heading order", func(t *testing.T) {
		t.Parallel()

		body := `<p>Rising seas <u>swallow coastal infrastructure</u> within decades.</p>`
		html := `<h1>Alpha Argument</h1><p class="cite">Adams 2018</p>` + body +
			`<h2>Beta Argument</h2><p class="cite">Brown 2019</p>` + body +
			`<h3>Gamma Argument</h3><p class="cite">Clark 2020</p>` + body

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		require.Len(t, cards, 3)
		assert.Equal(t, "Alpha Argument", cards[0].Tag)
		assert.Equal(t, "Beta Argument", cards[1].Tag)
		assert.Equal(t, "Gamma Argument", cards[2].Tag)
		for i, card := range cards {
			assert.Equal(t, i, card.Position)
		}
	})

	t.Run("filters cards with short tags", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Hi</h1><p class="cite">Smith 2020</p>` +
			`<p>Plenty of <u>formatted evidence text</u> that would otherwise qualify as a card body.</p>`

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("filters cards without cite or spans", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Unattributed Argument</h1>` +
			`<p>` + strings.Repeat("plain body text with no formatting ", 3) + `</p>`

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("falls back to cite heuristic without cite class", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Warming Impact</h1>` +
			`<p><strong>Smith</strong> 2020, Professor of Climatology</p>` +
			`<p>Sea levels will rise dramatically and coastal cities are at risk of flooding.</p>`

		cards, err := goquery.NewExtractor().ExtractCards(html)

		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "Smith 2020, Professor of Climatology", cards[0].Cite)
		assert.NotContains(t, cards[0].BodyText, "Climatology")
	})

	t.Run("no headings yields no cards", func(t *testing.T) {
		t.Parallel()

		cards, err := goquery.NewExtractor().ExtractCards("<p>" + strings.Repeat("prose ", 30) + "</p>")

		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("parallel parsing preserves block order", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		tags := []string{"Alpha Argument", "Beta Argument", "Gamma Argument", "Delta Argument", "Epsilon Argument"}
		for _, tag := range tags {
			sb.WriteString(`<h1>` + tag + `</h1><p class="cite">Smith 2020</p>`)
			sb.WriteString(`<p>Rising seas <u>swallow coastal infrastructure</u> within decades.</p>`)
		}

		serial, err := goquery.NewExtractor().ExtractCards(sb.String())
		require.NoError(t, err)

		parallel, err := (&goquery.Extractor{Concurrency: 4}).ExtractCards(sb.String())
		require.NoError(t, err)

		assert.Equal(t, serial, parallel)
		require.Len(t, parallel, len(tags))
		for i, tag := range tags {
			assert.Equal(t, tag, parallel[i].Tag)
		}
	})
}
