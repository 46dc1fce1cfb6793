package goquery

import (
	"sort"
	"strings"
	"unicode"

	"github.com/evidlab/cardex"
	"golang.org/x/net/html"
)

// extractSpans walks the given nodes once in document order, accumulating
// the cleaned body text and recording a positioned span for every
// formatting marker. Because positions are assigned as text lands in the
// body, EndPosition-StartPosition always equals len(Text) exactly, even
// when markers nest (e.g. an underline inside a highlight yields both
// spans over the same words).
func extractSpans(nodes ...*html.Node) (string, []cardex.Span) {
	w := &spanWalker{}
	for _, n := range nodes {
		w.walk(n)
	}

	body := w.b.String()
	spans := w.spans
	for i := range spans {
		spans[i].Text = body[spans[i].StartPosition:spans[i].EndPosition]
	}

	// Stable sort keeps discovery order for spans starting at the same
	// position.
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].StartPosition < spans[j].StartPosition
	})

	return body, spans
}

type openMarker struct {
	typ cardex.SpanType

	// start is -1 until the first text lands inside the marker; markers
	// that close without text produce no span.
	start int
}

type spanWalker struct {
	b     strings.Builder
	open  []*openMarker
	spans []cardex.Span

	// pendingSpace records that a word separator is owed before the next
	// text chunk (from trailing whitespace or a block boundary).
	pendingSpace bool
}

func (w *spanWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.appendText(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	name := strings.ToLower(n.Data)
	if name == "script" || name == "style" {
		return
	}

	if isBlockElement(name) {
		w.pendingSpace = true
	}

	typ, marked := markerType(n)
	if marked {
		w.open = append(w.open, &openMarker{typ: typ, start: -1})
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}

	if marked {
		m := w.open[len(w.open)-1]
		w.open = w.open[:len(w.open)-1]
		if m.start >= 0 && w.b.Len() > m.start {
			w.spans = append(w.spans, cardex.Span{
				Type:          m.typ,
				StartPosition: m.start,
				EndPosition:   w.b.Len(),
			})
		}
	}

	if isBlockElement(name) {
		w.pendingSpace = true
	}
}

func (w *spanWalker) appendText(raw string) {
	cleaned := cardex.CleanText(raw)
	if cleaned == "" {
		if raw != "" {
			w.pendingSpace = true
		}
		return
	}

	if w.b.Len() > 0 && (w.pendingSpace || startsWithSpace(raw)) {
		w.b.WriteByte(' ')
	}

	// Open markers that haven't seen text yet start here, after any
	// separator.
	for _, m := range w.open {
		if m.start < 0 {
			m.start = w.b.Len()
		}
	}

	w.b.WriteString(cleaned)
	w.pendingSpace = endsWithSpace(raw)
}

// markerType maps an element to the span type it marks, if any. Source
// markers em/i/emphasis and strong/b all read as emphasis; mark and
// background-colored spans read as highlight.
func markerType(n *html.Node) (cardex.SpanType, bool) {
	switch strings.ToLower(n.Data) {
	case "u":
		return cardex.SpanUnderline, true
	case "em", "i", "emphasis", "strong", "b":
		return cardex.SpanEmphasis, true
	case "mark":
		return cardex.SpanHighlight, true
	case "span":
		if style := attrValue(n, "style"); strings.Contains(strings.ToLower(style), "background-color") {
			return cardex.SpanHighlight, true
		}
	}
	return "", false
}

func isBlockElement(name string) bool {
	switch name {
	case "p", "div", "br", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		"table", "tr", "td", "th", "blockquote", "section", "article":
		return true
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

func endsWithSpace(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	return unicode.IsSpace(runes[len(runes)-1])
}
