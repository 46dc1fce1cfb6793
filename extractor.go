package cardex

// CardExtractor extracts debate cards from a full HTML document. The
// returned cards are valid (per Card.IsValid), ordered by their block
// position in the document, and a pure function of the input: the same
// HTML always yields the same cards.
type CardExtractor interface {
	ExtractCards(html string) ([]*Card, error)
}

// Sanitizer normalizes untrusted or messy HTML (e.g. a Word export full
// of mso markup) before extraction, preserving headings, paragraphs, and
// the formatting tags cards are parsed from.
type Sanitizer interface {
	Sanitize(html string) string
}

// DocumentConverter converts a source document file (e.g. .docx) into
// HTML with the style-to-tag mapping the card parser assumes:
// Heading 1/2/3 become h1..h3, Tag becomes h3.tag, Cite becomes p.cite,
// Emphasis becomes em, Strong becomes strong, underlined runs become u,
// and highlighted runs become mark.
type DocumentConverter interface {
	ConvertFile(path string) (string, error)
}

// Converter converts HTML to Markdown for display and export.
type Converter interface {
	Convert(html string) (string, error)
}
