package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/evidlab/cardex"
)

// maxCiteLen guards the cite heuristic against swallowing a body
// paragraph that happens to contain an emphasis run and a year.
const maxCiteLen = 160

var (
	yearPattern     = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)
	capTokenPattern = regexp.MustCompile(`^\s*(?:'\d{2}|\d{4}|[A-Z][A-Za-z]*)`)
)

// parseCard extracts a single card from one block. It returns (nil, nil)
// for structural skips (no heading) and an error only when the block
// cannot be parsed at all; the caller drops the block either way and
// continues, so a single malformed block never aborts the batch.
func parseCard(blockHTML string) (*cardex.Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(blockHTML))
	if err != nil {
		return nil, cardex.Errorf(cardex.EINVALID, "failed to parse block: %v", err)
	}

	heading := doc.Find("h1, h2, h3").First()
	if heading.Length() == 0 {
		return nil, nil
	}
	tag := cardex.CleanText(heading.Text())
	heading.Remove()

	cite := extractCite(doc)

	var bodyText string
	var spans []cardex.Span
	if body := doc.Find("body"); body.Length() > 0 {
		bodyText, spans = extractSpans(body.Nodes...)
	}

	return &cardex.Card{
		Tag:               tag,
		Cite:              cite,
		BodyText:          bodyText,
		FormattedElements: spans,
		RawHTML:           blockHTML,
	}, nil
}

// extractCite finds and removes the citation paragraph: an explicit
// p.cite, or the first short paragraph that looks like an attribution
// (an italic/bold/strong run followed by a year or capitalized token).
func extractCite(doc *goquery.Document) string {
	cite := ""

	if sel := doc.Find("p.cite").First(); sel.Length() > 0 {
		cite = cardex.CleanText(sel.Text())
		sel.Remove()
		return cite
	}

	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if !looksLikeCite(p) {
			return true
		}
		cite = cardex.CleanText(p.Text())
		p.Remove()
		return false
	})

	return cite
}

func looksLikeCite(p *goquery.Selection) bool {
	run := p.Find("i, b, strong, em").First()
	if run.Length() == 0 {
		return false
	}
	runText := cardex.CleanText(run.Text())
	if runText == "" {
		return false
	}

	full := cardex.CleanText(p.Text())
	if len(full) > maxCiteLen {
		return false
	}

	idx := strings.Index(full, runText)
	if idx < 0 {
		return false
	}
	rest := full[idx+len(runText):]

	return yearPattern.MatchString(rest) || capTokenPattern.MatchString(rest)
}
