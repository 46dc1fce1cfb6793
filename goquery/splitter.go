// Package goquery implements card extraction from HTML documents using a
// parsed DOM tree rather than pattern matching over the raw markup, so
// span positions stay exact even when marker types nest.
package goquery

import (
	"strings"

	"github.com/evidlab/cardex"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// minBlockLen is the trimmed length below which a block is treated as
// noise rather than a candidate card.
const minBlockLen = 50

// SplitBlocks partitions a full HTML document into candidate card blocks,
// one per heading (h1-h3). Each block runs from its heading to the next
// heading or end of document; content preceding the first heading becomes
// its own leading block. Wrapper elements enclosing headings (e.g. the
// section div Word exports put around the whole document) are flattened,
// so a heading anywhere in the body starts a block. Blocks whose trimmed
// length is 50 characters or less are dropped. A document with no
// headings yields zero blocks, which is expected behavior, not an error.
func SplitBlocks(htmlContent string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, cardex.Errorf(cardex.EINVALID, "failed to parse HTML: %v", err)
	}

	body := findElement(root, atom.Body)
	if body == nil || !containsHeading(body) {
		return nil, nil
	}

	var blocks []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); len(s) > minBlockLen {
			blocks = append(blocks, s)
		}
		cur.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case isHeading(c):
				flush()
				_ = html.Render(&cur, c)
			case c.Type == html.ElementNode && containsHeading(c):
				walk(c)
			default:
				_ = html.Render(&cur, c)
			}
		}
	}
	walk(body)
	flush()

	return blocks, nil
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3:
		return true
	}
	return false
}

func containsHeading(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isHeading(c) || containsHeading(c) {
			return true
		}
	}
	return false
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
