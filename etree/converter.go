// Package etree converts Word documents (.docx) into the HTML shape the
// card parser expects. The conversion applies the style-to-tag mapping the
// parser heuristics assume: Heading 1/2/3 become h1..h3, Tag becomes
// h3.tag, Cite becomes p.cite, Emphasis becomes em, Strong becomes strong,
// underlined runs become u, and highlighted runs become mark.
package etree

import (
	"archive/zip"
	"html"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/evidlab/cardex"
)

// Ensure Converter implements cardex.DocumentConverter at compile time.
var _ cardex.DocumentConverter = (*Converter)(nil)

// Converter reads .docx archives and emits mapped HTML.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ConvertFile converts the .docx file at path into HTML.
func (c *Converter) ConvertFile(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", cardex.Errorf(cardex.EINVALID, "failed to open docx: %v", err)
	}
	defer zr.Close()

	// styles.xml is optional; without it style IDs are mapped directly.
	styles := readStyles(&zr.Reader)

	docXML, err := readEntry(&zr.Reader, "word/document.xml")
	if err != nil {
		return "", cardex.Errorf(cardex.EINVALID, "docx has no word/document.xml: %v", err)
	}

	d := etree.NewDocument()
	if err := d.ReadFromBytes(docXML); err != nil {
		return "", cardex.Errorf(cardex.EINVALID, "failed to parse document.xml: %v", err)
	}

	root := d.Root()
	if root == nil {
		return "", cardex.Errorf(cardex.EINVALID, "document.xml is empty")
	}
	body := findChild(root, "body")
	if body == nil {
		return "", cardex.Errorf(cardex.EINVALID, "document.xml has no body")
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	for _, p := range childElements(body, "p") {
		writeParagraph(&b, p, styles)
	}
	b.WriteString("</body></html>")

	return b.String(), nil
}

// writeParagraph maps one w:p element to an HTML block element with its
// runs wrapped in formatting tags.
func writeParagraph(b *strings.Builder, p *etree.Element, styles map[string]string) {
	var runs strings.Builder
	for _, r := range childElements(p, "r") {
		writeRun(&runs, r)
	}
	if strings.TrimSpace(runs.String()) == "" {
		return
	}

	open, closing := blockTags(paragraphStyle(p, styles))
	b.WriteString(open)
	b.WriteString(runs.String())
	b.WriteString(closing)
}

// paragraphStyle resolves a paragraph's style name, lowercased. Falls
// back to the raw style ID when styles.xml didn't define a name.
func paragraphStyle(p *etree.Element, styles map[string]string) string {
	pPr := findChild(p, "pPr")
	if pPr == nil {
		return ""
	}
	pStyle := findChild(pPr, "pStyle")
	if pStyle == nil {
		return ""
	}
	styleID := attrVal(pStyle, "val")
	if name, ok := styles[styleID]; ok {
		return strings.ToLower(name)
	}
	return strings.ToLower(styleID)
}

func blockTags(style string) (string, string) {
	switch style {
	case "heading 1", "heading1":
		return "<h1>", "</h1>"
	case "heading 2", "heading2":
		return "<h2>", "</h2>"
	case "heading 3", "heading3":
		return "<h3>", "</h3>"
	case "tag":
		return `<h3 class="tag">`, "</h3>"
	case "cite":
		return `<p class="cite">`, "</p>"
	}
	return "<p>", "</p>"
}

// writeRun maps one w:r element: its text, wrapped in u/mark/strong/em
// according to the run properties.
func writeRun(b *strings.Builder, r *etree.Element) {
	var text strings.Builder
	for _, t := range childElements(r, "t") {
		text.WriteString(t.Text())
	}
	if text.Len() == 0 {
		return
	}

	rPr := findChild(r, "rPr")
	var open, closing []string

	if hasMarker(rPr, "u") {
		open = append(open, "<u>")
		closing = append([]string{"</u>"}, closing...)
	}
	if hasMarker(rPr, "highlight") {
		open = append(open, "<mark>")
		closing = append([]string{"</mark>"}, closing...)
	}
	if hasMarker(rPr, "b") || runStyle(rPr) == "strong" {
		open = append(open, "<strong>")
		closing = append([]string{"</strong>"}, closing...)
	}
	if hasMarker(rPr, "i") || runStyle(rPr) == "emphasis" {
		open = append(open, "<em>")
		closing = append([]string{"</em>"}, closing...)
	}

	b.WriteString(strings.Join(open, ""))
	b.WriteString(html.EscapeString(text.String()))
	b.WriteString(strings.Join(closing, ""))
}

// hasMarker reports whether the run properties enable the given toggle.
// A w:val of "none" or "false" disables it.
func hasMarker(rPr *etree.Element, tag string) bool {
	if rPr == nil {
		return false
	}
	el := findChild(rPr, tag)
	if el == nil {
		return false
	}
	switch attrVal(el, "val") {
	case "none", "false", "0":
		return false
	}
	return true
}

func runStyle(rPr *etree.Element) string {
	if rPr == nil {
		return ""
	}
	rStyle := findChild(rPr, "rStyle")
	if rStyle == nil {
		return ""
	}
	return strings.ToLower(attrVal(rStyle, "val"))
}

// readStyles parses word/styles.xml into a styleID-to-name map. Missing
// or malformed styles parts yield an empty map, not an error.
func readStyles(zr *zip.Reader) map[string]string {
	styles := map[string]string{}

	data, err := readEntry(zr, "word/styles.xml")
	if err != nil {
		return styles
	}

	d := etree.NewDocument()
	if err := d.ReadFromBytes(data); err != nil {
		return styles
	}
	root := d.Root()
	if root == nil {
		return styles
	}

	for _, style := range childElements(root, "style") {
		id := attrVal(style, "styleId")
		if id == "" {
			continue
		}
		if name := findChild(style, "name"); name != nil {
			styles[id] = attrVal(name, "val")
		}
	}

	return styles
}

func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// findChild returns the first child element with the given local tag,
// ignoring the namespace prefix.
func findChild(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func childElements(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// attrVal returns an attribute value, checking both the w-prefixed and
// bare forms.
func attrVal(e *etree.Element, key string) string {
	if v := e.SelectAttrValue("w:"+key, ""); v != "" {
		return v
	}
	return e.SelectAttrValue(key, "")
}
