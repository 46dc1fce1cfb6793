package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evidlab/cardex"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := c.loadHTML(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	cards, err := deps.Extractor.ExtractCards(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	if len(cards) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no cards found in %q. The file needs h1-h3 headings followed by cite and body paragraphs.\n", c.File)
		return cardex.Errorf(cardex.EINVALID, "no cards found in %q", c.File)
	}

	if c.DryRun {
		spans := 0
		for _, card := range cards {
			spans += len(card.FormattedElements)
		}
		fmt.Fprintf(deps.Stdout, "Would save %d cards (%d formatted spans) from %q\n", len(cards), spans, c.File)
		return nil
	}

	doc := &cardex.Document{
		Name:       c.Name,
		SourcePath: c.File,
	}
	if err := deps.Documents.CreateDocument(deps.Ctx, doc, html); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	for _, card := range cards {
		card.DocumentID = doc.ID
	}
	if err := deps.Cards.CreateCards(deps.Ctx, cards); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added document %q (%s) with %d cards\n", c.Name, doc.ID, len(cards))
	return nil
}

// loadHTML reads the source file, converting Word documents to HTML.
func (c *ExtractCmd) loadHTML(deps *Dependencies) (string, error) {
	if strings.EqualFold(filepath.Ext(c.File), ".docx") {
		return deps.DocConverter.ConvertFile(c.File)
	}

	buf, err := os.ReadFile(c.File)
	if err != nil {
		return "", cardex.Errorf(cardex.EINVALID, "cannot read %q: %v", c.File, err)
	}
	return string(buf), nil
}
