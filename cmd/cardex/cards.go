package main

import (
	"fmt"

	"github.com/evidlab/cardex"
)

// Run executes the cards command.
func (c *CardsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, cardex.DocumentFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'cardex list' to see available documents.\n", c.Name)
		return cardex.Errorf(cardex.ENOTFOUND, "document %q not found", c.Name)
	}

	doc := docs[0]

	cards, err := deps.Cards.FindCards(deps.Ctx, cardex.CardFilter{DocumentID: &doc.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	if len(cards) == 0 {
		fmt.Fprintf(deps.Stderr, "error: document %q has no cards. To re-add, first run 'cardex delete %s --force', then run 'cardex extract %s <file>'.\n", c.Name, c.Name, c.Name)
		return cardex.Errorf(cardex.ENOTFOUND, "document %q has no cards", c.Name)
	}

	if c.Full {
		for _, card := range cards {
			md, err := deps.Markdown.Convert(card.RawHTML)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
				return err
			}
			fmt.Fprintln(deps.Stdout, md)
			fmt.Fprintln(deps.Stdout)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Cards for %s (%d total):\n\n", c.Name, len(cards))
	for i, card := range cards {
		cite := card.Cite
		if cite == "" {
			cite = "(no cite)"
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s  [%d spans]\n", i+1, card.Tag, cite, len(card.FormattedElements))
	}

	return nil
}
