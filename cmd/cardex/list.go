package main

import (
	"fmt"

	"github.com/evidlab/cardex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, cardex.DocumentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'cardex extract' to add one.")
		return nil
	}

	for _, d := range docs {
		cards, err := deps.Cards.FindCards(deps.Ctx, cardex.CardFilter{DocumentID: &d.ID})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d cards  %s\n", d.ID, d.Name, len(cards), d.SourcePath)
	}

	return nil
}
