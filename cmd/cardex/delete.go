package main

import (
	"fmt"

	"github.com/evidlab/cardex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return cardex.Errorf(cardex.EINVALID, "use --force to confirm deletion")
	}

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
	if err := deps.Documents.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %q\n", doc.Name)
	return nil
}
