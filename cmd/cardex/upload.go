package main

import (
	"fmt"

	"github.com/evidlab/cardex"
)

// Run executes the upload command.
func (c *UploadCmd) Run(deps *Dependencies) error {
	job, err := deps.Uploader.Upload(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Started fine-tuning job %s (file %s, model %s, status %s)\n",
		job.ID, job.FileID, job.Model, job.Status)
	return nil
}
