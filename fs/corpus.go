// Package fs provides file-based materialization of training corpora.
package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/evidlab/cardex"
)

// Ensure CorpusWriter implements cardex.CorpusWriter at compile time.
var _ cardex.CorpusWriter = (*CorpusWriter)(nil)

// CorpusWriter writes training examples as line-delimited JSON, one
// {"messages":[...]} object per line, metadata stripped — the shape
// hosted fine-tuning services ingest.
type CorpusWriter struct{}

// NewCorpusWriter creates a new CorpusWriter.
func NewCorpusWriter() *CorpusWriter {
	return &CorpusWriter{}
}

// corpusLine is the wire shape of one training example.
type corpusLine struct {
	Messages []cardex.Message `json:"messages"`
}

// WriteCorpus writes the examples to path atomically: the file appears
// complete or not at all. Writes go to a temp file in the target
// directory, which is renamed over the destination on success.
func (w *CorpusWriter) WriteCorpus(ctx context.Context, path string, examples []*cardex.TrainingExample) error {
	if len(examples) == 0 {
		return cardex.Errorf(cardex.EINVALID, "no training examples to write")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	for _, e := range examples {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		// Encode appends the newline that delimits JSONL records.
		if err := enc.Encode(corpusLine{Messages: e.Messages}); err != nil {
			tmp.Close()
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
