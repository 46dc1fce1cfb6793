package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/evidlab/cardex"
	"github.com/evidlab/cardex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	DB           *sqlite.DB
	Documents    cardex.DocumentService
	Cards        cardex.CardService
	Examples     cardex.TrainingExampleService
	Extractor    cardex.CardExtractor
	DocConverter cardex.DocumentConverter
	Markdown     cardex.Converter
	Uploader     cardex.Uploader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract cards from a document file"`
	List    ListCmd    `cmd:"" help:"List all registered documents"`
	Cards   CardsCmd   `cmd:"" help:"List cards for a document"`
	Corpus  CorpusCmd  `cmd:"" help:"Generate a fine-tuning corpus from stored cards"`
	Upload  UploadCmd  `cmd:"" help:"Upload a corpus file and start a fine-tuning job"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a document and its cards"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Name        string `arg:"" help:"Document name"`
	File        string `arg:"" type:"existingfile" help:"Source file (.docx or .html)"`
	DryRun      bool   `short:"n" help:"Show card counts without saving"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent block parse limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// CardsCmd is the "cards" subcommand.
type CardsCmd struct {
	Name string `arg:"" help:"Document name"`
	Full bool   `help:"Show full card bodies as Markdown"`
}

// CorpusCmd is the "corpus" subcommand.
type CorpusCmd struct {
	Out          string `arg:"" help:"Output JSONL path"`
	ScorerConfig string `name:"scorer-config" type:"existingfile" help:"YAML file with key term and strong language lists"`
}

// UploadCmd is the "upload" subcommand.
type UploadCmd struct {
	File  string `arg:"" type:"existingfile" help:"Corpus JSONL file"`
	Model string `default:"" help:"Base model to fine-tune"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Document name"`
	Force bool   `help:"Confirm deletion"`
}
