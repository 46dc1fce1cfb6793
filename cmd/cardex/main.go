package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/evidlab/cardex"
	"github.com/evidlab/cardex/bluemonday"
	"github.com/evidlab/cardex/etree"
	"github.com/evidlab/cardex/goquery"
	"github.com/evidlab/cardex/htmltomarkdown"
	"github.com/evidlab/cardex/openai"
	cardslog "github.com/evidlab/cardex/slog"
	"github.com/evidlab/cardex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService cardex.DocumentService
	CardService     cardex.CardService
	ExampleService  cardex.TrainingExampleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cardex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cardex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CARDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	m.CardService = sqlite.NewCardService(m.DB)
	m.ExampleService = sqlite.NewTrainingExampleService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Cards = m.CardService
	deps.Examples = m.ExampleService

	extractor := goquery.NewExtractor()
	extractor.Sanitizer = bluemonday.NewSanitizer()
	extractor.Concurrency = cli.Extract.Concurrency
	deps.Extractor = cardslog.NewLoggingExtractor(extractor, deps.Logger)
	deps.DocConverter = etree.NewConverter()
	deps.Markdown = htmltomarkdown.NewConverter()

	if cmd == "upload" {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
			return fmt.Errorf("OPENAI_API_KEY not set")
		}

		uploader, err := openai.NewUploader(apiKey, cli.Upload.Model)
		if err != nil {
			return fmt.Errorf("failed to create uploader: %w", err)
		}
		deps.Uploader = uploader
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("CARDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cardex.db"
	}
	dir := filepath.Join(home, ".cardex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cardex.db")
}
