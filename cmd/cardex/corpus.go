package main

import (
	"fmt"
	"os"

	"github.com/evidlab/cardex"
	"github.com/evidlab/cardex/bloom"
	"github.com/evidlab/cardex/fs"
	cardslog "github.com/evidlab/cardex/slog"
	"github.com/evidlab/cardex/synth"
	"github.com/goccy/go-yaml"
)

// dedupCapacity sizes the seen-card filter. Well above any realistic
// single-database card count.
const dedupCapacity = 100_000

// Run executes the corpus command.
func (c *CorpusCmd) Run(deps *Dependencies) error {
	scorer, err := c.loadScorer()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	cards, err := deps.Cards.FindCards(deps.Ctx, cardex.CardFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	if len(cards) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no cards in database. Use 'cardex extract' to add some.\n")
		return cardex.Errorf(cardex.ENOTFOUND, "no cards in database")
	}

	// The same card can appear in multiple documents (shared backfiles).
	// Deduplicate by content identity so the corpus never repeats a card.
	seen := bloom.NewFilter(dedupCapacity, 0.001)
	unique := cards[:0]
	for _, card := range cards {
		if seen.Seen(synth.CardID(card)) {
			continue
		}
		unique = append(unique, card)
	}

	synthesizer := cardslog.NewLoggingSynthesizer(synth.NewSynthesizer(scorer), deps.Logger)
	examples := synthesizer.Synthesize(unique)
	if len(examples) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no training examples could be generated\n")
		return cardex.Errorf(cardex.EINVALID, "no training examples could be generated")
	}

	if err := deps.Examples.CreateExamples(deps.Ctx, examples); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	if err := fs.NewCorpusWriter().WriteCorpus(deps.Ctx, c.Out, examples); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d training examples from %d cards to %s\n", len(examples), len(unique), c.Out)
	return nil
}

// loadScorer returns the priority scorer configuration, reading the
// YAML override file when one was given.
func (c *CorpusCmd) loadScorer() (cardex.PriorityConfig, error) {
	config := cardex.DefaultPriorityConfig()
	if c.ScorerConfig == "" {
		return config, nil
	}

	buf, err := os.ReadFile(c.ScorerConfig)
	if err != nil {
		return config, cardex.Errorf(cardex.EINVALID, "cannot read scorer config %q: %v", c.ScorerConfig, err)
	}
	if err := yaml.Unmarshal(buf, &config); err != nil {
		return config, cardex.Errorf(cardex.EINVALID, "invalid scorer config %q: %v", c.ScorerConfig, err)
	}
	return config, nil
}
