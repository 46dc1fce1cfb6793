package slog

import (
	"log/slog"
	"time"

	"github.com/evidlab/cardex"
)

// Ensure LoggingSynthesizer implements cardex.ExampleSynthesizer.
var _ cardex.ExampleSynthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps an ExampleSynthesizer with generation count
// logging. Cards whose synthesis was skipped show up as the gap between
// the card count and the example count.
type LoggingSynthesizer struct {
	next   cardex.ExampleSynthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next cardex.ExampleSynthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

// Synthesize delegates to the wrapped synthesizer and logs the outcome.
func (s *LoggingSynthesizer) Synthesize(cards []*cardex.Card) []*cardex.TrainingExample {
	begin := time.Now()
	examples := s.next.Synthesize(cards)
	s.logger.Info("training examples generated",
		"cards", len(cards),
		"examples", len(examples),
		"duration", time.Since(begin),
	)
	return examples
}
