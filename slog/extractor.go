// Package slog provides logging decorators for cardex interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/evidlab/cardex"
)

// Ensure LoggingExtractor implements cardex.CardExtractor.
var _ cardex.CardExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a CardExtractor with extraction count logging.
type LoggingExtractor struct {
	next   cardex.CardExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next cardex.CardExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractCards delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractCards(html string) ([]*cardex.Card, error) {
	begin := time.Now()
	cards, err := e.next.ExtractCards(html)
	if err != nil {
		e.logger.Error("card extraction failed",
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	e.logger.Info("cards extracted",
		"cards", len(cards),
		"duration", time.Since(begin),
	)
	return cards, nil
}
