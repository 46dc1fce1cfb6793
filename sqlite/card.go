package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/evidlab/cardex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cardex.CardService = (*CardService)(nil)

// CardService implements cardex.CardService using SQLite. Span sequences
// are stored as a JSON column; cards are read far more often than they
// are queried by span contents.
type CardService struct {
	db *DB
}

// NewCardService creates a new CardService.
func NewCardService(db *DB) *CardService {
	return &CardService{db: db}
}

// CreateCards persists a batch of cards.
func (s *CardService) CreateCards(ctx context.Context, cards []*cardex.Card) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}

		card.ID = uuid.New().String()
		if card.ExtractedAt.IsZero() {
			card.ExtractedAt = time.Now().UTC()
		}

		spans, err := json.Marshal(card.FormattedElements)
		if err != nil {
			return err
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO cards (id, document_id, tag, cite, body_text, formatted_elements, raw_html, position, extracted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, card.ID, card.DocumentID, card.Tag, card.Cite, card.BodyText, string(spans),
			card.RawHTML, card.Position, card.ExtractedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

// FindCardByID retrieves a card by ID.
func (s *CardService) FindCardByID(ctx context.Context, id string) (*cardex.Card, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, tag, cite, body_text, formatted_elements, raw_html, position, extracted_at
		FROM cards
		WHERE id = ?
	`, id)

	card, err := scanCard(row.Scan)
	if err == sql.ErrNoRows {
		return nil, cardex.Errorf(cardex.ENOTFOUND, "card not found")
	}
	return card, err
}

// FindCards retrieves cards matching the filter, ordered by document
// position ascending.
func (s *CardService) FindCards(ctx context.Context, filter cardex.CardFilter) ([]*cardex.Card, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, document_id, tag, cite, body_text, formatted_elements, raw_html, position, extracted_at FROM cards WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}

	query.WriteString(" ORDER BY document_id, position ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*cardex.Card
	for rows.Next() {
		card, err := scanCard(rows.Scan)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// DeleteCardsByDocument removes all cards for a document.
func (s *CardService) DeleteCardsByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE document_id = ?`, documentID)
	return err
}

func scanCard(scan func(dest ...any) error) (*cardex.Card, error) {
	var card cardex.Card
	var spans, extractedAt string

	if err := scan(&card.ID, &card.DocumentID, &card.Tag, &card.Cite, &card.BodyText,
		&spans, &card.RawHTML, &card.Position, &extractedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(spans), &card.FormattedElements); err != nil {
		return nil, fmt.Errorf("failed to parse formatted_elements: %w", err)
	}

	var err error
	card.ExtractedAt, err = time.Parse(time.RFC3339, extractedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted_at: %w", err)
	}

	return &card, nil
}
