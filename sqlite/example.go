package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/evidlab/cardex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cardex.TrainingExampleService = (*TrainingExampleService)(nil)

// TrainingExampleService implements cardex.TrainingExampleService using
// SQLite. Message lists are stored as a JSON column.
type TrainingExampleService struct {
	db *DB
}

// NewTrainingExampleService creates a new TrainingExampleService.
func NewTrainingExampleService(db *DB) *TrainingExampleService {
	return &TrainingExampleService{db: db}
}

// CreateExamples persists a batch of training examples.
func (s *TrainingExampleService) CreateExamples(ctx context.Context, examples []*cardex.TrainingExample) error {
	for _, e := range examples {
		if err := e.Validate(); err != nil {
			return err
		}

		e.ID = uuid.New().String()
		if e.Metadata.CreatedAt.IsZero() {
			e.Metadata.CreatedAt = time.Now().UTC()
		}

		messages, err := json.Marshal(e.Messages)
		if err != nil {
			return err
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO examples (id, card_id, type, tag, source, messages, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.Metadata.CardID, string(e.Metadata.Type), e.Metadata.Tag,
			e.Metadata.Source, string(messages), e.Metadata.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

// FindExamples retrieves examples matching the filter, newest first.
func (s *TrainingExampleService) FindExamples(ctx context.Context, filter cardex.ExampleFilter) ([]*cardex.TrainingExample, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, card_id, type, tag, source, messages, created_at FROM examples WHERE 1=1")

	if filter.CardID != nil {
		query.WriteString(" AND card_id = ?")
		args = append(args, *filter.CardID)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY created_at DESC")

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

	var examples []*cardex.TrainingExample
	for rows.Next() {
		var e cardex.TrainingExample
		var typ, messages, createdAt string

		if err := rows.Scan(&e.ID, &e.Metadata.CardID, &typ, &e.Metadata.Tag,
			&e.Metadata.Source, &messages, &createdAt); err != nil {
			return nil, err
		}

		e.Metadata.Type = cardex.ExampleType(typ)
		if err := json.Unmarshal([]byte(messages), &e.Messages); err != nil {
			return nil, fmt.Errorf("failed to parse messages: %w", err)
		}
		e.Metadata.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		examples = append(examples, &e)
	}

	return examples, rows.Err()
}
