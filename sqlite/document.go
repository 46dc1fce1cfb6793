package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/evidlab/cardex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cardex.DocumentService = (*DocumentService)(nil)

// DocumentService implements cardex.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document, hashing the HTML content for
// change detection.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *cardex.Document, content string) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()
	doc.ContentHash = hashContent(content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, source_path, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.SourcePath, doc.ContentHash, doc.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return cardex.Errorf(cardex.EINVALID, "document %q already exists", doc.Name)
	}
	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*cardex.Document, error) {
	var doc cardex.Document
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_path, content_hash, created_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.SourcePath, &doc.ContentHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, cardex.Errorf(cardex.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	doc.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", parseErr)
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter cardex.DocumentFilter) ([]*cardex.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_path, content_hash, created_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
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

	var docs []*cardex.Document
	for rows.Next() {
		var doc cardex.Document
		var createdAt string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.SourcePath, &doc.ContentHash, &createdAt); err != nil {
			return nil, err
		}
		doc.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document; associated cards cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cardex.Errorf(cardex.ENOTFOUND, "document not found")
	}
	return nil
}
