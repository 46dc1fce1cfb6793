package mock

import (
	"context"

	"github.com/evidlab/cardex"
)

var _ cardex.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of cardex.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *cardex.Document, content string) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*cardex.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter cardex.DocumentFilter) ([]*cardex.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *cardex.Document, content string) error {
	return s.CreateDocumentFn(ctx, doc, content)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*cardex.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter cardex.DocumentFilter) ([]*cardex.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
