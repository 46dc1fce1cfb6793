package mock

import (
	"context"

	"github.com/evidlab/cardex"
)

var _ cardex.CardService = (*CardService)(nil)

// CardService is a mock implementation of cardex.CardService.
type CardService struct {
	CreateCardsFn           func(ctx context.Context, cards []*cardex.Card) error
	FindCardByIDFn          func(ctx context.Context, id string) (*cardex.Card, error)
	FindCardsFn             func(ctx context.Context, filter cardex.CardFilter) ([]*cardex.Card, error)
	DeleteCardsByDocumentFn func(ctx context.Context, documentID string) error
}

func (s *CardService) CreateCards(ctx context.Context, cards []*cardex.Card) error {
	return s.CreateCardsFn(ctx, cards)
}

func (s *CardService) FindCardByID(ctx context.Context, id string) (*cardex.Card, error) {
	return s.FindCardByIDFn(ctx, id)
}

func (s *CardService) FindCards(ctx context.Context, filter cardex.CardFilter) ([]*cardex.Card, error) {
	return s.FindCardsFn(ctx, filter)
}

func (s *CardService) DeleteCardsByDocument(ctx context.Context, documentID string) error {
	return s.DeleteCardsByDocumentFn(ctx, documentID)
}
