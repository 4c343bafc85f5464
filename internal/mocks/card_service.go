package mocks

import (
	"context"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	CreateCardFn func(ctx context.Context, input domain.CardInput) (*domain.Card, error)
	ListCardsFn  func(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error)
	GetCardFn    func(ctx context.Context, cardType domain.CardType, id int64) (*domain.Card, error)
	DeleteCardFn func(ctx context.Context, cardType domain.CardType, id int64) (*service.DeleteResult, error)

	// Default return values
	Card         *domain.Card
	Cards        []*domain.Card
	DeleteResult *service.DeleteResult
	DefaultError error
}

var _ service.CardService = (*MockCardService)(nil)

// CreateCard implements the CardService.CreateCard method
func (m *MockCardService) CreateCard(ctx context.Context, input domain.CardInput) (*domain.Card, error) {
	if m.CreateCardFn != nil {
		return m.CreateCardFn(ctx, input)
	}
	return m.Card, m.DefaultError
}

// ListCards implements the CardService.ListCards method
func (m *MockCardService) ListCards(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error) {
	if m.ListCardsFn != nil {
		return m.ListCardsFn(ctx, cardType)
	}
	return m.Cards, m.DefaultError
}

// GetCard implements the CardService.GetCard method
func (m *MockCardService) GetCard(ctx context.Context, cardType domain.CardType, id int64) (*domain.Card, error) {
	if m.GetCardFn != nil {
		return m.GetCardFn(ctx, cardType, id)
	}
	return m.Card, m.DefaultError
}

// DeleteCard implements the CardService.DeleteCard method
func (m *MockCardService) DeleteCard(
	ctx context.Context,
	cardType domain.CardType,
	id int64,
) (*service.DeleteResult, error) {
	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, cardType, id)
	}
	return m.DeleteResult, m.DefaultError
}
