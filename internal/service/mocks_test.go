package service

import (
	"context"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCardStore mocks the store.CardStore interface
type MockCardStore struct {
	mock.Mock
}

var _ store.CardStore = (*MockCardStore)(nil)

func (m *MockCardStore) Create(ctx context.Context, card domain.Card) (*domain.Card, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// newMockStores returns a fresh mock per card type.
func newMockStores() (store.CardStores, map[domain.CardType]*MockCardStore) {
	mocks := make(map[domain.CardType]*MockCardStore, len(domain.CardTypes))
	stores := make(store.CardStores, len(domain.CardTypes))
	for _, t := range domain.CardTypes {
		m := &MockCardStore{}
		mocks[t] = m
		stores[t] = m
	}
	return stores, mocks
}
