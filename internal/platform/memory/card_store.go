// Package memory provides an in-process card store used for local runs and
// end-to-end tests. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/store"
)

// CardStore keeps the cards of one variant in a map.
type CardStore struct {
	cardType domain.CardType
	nextID   int64

	mu    sync.RWMutex
	cards map[int64]domain.Card
}

var _ store.CardStore = (*CardStore)(nil)

// NewCardStore returns an empty store for cardType.
func NewCardStore(cardType domain.CardType) *CardStore {
	return &CardStore{
		cardType: cardType,
		cards:    make(map[int64]domain.Card),
	}
}

// NewCardStores returns one empty store per known card type.
func NewCardStores() store.CardStores {
	stores := make(store.CardStores, len(domain.CardTypes))
	for _, t := range domain.CardTypes {
		stores[t] = NewCardStore(t)
	}
	return stores
}

func (s *CardStore) Create(_ context.Context, card domain.Card) (*domain.Card, error) {
	card.ID = atomic.AddInt64(&s.nextID, 1)
	card.Type = s.cardType
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.cards[card.ID] = card
	s.mu.Unlock()

	return &card, nil
}

// List returns cards ordered by ID so results are stable across calls.
func (s *CardStore) List(_ context.Context) ([]*domain.Card, error) {
	s.mu.RLock()
	cards := make([]*domain.Card, 0, len(s.cards))
	for _, c := range s.cards {
		c := c
		cards = append(cards, &c)
	}
	s.mu.RUnlock()

	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

func (s *CardStore) GetByID(_ context.Context, id int64) (*domain.Card, error) {
	s.mu.RLock()
	card, ok := s.cards[id]
	s.mu.RUnlock()

	if !ok {
		return nil, store.ErrCardNotFound
	}
	return &card, nil
}

func (s *CardStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[id]; !ok {
		return 0, store.ErrCardNotFound
	}
	delete(s.cards, id)
	return 1, nil
}
