package store

import (
	"context"

	"github.com/phrazzld/trello-manager/internal/domain"
)

// CardStore defines the interface for card data persistence.
// Each instance is bound to a single card variant; callers select the
// instance by card type and never address another variant through it.
type CardStore interface {
	// Create saves a new card and returns the stored record with its
	// server-generated ID. The passed card is not modified.
	Create(ctx context.Context, card domain.Card) (*domain.Card, error)

	// List returns every stored card of the variant in storage order.
	// It returns an empty, non-nil slice when there are none.
	List(ctx context.Context) ([]*domain.Card, error)

	// GetByID retrieves a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Card, error)

	// Delete removes a card by its ID and returns the number of records
	// removed. Returns ErrCardNotFound if nothing was removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

// CardStores maps each card type to the store holding that variant.
type CardStores map[domain.CardType]CardStore
