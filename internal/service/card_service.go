package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/platform/logger"
	"github.com/phrazzld/trello-manager/internal/store"
)

// DeleteResult acknowledges a delete.
type DeleteResult struct {
	Affected int64 `json:"affected"`
}

// CardService provides card-related operations
type CardService interface {
	// CreateCard validates input against its variant rule and stores a new card.
	// input is never modified.
	CreateCard(ctx context.Context, input domain.CardInput) (*domain.Card, error)

	// ListCards returns every card of the given type.
	ListCards(ctx context.Context, cardType domain.CardType) ([]*domain.Card, error)

	// GetCard retrieves a card by type and ID.
	GetCard(ctx context.Context, cardType domain.CardType, id int64) (*domain.Card, error)

	// DeleteCard removes a card after confirming it exists.
	DeleteCard(ctx context.Context, cardType domain.CardType, id int64) (*DeleteResult, error)
}

// route binds a card type to its rule and store.
type route struct {
	variant domain.Variant
	store   store.CardStore
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	routes   map[domain.CardType]route
	bugTitle TitleGenerator
	now      func() time.Time
	logger   *slog.Logger
}

// Option customizes a CardService.
type Option func(*cardServiceImpl)

// WithClock overrides the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *cardServiceImpl) { s.now = now }
}

// NewCardService creates a new CardService.
// It returns an error if any card type has no store.
func NewCardService(
	stores store.CardStores,
	bugTitle TitleGenerator,
	logger *slog.Logger,
	opts ...Option,
) (CardService, error) {
	routes := make(map[domain.CardType]route, len(domain.CardTypes))
	for _, t := range domain.CardTypes {
		s, ok := stores[t]
		if !ok || s == nil {
			return nil, fmt.Errorf("no store configured for %s cards", t)
		}
		routes[t] = route{variant: domain.MustVariant(t), store: s}
	}

	if bugTitle == nil {
		bugTitle = NewBugTitleGenerator(DefaultBugTitleToken)
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc := &cardServiceImpl{
		routes:   routes,
		bugTitle: bugTitle,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "card_service")),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *cardServiceImpl) route(cardType domain.CardType) (route, error) {
	r, ok := s.routes[cardType]
	if !ok {
		return route{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedCardType, cardType)
	}
	return r, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	input domain.CardInput,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	r, err := s.route(input.Type)
	if err != nil {
		log.Debug("rejected card with unsupported type", slog.String("card_type", string(input.Type)))
		return nil, err
	}

	if err := r.variant.Validate(input); err != nil {
		log.Debug("card validation failed",
			slog.String("card_type", string(input.Type)),
			slog.String("error", err.Error()))
		return nil, err
	}

	card := r.variant.Build(input, s.now())
	if card.Type == domain.CardTypeBug {
		card.Title = s.bugTitle()
	}

	created, err := r.store.Create(ctx, card)
	if err != nil {
		log.Error("failed to create card",
			slog.String("card_type", string(card.Type)),
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("create", "failed to save card", err)
	}

	log.Info("card created",
		slog.String("card_type", string(created.Type)),
		slog.Int64("card_id", created.ID))
	return created, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(
	ctx context.Context,
	cardType domain.CardType,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	r, err := s.route(cardType)
	if err != nil {
		return nil, err
	}

	cards, err := r.store.List(ctx)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("card_type", string(cardType)),
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("list", "failed to retrieve cards", err)
	}
	if cards == nil {
		cards = []*domain.Card{}
	}

	log.Debug("cards listed",
		slog.String("card_type", string(cardType)),
		slog.Int("count", len(cards)))
	return cards, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(
	ctx context.Context,
	cardType domain.CardType,
	id int64,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	r, err := s.route(cardType)
	if err != nil {
		return nil, err
	}

	card, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("card not found",
				slog.String("card_type", string(cardType)),
				slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to retrieve card",
			slog.String("card_type", string(cardType)),
			slog.Int64("card_id", id),
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("get_card", "failed to retrieve card", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard
// The record is looked up first so a missing card never reaches the store's
// delete path.
func (s *cardServiceImpl) DeleteCard(
	ctx context.Context,
	cardType domain.CardType,
	id int64,
) (*DeleteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetCard(ctx, cardType, id); err != nil {
		return nil, err
	}

	r := s.routes[cardType]
	affected, err := r.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("card removed concurrently",
				slog.String("card_type", string(cardType)),
				slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to delete card",
			slog.String("card_type", string(cardType)),
			slog.Int64("card_id", id),
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("delete", "failed to delete card", err)
	}

	log.Info("card deleted",
		slog.String("card_type", string(cardType)),
		slog.Int64("card_id", id))
	return &DeleteResult{Affected: affected}, nil
}
