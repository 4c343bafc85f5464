// Package redisstore implements store.CardStore on top of Redis.
//
// Each variant owns two keys: an INCR counter that issues card IDs and a
// hash mapping the ID to the JSON-encoded card.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/platform/logger"
	"github.com/phrazzld/trello-manager/internal/store"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces all keys written by the store.
const DefaultKeyPrefix = "cards"

// RedisCardStore stores the cards of one variant.
type RedisCardStore struct {
	client  redis.Cmdable
	variant domain.Variant
	seqKey  string
	hashKey string
	entity  string
	logger  *slog.Logger
}

var _ store.CardStore = (*RedisCardStore)(nil)

// NewRedisCardStore creates a store for cardType using client.
func NewRedisCardStore(
	client redis.Cmdable,
	prefix string,
	cardType domain.CardType,
	logger *slog.Logger,
) *RedisCardStore {
	if client == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	variant := domain.MustVariant(cardType)
	base := fmt.Sprintf("%s:%s", prefix, strings.ToLower(string(cardType)))

	return &RedisCardStore{
		client:  client,
		variant: variant,
		seqKey:  base + ":seq",
		hashKey: base,
		entity:  strings.ToLower(string(cardType)) + " card",
		logger:  logger.With(slog.String("component", "redis_card_store"), slog.String("card_type", string(cardType))),
	}
}

// NewRedisCardStores returns one store per known card type.
func NewRedisCardStores(client redis.Cmdable, prefix string, logger *slog.Logger) store.CardStores {
	stores := make(store.CardStores, len(domain.CardTypes))
	for _, t := range domain.CardTypes {
		stores[t] = NewRedisCardStore(client, prefix, t, logger)
	}
	return stores
}

// Create allocates an ID from the variant sequence and writes the card.
func (s *RedisCardStore) Create(ctx context.Context, card domain.Card) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.client.Incr(ctx, s.seqKey).Result()
	if err != nil {
		log.Error("failed to allocate card id", slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "create", "failed to allocate id", err)
	}

	card.ID = id
	card.Type = s.variant.Type
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(card)
	if err != nil {
		return nil, store.NewStoreError(s.entity, "create", "failed to encode card", err)
	}

	created, err := s.client.HSetNX(ctx, s.hashKey, strconv.FormatInt(id, 10), payload).Result()
	if err != nil {
		log.Error("failed to write card", slog.Int64("card_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "create", "failed to write card", err)
	}
	if !created {
		return nil, store.NewStoreError(s.entity, "create", "id already in use", store.ErrDuplicate)
	}

	log.Debug("card created", slog.Int64("card_id", id))
	return &card, nil
}

// List returns all cards of the variant ordered by ID.
func (s *RedisCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	values, err := s.client.HVals(ctx, s.hashKey).Result()
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "list", "failed to read cards", err)
	}

	cards := make([]*domain.Card, 0, len(values))
	for _, v := range values {
		card, err := s.decode(v)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// GetByID returns store.ErrCardNotFound when id is absent.
func (s *RedisCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v, err := s.client.HGet(ctx, s.hashKey, strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		log.Error("failed to get card", slog.Int64("card_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "get", "failed to read card", err)
	}
	return s.decode(v)
}

// Delete returns store.ErrCardNotFound when nothing was removed.
func (s *RedisCardStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.client.HDel(ctx, s.hashKey, strconv.FormatInt(id, 10)).Result()
	if err != nil {
		log.Error("failed to delete card", slog.Int64("card_id", id), slog.String("error", err.Error()))
		return 0, store.NewStoreError(s.entity, "delete", "failed to delete card", err)
	}
	if n == 0 {
		return 0, store.ErrCardNotFound
	}

	log.Debug("card deleted", slog.Int64("card_id", id))
	return n, nil
}

func (s *RedisCardStore) decode(v string) (*domain.Card, error) {
	var card domain.Card
	if err := json.Unmarshal([]byte(v), &card); err != nil {
		return nil, store.NewStoreError(s.entity, "decode", "corrupt card record", err)
	}
	return &card, nil
}
