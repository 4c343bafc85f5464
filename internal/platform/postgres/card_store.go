package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/platform/logger"
	"github.com/phrazzld/trello-manager/internal/store"
)

// PostgresCardStore implements the store.CardStore interface for one card
// variant using a PostgreSQL table as the storage backend.
type PostgresCardStore struct {
	db      store.DBTX
	variant domain.Variant
	table   string
	columns string
	entity  string
	logger  *slog.Logger
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// TableName returns the table holding cards of type t, e.g. bug_cards.
func TableName(t domain.CardType) string {
	return strings.ToLower(string(t)) + "_cards"
}

// NewPostgresCardStore creates a card store for cardType.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, cardType domain.CardType, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	variant := domain.MustVariant(cardType)
	columns := make([]string, len(variant.Fields))
	for i, f := range variant.Fields {
		columns[i] = string(f)
	}

	return &PostgresCardStore{
		db:      db,
		variant: variant,
		table:   TableName(cardType),
		columns: strings.Join(columns, ", "),
		entity:  strings.ToLower(string(cardType)) + " card",
		logger: logger.With(
			slog.String("component", "card_store"),
			slog.String("card_type", string(cardType)),
		),
	}
}

// NewPostgresCardStores creates one store per known card type sharing db.
func NewPostgresCardStores(db store.DBTX, logger *slog.Logger) store.CardStores {
	stores := make(store.CardStores, len(domain.CardTypes))
	for _, t := range domain.CardTypes {
		stores[t] = NewPostgresCardStore(db, t, logger)
	}
	return stores
}

// Create implements store.CardStore.Create.
// Returns store.ErrInvalidEntity when the row violates a table constraint.
func (s *PostgresCardStore) Create(ctx context.Context, card domain.Card) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	n := len(s.variant.Fields)
	placeholders := make([]string, n+1)
	args := make([]any, 0, n+1)
	for i, f := range s.variant.Fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, card.Get(f))
	}
	placeholders[n] = fmt.Sprintf("$%d", n+1)
	args = append(args, card.CreatedAt)

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, created_at) VALUES (%s) RETURNING id",
		s.table, s.columns, strings.Join(placeholders, ", "),
	)

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&card.ID); err != nil {
		log.Error("failed to create card", slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "create", "failed to insert card", MapError(err))
	}

	card.Type = s.variant.Type
	log.Info("card created successfully", slog.Int64("card_id", card.ID))
	return &card, nil
}

// List implements store.CardStore.List. Rows are returned in id order.
func (s *PostgresCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT id, %s, created_at FROM %s ORDER BY id", s.columns, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "list", "failed to query cards", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := s.scan(rows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, store.NewStoreError(s.entity, "list", "failed to scan card", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError(s.entity, "list", "failed to read cards", MapError(err))
	}

	log.Debug("cards listed", slog.Int("count", len(cards)))
	return cards, nil
}

// GetByID implements store.CardStore.GetByID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT id, %s, created_at FROM %s WHERE id = $1", s.columns, s.table)

	card, err := s.scan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, store.NewStoreError(s.entity, "get", "failed to query card", MapError(err))
	}

	return card, nil
}

// Delete implements store.CardStore.Delete.
// Returns store.ErrCardNotFound if no row was removed.
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return 0, store.NewStoreError(s.entity, "delete", "failed to delete card", MapError(err))
	}

	affected, err := rowsAffected(result)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			log.Debug("card not found for delete", slog.Int64("card_id", id))
			return 0, err
		}
		return 0, store.NewStoreError(s.entity, "delete", "failed to confirm delete", err)
	}

	log.Info("card deleted successfully", slog.Int64("card_id", id))
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresCardStore) scan(row rowScanner) (*domain.Card, error) {
	card := &domain.Card{Type: s.variant.Type}
	values := make([]string, len(s.variant.Fields))

	dest := make([]any, 0, len(values)+2)
	dest = append(dest, &card.ID)
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &card.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for i, f := range s.variant.Fields {
		card.Set(f, values[i])
	}
	card.CreatedAt = card.CreatedAt.UTC()
	return card, nil
}
