package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// CreateMultiple implements store.CardStore.CreateMultiple.
// Run it inside a transaction so a deck import is all-or-nothing.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	query := `
		INSERT INTO cards (id, user_id, deck_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		if _, err := stmt.ExecContext(ctx,
			card.ID, card.UserID, card.DeckID, []byte(card.Content),
			card.CreatedAt, card.UpdatedAt,
		); err != nil {
			return MapError(err)
		}
	}

	s.logger.Debug("inserted cards", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT id, user_id, deck_id, content, created_at, updated_at
		FROM cards
		WHERE id = $1`

	card := &domain.Card{}
	var content []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID, &card.UserID, &card.DeckID, &content, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCardNotFound
		}
		return nil, MapError(err)
	}
	card.Content = content

	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck.
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `
		SELECT id, user_id, deck_id, content, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card := &domain.Card{}
		var content []byte
		if err := rows.Scan(
			&card.ID, &card.UserID, &card.DeckID, &content, &card.CreatedAt, &card.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		card.Content = content
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// UpdateContent implements store.CardStore.UpdateContent.
func (s *PostgresCardStore) UpdateContent(ctx context.Context, id uuid.UUID, content []byte) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE cards SET content = $1, updated_at = NOW() WHERE id = $2`,
		content, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// Delete implements store.CardStore.Delete. Stats and review log rows go
// with the card through ON DELETE CASCADE.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// GetNextReviewCard implements store.CardStore.GetNextReviewCard.
// Due cards are ordered by interview-frequency weight descending, then by
// next_review_at ascending, so the most frequently asked material surfaces
// first among everything that is due.
func (s *PostgresCardStore) GetNextReviewCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT c.id, c.user_id, c.deck_id, c.content, c.created_at, c.updated_at
		FROM cards c
		JOIN user_card_stats s ON s.card_id = c.id AND s.user_id = c.user_id
		WHERE c.user_id = $1 AND s.next_review_at <= NOW()
		ORDER BY COALESCE((c.content->>'frequency')::int, 3) DESC, s.next_review_at ASC
		LIMIT 1`

	card := &domain.Card{}
	var content []byte
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&card.ID, &card.UserID, &card.DeckID, &content, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCardNotFound
		}
		return nil, MapError(err)
	}
	card.Content = content

	return card, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
