package store

import (
	"context"
	"database/sql"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// CreateMultiple saves multiple cards to the store. Run it within a
	// transaction (store.RunInTransaction plus WithTx) so a failed insert
	// does not leave a partially imported deck behind.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck retrieves all cards in a deck, ordered by creation time.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// UpdateContent modifies an existing card's content field.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateContent(ctx context.Context, id uuid.UUID, content []byte) error

	// Delete removes a card from the store by its ID. Associated stats rows
	// are removed by the schema's ON DELETE CASCADE constraints.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetNextReviewCard retrieves the next card due for review for a user.
	// Due cards are those whose stats row has next_review_at <= now;
	// ordering is interview-frequency weight descending, then next_review_at
	// ascending. Returns ErrCardNotFound if no cards are due.
	GetNextReviewCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CardStore
}
