package store

import (
	"context"
	"database/sql"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

// UserCardStatsStore defines the interface for user card statistics persistence.
type UserCardStatsStore interface {
	// Create saves a new user card statistics entry.
	// Returns an error if the entry already exists.
	Create(ctx context.Context, stats *domain.UserCardStats) error

	// CreateMultiple saves statistics entries for a batch of cards, used
	// when importing a deck so every card is immediately due. Run it within
	// a transaction alongside CardStore.CreateMultiple.
	CreateMultiple(ctx context.Context, stats []*domain.UserCardStats) error

	// Get retrieves user card statistics by the combination of user ID and
	// card ID. Returns ErrUserCardStatsNotFound if the entry does not exist.
	// No row locking; use GetForUpdate inside a transaction when the row
	// will be modified.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// GetForUpdate retrieves user card statistics with a row-level lock
	// using SELECT FOR UPDATE. Must be called within a transaction.
	// Returns ErrUserCardStatsNotFound if the entry does not exist.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error)

	// Update modifies an existing statistics entry, identified by the
	// UserID and CardID fields of the stats object.
	// Returns ErrUserCardStatsNotFound if the entry does not exist.
	Update(ctx context.Context, stats *domain.UserCardStats) error

	// DeckProgress aggregates review progress over all cards of a deck for
	// a user: total cards, learned cards (consecutive correct >= 2), cards
	// due now, and overall accuracy.
	DeckProgress(ctx context.Context, userID, deckID uuid.UUID) (*DeckProgress, error)

	// WithTx returns a new UserCardStatsStore instance that uses the
	// provided transaction. The transaction is created and managed by the
	// caller.
	WithTx(tx *sql.Tx) UserCardStatsStore
}

// DeckProgress summarizes a user's study progress for one deck.
type DeckProgress struct {
	DeckID       uuid.UUID `json:"deck_id"`
	TotalCards   int       `json:"total_cards"`
	LearnedCards int       `json:"learned_cards"`
	DueCards     int       `json:"due_cards"`
	ReviewCount  int       `json:"review_count"`
	CorrectCount int       `json:"correct_count"`
}

// Accuracy returns the overall fraction of correct reviews in the deck,
// or 0 when nothing has been reviewed yet.
func (p *DeckProgress) Accuracy() float64 {
	if p.ReviewCount == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.ReviewCount)
}
