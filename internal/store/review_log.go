package store

import (
	"context"
	"database/sql"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

// ReviewLogStore defines the interface for the append-only review history.
type ReviewLogStore interface {
	// Create appends a review log entry. Entries are never updated or
	// deleted through the application.
	Create(ctx context.Context, log *domain.ReviewLog) error

	// ListByCard retrieves the review history for one card of a user,
	// newest first, limited to the given number of entries (0 = no limit).
	ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]*domain.ReviewLog, error)

	// WithTx returns a new ReviewLogStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ReviewLogStore
}
