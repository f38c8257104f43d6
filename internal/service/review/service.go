package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// ReviewAnswer represents a user's answer to a flashcard review.
type ReviewAnswer struct {
	Outcome domain.ReviewOutcome `json:"outcome"`
}

// ReviewService runs the study session flow: it hands out due cards,
// applies answers through the spaced repetition scheduler, and reports
// per-deck progress.
type ReviewService interface {
	// GetNextCard retrieves the next card due for review for a user. Due
	// cards surface ordered by interview-frequency weight, then by how
	// overdue they are. Returns ErrNoCardsDue when nothing is due.
	GetNextCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// SubmitAnswer processes a user's answer for a flashcard and updates
	// the review schedule. Within one transaction it verifies ownership,
	// computes the new stats, creates them lazily for a first review, and
	// appends a review log entry.
	//
	// Returns ErrCardNotFound, ErrCardNotOwned, or ErrInvalidAnswer for the
	// respective failure modes.
	SubmitAnswer(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		answer ReviewAnswer,
	) (*domain.UserCardStats, error)

	// PostponeCard pushes a card's next review forward by days (>= 1)
	// without touching the scheduler state.
	PostponeCard(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		days int,
	) (*domain.UserCardStats, error)

	// DeckProgress summarizes study progress over one deck: total cards,
	// learned cards, cards due now, and overall accuracy.
	DeckProgress(ctx context.Context, userID, deckID uuid.UUID) (*store.DeckProgress, error)
}

// Common error types for ReviewService
var (
	// ErrNoCardsDue indicates that the user has no cards due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardStatsNotFound indicates that the card statistics do not exist.
	ErrCardStatsNotFound = errors.New("card stats not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrInvalidAnswer indicates an invalid answer was provided.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrInvalidPostponeDays indicates a postpone request with days < 1.
	ErrInvalidPostponeDays = errors.New("postpone days must be at least 1")

	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckNotOwned indicates that the user does not own the deck.
	ErrDeckNotOwned = errors.New("unauthorized access: deck not owned by user")
)

// ServiceError wraps errors from the review service with the failed
// operation, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
