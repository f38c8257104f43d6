package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewLog validation errors
var (
	ErrEmptyLogID     = errors.New("review log ID cannot be empty")
	ErrEmptyLogUserID = errors.New("review log user ID cannot be empty")
	ErrEmptyLogCardID = errors.New("review log card ID cannot be empty")
)

// ReviewLog is an append-only record of a single answered review. It keeps
// enough scheduler state to reconstruct a card's review history.
type ReviewLog struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	CardID         uuid.UUID     `json:"card_id"`
	Outcome        ReviewOutcome `json:"outcome"`
	IntervalBefore int           `json:"interval_before"`
	IntervalAfter  int           `json:"interval_after"`
	EaseFactor     float64       `json:"ease_factor"` // Ease factor after the review
	ReviewedAt     time.Time     `json:"reviewed_at"`
}

// NewReviewLog records a review of a card. The interval fields capture the
// scheduler state before and after the answer was applied.
func NewReviewLog(
	userID, cardID uuid.UUID,
	outcome ReviewOutcome,
	intervalBefore, intervalAfter int,
	easeFactor float64,
	reviewedAt time.Time,
) (*ReviewLog, error) {
	log := &ReviewLog{
		ID:             uuid.New(),
		UserID:         userID,
		CardID:         cardID,
		Outcome:        outcome,
		IntervalBefore: intervalBefore,
		IntervalAfter:  intervalAfter,
		EaseFactor:     easeFactor,
		ReviewedAt:     reviewedAt,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the ReviewLog has valid data.
func (l *ReviewLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLogID
	}

	if l.UserID == uuid.Nil {
		return ErrEmptyLogUserID
	}

	if l.CardID == uuid.Nil {
		return ErrEmptyLogCardID
	}

	if !l.Outcome.Valid() {
		return ErrInvalidReviewOutcome
	}

	return nil
}
