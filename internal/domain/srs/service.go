package srs

import (
	"errors"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
)

// Common errors
var (
	ErrNilStats       = errors.New("user card stats cannot be nil")
	ErrInvalidOutcome = errors.New("invalid review outcome")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// CalculateNextReview computes new stats based on a review outcome
	CalculateNextReview(
		stats *domain.UserCardStats,
		outcome domain.ReviewOutcome,
		now time.Time,
	) (*domain.UserCardStats, error)

	// PostponeReview pushes the next review time forward by a specified number of days
	PostponeReview(
		stats *domain.UserCardStats,
		days int,
		now time.Time,
	) (*domain.UserCardStats, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements the Service interface for calculating updated stats
func (s *defaultService) CalculateNextReview(
	stats *domain.UserCardStats,
	outcome domain.ReviewOutcome,
	now time.Time,
) (*domain.UserCardStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}

	return calculateNextStats(stats, outcome, now, s.params), nil
}

// PostponeReview implements the Service interface for postponing reviews
func (s *defaultService) PostponeReview(
	stats *domain.UserCardStats,
	days int,
	now time.Time,
) (*domain.UserCardStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	newStats := *stats
	newStats.NextReviewAt = stats.NextReviewAt.AddDate(0, 0, days)
	newStats.UpdatedAt = now

	return &newStats, nil
}
