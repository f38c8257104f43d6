package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

func TestCalculateNextReview(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stats, err := domain.NewUserCardStats(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	next, err := svc.CalculateNextReview(stats, domain.ReviewOutcomeGood, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if next == stats {
		t.Error("Expected a new stats instance")
	}
	if next.ReviewCount != 1 {
		t.Errorf("Expected review count 1, got %d", next.ReviewCount)
	}

	if _, err := svc.CalculateNextReview(nil, domain.ReviewOutcomeGood, now); !errors.Is(err, ErrNilStats) {
		t.Errorf("Expected ErrNilStats, got %v", err)
	}

	if _, err := svc.CalculateNextReview(stats, "perfect", now); !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("Expected ErrInvalidOutcome, got %v", err)
	}
}

func TestPostponeReview(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stats, err := domain.NewUserCardStats(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	originalNext := stats.NextReviewAt

	postponed, err := svc.PostponeReview(stats, 3, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if want := originalNext.AddDate(0, 0, 3); !postponed.NextReviewAt.Equal(want) {
		t.Errorf("Expected next review at %v, got %v", want, postponed.NextReviewAt)
	}
	if !stats.NextReviewAt.Equal(originalNext) {
		t.Error("Expected input stats to be unmodified")
	}

	if _, err := svc.PostponeReview(stats, 0, now); !errors.Is(err, ErrInvalidDays) {
		t.Errorf("Expected ErrInvalidDays, got %v", err)
	}
	if _, err := svc.PostponeReview(nil, 1, now); !errors.Is(err, ErrNilStats) {
		t.Errorf("Expected ErrNilStats, got %v", err)
	}
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{AgainReviewMinutes: 5})
	svc := NewServiceWithParams(params)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stats, _ := domain.NewUserCardStats(uuid.New(), uuid.New())
	next, err := svc.CalculateNextReview(stats, domain.ReviewOutcomeAgain, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if want := now.Add(5 * time.Minute); !next.NextReviewAt.Equal(want) {
		t.Errorf("Expected next review at %v, got %v", want, next.NextReviewAt)
	}
}
