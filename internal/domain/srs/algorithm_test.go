package srs

import (
	"testing"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		consec   int
		ef       float64
		outcome  domain.ReviewOutcome
		expected int
	}{
		{
			name:     "Again outcome should reset interval",
			current:  10,
			consec:   2,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeAgain,
			expected: 0,
		},
		{
			name:     "Hard outcome for first review",
			current:  0,
			consec:   0,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeHard,
			expected: params.FirstReviewIntervals[domain.ReviewOutcomeHard],
		},
		{
			name:     "Good outcome for first review",
			current:  0,
			consec:   0,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeGood,
			expected: params.FirstReviewIntervals[domain.ReviewOutcomeGood],
		},
		{
			name:     "Easy outcome for first review",
			current:  0,
			consec:   0,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeEasy,
			expected: params.FirstReviewIntervals[domain.ReviewOutcomeEasy],
		},
		{
			name:     "Hard outcome should slightly increase interval",
			current:  10,
			consec:   2,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeHard,
			expected: 12, // 10 * 1.2 = 12
		},
		{
			name:     "Good outcome should increase interval by ease factor",
			current:  10,
			consec:   2,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeGood,
			expected: 25, // 10 * 2.5 = 25
		},
		{
			name:     "Easy outcome should increase interval the most",
			current:  10,
			consec:   2,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeEasy,
			expected: 32, // 10 * 1.3 * 2.5 = 32.5, truncated
		},
		{
			name:     "Good outcome after lapse uses conservative growth",
			current:  10,
			consec:   0,
			ef:       2.5,
			outcome:  domain.ReviewOutcomeGood,
			expected: 15, // 10 * 1.5 = 15
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := calculateNewInterval(tc.current, tc.consec, tc.ef, tc.outcome, params)
			if got != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		outcome  domain.ReviewOutcome
		expected float64
	}{
		{
			name:     "Again outcome should decrease ease factor",
			current:  2.5,
			outcome:  domain.ReviewOutcomeAgain,
			expected: 2.3, // 2.5 - 0.2 = 2.3
		},
		{
			name:     "Hard outcome should slightly decrease ease factor",
			current:  2.5,
			outcome:  domain.ReviewOutcomeHard,
			expected: 2.35, // 2.5 - 0.15 = 2.35
		},
		{
			name:     "Good outcome should not change ease factor",
			current:  2.5,
			outcome:  domain.ReviewOutcomeGood,
			expected: 2.5,
		},
		{
			name:     "Easy outcome should increase ease factor",
			current:  2.3,
			outcome:  domain.ReviewOutcomeEasy,
			expected: 2.45, // 2.3 + 0.15 = 2.45
		},
		{
			name:     "Minimum ease factor should be enforced",
			current:  1.35,
			outcome:  domain.ReviewOutcomeAgain,
			expected: 1.3, // 1.35 - 0.2 = 1.15, but min is 1.3
		},
		{
			name:     "Maximum ease factor should be enforced",
			current:  2.45,
			outcome:  domain.ReviewOutcomeEasy,
			expected: 2.5, // 2.45 + 0.15 = 2.6, but max is 2.5
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.outcome, params)

			// Use a small epsilon for float comparison
			epsilon := 0.001
			if newEF < tc.expected-epsilon || newEF > tc.expected+epsilon {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, newEF)
			}
		})
	}
}

func TestCalculateNextReviewDate(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	again := calculateNextReviewDate(0, domain.ReviewOutcomeAgain, now, params)
	if want := now.Add(10 * time.Minute); !again.Equal(want) {
		t.Errorf("Expected again review at %v, got %v", want, again)
	}

	good := calculateNextReviewDate(7, domain.ReviewOutcomeGood, now, params)
	if want := now.AddDate(0, 0, 7); !good.Equal(want) {
		t.Errorf("Expected good review at %v, got %v", want, good)
	}
}

func TestCalculateNextStats(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stats, err := domain.NewUserCardStats(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	next := calculateNextStats(stats, domain.ReviewOutcomeGood, now, params)

	// Original is untouched
	if stats.ReviewCount != 0 || stats.ConsecutiveCorrect != 0 {
		t.Error("Expected input stats to be unmodified")
	}

	if next.ReviewCount != 1 {
		t.Errorf("Expected review count 1, got %d", next.ReviewCount)
	}
	if next.ConsecutiveCorrect != 1 {
		t.Errorf("Expected consecutive correct 1, got %d", next.ConsecutiveCorrect)
	}
	if next.CorrectCount != 1 {
		t.Errorf("Expected correct count 1, got %d", next.CorrectCount)
	}
	if !next.LastReviewedAt.Equal(now) {
		t.Errorf("Expected last reviewed at %v, got %v", now, next.LastReviewedAt)
	}

	failed := calculateNextStats(next, domain.ReviewOutcomeAgain, now.AddDate(0, 0, 1), params)
	if failed.ConsecutiveCorrect != 0 {
		t.Errorf("Expected consecutive correct reset, got %d", failed.ConsecutiveCorrect)
	}
	if failed.CorrectCount != 1 {
		t.Errorf("Expected correct count unchanged at 1, got %d", failed.CorrectCount)
	}
	if failed.Interval != 0 {
		t.Errorf("Expected interval reset to 0, got %d", failed.Interval)
	}
}

// The review interval for a card answered correctly N times in a row must be
// monotonically non-decreasing.
func TestIntervalMonotonicOnCorrectStreak(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, outcome := range []domain.ReviewOutcome{
		domain.ReviewOutcomeHard,
		domain.ReviewOutcomeGood,
		domain.ReviewOutcomeEasy,
	} {
		stats, err := domain.NewUserCardStats(uuid.New(), uuid.New())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		prev := stats.Interval
		for i := 0; i < 20; i++ {
			stats = calculateNextStats(stats, outcome, now, params)
			if stats.Interval < prev {
				t.Fatalf("outcome %s: interval decreased from %d to %d at review %d",
					outcome, prev, stats.Interval, i+1)
			}
			prev = stats.Interval
			now = stats.NextReviewAt
		}
	}
}
