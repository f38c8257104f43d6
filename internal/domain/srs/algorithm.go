// Package srs implements the spaced-repetition scheduler: an SM-2 variant
// that adjusts a per-card ease factor and review interval from the four
// review outcomes (again, hard, good, easy). All calculations are pure and
// return new UserCardStats values instead of mutating their input.
package srs

import (
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the review
// outcome. The ease factor represents the card's difficulty: higher values
// mean the card is easier and intervals grow faster. The adjustment for each
// outcome comes from params and the result is clamped to
// [params.MinEaseFactor, params.MaxEaseFactor].
func calculateNewEaseFactor(
	currentEF float64,
	outcome domain.ReviewOutcome,
	params *Params,
) float64 {
	adjustment := params.EaseFactorAdjustment[outcome]
	newEF := currentEF + adjustment

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days based on the
// review outcome and current stats.
//
// Behavior:
//   - "Again": resets the interval to 0 (review in minutes, not days)
//   - First reviews (currentInterval = 0): uses the first-review table
//   - After a lapse (consecutiveCorrect = 0 but interval > 0): "Good" uses a
//     1.5 multiplier instead of the full ease factor
//   - "Good": multiplies the interval by the ease factor
//   - "Hard": uses the smaller configured multiplier (typically 1.2)
//   - "Easy": uses the larger multiplier (typically 1.3) times the ease factor
func calculateNewInterval(
	currentInterval int,
	consecutiveCorrect int,
	easeFactor float64,
	outcome domain.ReviewOutcome,
	params *Params,
) int {
	if outcome == domain.ReviewOutcomeAgain {
		return 0
	}

	if currentInterval == 0 {
		return params.FirstReviewIntervals[outcome]
	}

	// After a lapse, grow more conservatively than the full ease factor.
	if consecutiveCorrect == 0 && outcome == domain.ReviewOutcomeGood {
		return int(float64(currentInterval) * 1.5)
	}

	var modifier float64
	if outcome == domain.ReviewOutcomeGood {
		modifier = easeFactor
	} else {
		modifier = params.IntervalModifier[outcome]
		if outcome == domain.ReviewOutcomeEasy {
			modifier *= easeFactor
		}
	}

	return int(float64(currentInterval) * modifier)
}

// calculateNextReviewDate converts the calculated interval into the next
// review time. "Again" outcomes are rescheduled params.AgainReviewMinutes
// from now so failed cards come back within the same session; everything
// else is scheduled interval days out.
func calculateNextReviewDate(
	interval int,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) time.Time {
	if outcome == domain.ReviewOutcomeAgain {
		return now.Add(time.Duration(params.AgainReviewMinutes) * time.Minute)
	}

	return now.AddDate(0, 0, interval)
}

// calculateNextStats creates a new UserCardStats with updated values based on
// the review outcome. The input stats are never modified; a complete copy is
// updated and returned. Review and accuracy counters are advanced here so the
// caller persists a single consistent record.
func calculateNextStats(
	stats *domain.UserCardStats,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) *domain.UserCardStats {
	newStats := *stats

	newStats.ReviewCount++
	newStats.LastReviewedAt = now
	newStats.EaseFactor = calculateNewEaseFactor(stats.EaseFactor, outcome, params)

	if outcome.Correct() {
		newStats.ConsecutiveCorrect++
		newStats.CorrectCount++
	} else {
		newStats.ConsecutiveCorrect = 0
	}

	newStats.Interval = calculateNewInterval(
		stats.Interval,
		stats.ConsecutiveCorrect,
		newStats.EaseFactor,
		outcome,
		params,
	)

	newStats.NextReviewAt = calculateNextReviewDate(newStats.Interval, outcome, now, params)
	newStats.UpdatedAt = now

	return &newStats
}
