package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain/srs"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// txRunner executes fn transactionally. Production wiring uses
// store.RunInTransaction over a *sql.DB; tests substitute a pass-through.
type txRunner func(ctx context.Context, fn store.TxFn) error

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	runTx      txRunner
	cardStore  store.CardStore
	statsStore store.UserCardStatsStore
	logStore   store.ReviewLogStore
	deckStore  store.DeckStore
	srsService srs.Service
	logger     *slog.Logger
	timeFunc   func() time.Time
}

// NewReviewService creates a new ReviewService implementation backed by the
// given database and stores.
func NewReviewService(
	db *sql.DB,
	cardStore store.CardStore,
	statsStore store.UserCardStatsStore,
	logStore store.ReviewLogStore,
	deckStore store.DeckStore,
	srsService srs.Service,
	log *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	return newReviewService(
		func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		cardStore, statsStore, logStore, deckStore, srsService, log,
	)
}

func newReviewService(
	runTx txRunner,
	cardStore store.CardStore,
	statsStore store.UserCardStatsStore,
	logStore store.ReviewLogStore,
	deckStore store.DeckStore,
	srsService srs.Service,
	log *slog.Logger,
) *reviewServiceImpl {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if logStore == nil {
		panic("logStore cannot be nil")
	}
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		runTx:      runTx,
		cardStore:  cardStore,
		statsStore: statsStore,
		logStore:   logStore,
		deckStore:  deckStore,
		srsService: srsService,
		logger:     log.With(slog.String("component", "review_service")),
		timeFunc:   time.Now,
	}
}

// GetNextCard implements ReviewService.GetNextCard.
func (s *reviewServiceImpl) GetNextCard(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetNextReviewCard(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			log.Debug("no cards due for review", slog.String("user_id", userID.String()))
			return nil, ErrNoCardsDue
		}

		log.Error("failed to get next review card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get next review card: %w", err)
	}

	return card, nil
}

// SubmitAnswer implements ReviewService.SubmitAnswer.
func (s *reviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	answer ReviewAnswer,
) (*domain.UserCardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !answer.Outcome.Valid() {
		log.Warn("invalid review outcome",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("outcome", string(answer.Outcome)))
		return nil, ErrInvalidAnswer
	}

	now := s.timeFunc().UTC()
	var updatedStats *domain.UserCardStats

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		statsRepo := s.statsStore.WithTx(tx)
		logRepo := s.logStore.WithTx(tx)

		card, err := cards.GetByID(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}
		if card.UserID != userID {
			return ErrCardNotOwned
		}

		// Lock the stats row for the duration of the transaction; a first
		// review has no row yet, so create the defaults lazily.
		firstReview := false
		stats, err := statsRepo.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if !errors.Is(err, store.ErrUserCardStatsNotFound) {
				return fmt.Errorf("failed to get stats: %w", err)
			}
			firstReview = true
			stats, err = domain.NewUserCardStats(userID, cardID)
			if err != nil {
				return fmt.Errorf("failed to create new stats: %w", err)
			}
		}

		newStats, err := s.srsService.CalculateNextReview(stats, answer.Outcome, now)
		if err != nil {
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if firstReview {
			err = statsRepo.Create(ctx, newStats)
		} else {
			err = statsRepo.Update(ctx, newStats)
		}
		if err != nil {
			return fmt.Errorf("failed to save stats: %w", err)
		}

		reviewLog, err := domain.NewReviewLog(
			userID, cardID, answer.Outcome,
			stats.Interval, newStats.Interval, newStats.EaseFactor, now,
		)
		if err != nil {
			return fmt.Errorf("failed to build review log: %w", err)
		}
		if err := logRepo.Create(ctx, reviewLog); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}

		updatedStats = newStats
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrCardNotOwned) {
			return nil, err
		}

		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, &ServiceError{Operation: "submit_answer", Message: "failed to submit answer", Err: err}
	}

	log.Debug("processed review answer",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(answer.Outcome)),
		slog.Int("interval", updatedStats.Interval),
		slog.Time("next_review_at", updatedStats.NextReviewAt))

	return updatedStats, nil
}

// PostponeCard implements ReviewService.PostponeCard.
func (s *reviewServiceImpl) PostponeCard(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	days int,
) (*domain.UserCardStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if days < 1 {
		return nil, ErrInvalidPostponeDays
	}

	now := s.timeFunc().UTC()
	var updatedStats *domain.UserCardStats

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		statsRepo := s.statsStore.WithTx(tx)

		card, err := cards.GetByID(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}
		if card.UserID != userID {
			return ErrCardNotOwned
		}

		stats, err := statsRepo.GetForUpdate(ctx, userID, cardID)
		if err != nil {
			if errors.Is(err, store.ErrUserCardStatsNotFound) {
				return ErrCardStatsNotFound
			}
			return fmt.Errorf("failed to get stats: %w", err)
		}

		newStats, err := s.srsService.PostponeReview(stats, days, now)
		if err != nil {
			if errors.Is(err, srs.ErrInvalidDays) {
				return ErrInvalidPostponeDays
			}
			return fmt.Errorf("failed to postpone review: %w", err)
		}

		if err := statsRepo.Update(ctx, newStats); err != nil {
			return fmt.Errorf("failed to save stats: %w", err)
		}

		updatedStats = newStats
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) ||
			errors.Is(err, ErrCardNotOwned) ||
			errors.Is(err, ErrCardStatsNotFound) ||
			errors.Is(err, ErrInvalidPostponeDays) {
			return nil, err
		}

		log.Error("failed to postpone card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, &ServiceError{Operation: "postpone_card", Message: "failed to postpone card", Err: err}
	}

	return updatedStats, nil
}

// DeckProgress implements ReviewService.DeckProgress.
func (s *reviewServiceImpl) DeckProgress(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*store.DeckProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	if deck.UserID != userID {
		return nil, ErrDeckNotOwned
	}

	progress, err := s.statsStore.DeckProgress(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to compute deck progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("deck_id", deckID.String()))
		return nil, fmt.Errorf("failed to compute deck progress: %w", err)
	}

	return progress, nil
}
