package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// PostgresUserCardStatsStore implements the store.UserCardStatsStore
// interface using a PostgreSQL database as the storage backend.
type PostgresUserCardStatsStore struct {
	db store.DBTX
}

// NewPostgresUserCardStatsStore creates a new PostgreSQL implementation of
// the UserCardStatsStore interface.
func NewPostgresUserCardStatsStore(db store.DBTX) *PostgresUserCardStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresUserCardStatsStore{db: db}
}

// Ensure PostgresUserCardStatsStore implements store.UserCardStatsStore
var _ store.UserCardStatsStore = (*PostgresUserCardStatsStore)(nil)

const statsColumns = `user_id, card_id, interval, ease_factor, consecutive_correct,
	last_reviewed_at, next_review_at, review_count, correct_count, created_at, updated_at`

// Create implements store.UserCardStatsStore.Create.
func (s *PostgresUserCardStatsStore) Create(ctx context.Context, stats *domain.UserCardStats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO user_card_stats (` + statsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.db.ExecContext(ctx, query,
		stats.UserID, stats.CardID, stats.Interval, stats.EaseFactor,
		stats.ConsecutiveCorrect, stats.LastReviewedAt, stats.NextReviewAt,
		stats.ReviewCount, stats.CorrectCount, stats.CreatedAt, stats.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// CreateMultiple implements store.UserCardStatsStore.CreateMultiple.
func (s *PostgresUserCardStatsStore) CreateMultiple(ctx context.Context, stats []*domain.UserCardStats) error {
	if len(stats) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_card_stats (` + statsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, st := range stats {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		if _, err := stmt.ExecContext(ctx,
			st.UserID, st.CardID, st.Interval, st.EaseFactor,
			st.ConsecutiveCorrect, st.LastReviewedAt, st.NextReviewAt,
			st.ReviewCount, st.CorrectCount, st.CreatedAt, st.UpdatedAt,
		); err != nil {
			return MapError(err)
		}
	}

	return nil
}

func (s *PostgresUserCardStatsStore) get(
	ctx context.Context,
	userID, cardID uuid.UUID,
	forUpdate bool,
) (*domain.UserCardStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM user_card_stats
		WHERE user_id = $1 AND card_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	stats := &domain.UserCardStats{}
	err := s.db.QueryRowContext(ctx, query, userID, cardID).Scan(
		&stats.UserID, &stats.CardID, &stats.Interval, &stats.EaseFactor,
		&stats.ConsecutiveCorrect, &stats.LastReviewedAt, &stats.NextReviewAt,
		&stats.ReviewCount, &stats.CorrectCount, &stats.CreatedAt, &stats.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUserCardStatsNotFound
		}
		return nil, MapError(err)
	}

	return stats, nil
}

// Get implements store.UserCardStatsStore.Get.
func (s *PostgresUserCardStatsStore) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error) {
	return s.get(ctx, userID, cardID, false)
}

// GetForUpdate implements store.UserCardStatsStore.GetForUpdate.
func (s *PostgresUserCardStatsStore) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error) {
	return s.get(ctx, userID, cardID, true)
}

// Update implements store.UserCardStatsStore.Update.
func (s *PostgresUserCardStatsStore) Update(ctx context.Context, stats *domain.UserCardStats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE user_card_stats
		SET interval = $3, ease_factor = $4, consecutive_correct = $5,
			last_reviewed_at = $6, next_review_at = $7, review_count = $8,
			correct_count = $9, updated_at = $10
		WHERE user_id = $1 AND card_id = $2`
	result, err := s.db.ExecContext(ctx, query,
		stats.UserID, stats.CardID, stats.Interval, stats.EaseFactor,
		stats.ConsecutiveCorrect, stats.LastReviewedAt, stats.NextReviewAt,
		stats.ReviewCount, stats.CorrectCount, stats.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrUserCardStatsNotFound
	}

	return nil
}

// DeckProgress implements store.UserCardStatsStore.DeckProgress. Cards that
// have never been reviewed still have a stats row (created at import time),
// so the aggregate covers the whole deck.
func (s *PostgresUserCardStatsStore) DeckProgress(ctx context.Context, userID, deckID uuid.UUID) (*store.DeckProgress, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE s.consecutive_correct >= 2),
			COUNT(*) FILTER (WHERE s.next_review_at <= NOW()),
			COALESCE(SUM(s.review_count), 0),
			COALESCE(SUM(s.correct_count), 0)
		FROM user_card_stats s
		JOIN cards c ON c.id = s.card_id
		WHERE s.user_id = $1 AND c.deck_id = $2`

	progress := &store.DeckProgress{DeckID: deckID}
	err := s.db.QueryRowContext(ctx, query, userID, deckID).Scan(
		&progress.TotalCards, &progress.LearnedCards, &progress.DueCards,
		&progress.ReviewCount, &progress.CorrectCount)
	if err != nil {
		return nil, MapError(err)
	}

	return progress, nil
}

// WithTx implements store.UserCardStatsStore.WithTx.
func (s *PostgresUserCardStatsStore) WithTx(tx *sql.Tx) store.UserCardStatsStore {
	return &PostgresUserCardStatsStore{db: tx}
}
