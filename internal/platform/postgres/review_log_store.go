package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewLogStore struct {
	db store.DBTX
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface.
func NewPostgresReviewLogStore(db store.DBTX) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresReviewLogStore{db: db}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// Create implements store.ReviewLogStore.Create.
func (s *PostgresReviewLogStore) Create(ctx context.Context, log *domain.ReviewLog) error {
	if err := log.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_logs (id, user_id, card_id, outcome, interval_before,
			interval_after, ease_factor, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.CardID, string(log.Outcome),
		log.IntervalBefore, log.IntervalAfter, log.EaseFactor, log.ReviewedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListByCard implements store.ReviewLogStore.ListByCard.
func (s *PostgresReviewLogStore) ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]*domain.ReviewLog, error) {
	query := `
		SELECT id, user_id, card_id, outcome, interval_before, interval_after,
			ease_factor, reviewed_at
		FROM review_logs
		WHERE user_id = $1 AND card_id = $2
		ORDER BY reviewed_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT $3`, userID, cardID, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query, userID, cardID)
	}
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var logs []*domain.ReviewLog
	for rows.Next() {
		log := &domain.ReviewLog{}
		var outcome string
		if err := rows.Scan(
			&log.ID, &log.UserID, &log.CardID, &outcome,
			&log.IntervalBefore, &log.IntervalAfter, &log.EaseFactor, &log.ReviewedAt,
		); err != nil {
			return nil, MapError(err)
		}
		log.Outcome = domain.ReviewOutcome(outcome)
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return logs, nil
}

// WithTx implements store.ReviewLogStore.WithTx.
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{db: tx}
}
